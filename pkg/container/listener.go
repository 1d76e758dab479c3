// Copyright (c) 2017 OysterPack, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package container

// Listener observes lifecycle transitions of the ServiceController(s) it is
// attached to.
type Listener interface {
	// Transition is invoked after every state change, synchronously on the
	// goroutine that made the change: an executor task, or the goroutine
	// that called Install, SetMode, Demand, Undemand, Remove or
	// Container.Stop. It is not handed off to the executor. A panic inside
	// Transition is recovered and logged; it never affects the controller's
	// state.
	Transition(ctrl *ServiceController, from, to State)
}

// ListenerFunc adapts a plain func to a Listener.
type ListenerFunc func(ctrl *ServiceController, from, to State)

func (f ListenerFunc) Transition(ctrl *ServiceController, from, to State) {
	f(ctrl, from, to)
}

// BaseListener supplies a no-op Transition so embedders only need to
// override the piece they care about by shadowing the method on their own
// named type, e.g.:
//
//	type logOnFailure struct{ container.BaseListener }
//	func (l logOnFailure) Transition(ctrl *container.ServiceController, from, to container.State) {
//		if to == container.StateStartFailed { ... }
//	}
type BaseListener struct{}

func (BaseListener) Transition(ctrl *ServiceController, from, to State) {}
