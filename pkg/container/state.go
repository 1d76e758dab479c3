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

// State is the lifecycle state of a ServiceController.
type State int

const (
	// StateDown is inactive: either never started, or stopped cleanly.
	StateDown State = iota
	// StateStarting is transitioning toward StateUp.
	StateStarting
	// StateUp is operational; its dependencies are all StateUp.
	StateUp
	// StateStopping is transitioning toward StateDown.
	StateStopping
	// StateRemoved is terminal: the controller has been removed from the registry.
	StateRemoved
	// StateStartFailed is terminal until reset: Start failed, or an injection
	// applied before Start failed.
	StateStartFailed
)

func (s State) String() string {
	switch s {
	case StateDown:
		return "DOWN"
	case StateStarting:
		return "STARTING"
	case StateUp:
		return "UP"
	case StateStopping:
		return "STOPPING"
	case StateRemoved:
		return "REMOVED"
	case StateStartFailed:
		return "START_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state requires no further scheduling.
func (s State) Terminal() bool {
	return s == StateRemoved || s == StateStartFailed
}

// validTransitions enumerates the state machine's edges. Unlisted (from,to)
// pairs are programming errors, not runtime conditions to recover from.
var validTransitions = map[State][]State{
	StateDown:        {StateStarting, StateRemoved},
	StateStarting:    {StateUp, StateStartFailed},
	StateUp:          {StateStopping},
	StateStopping:    {StateDown},
	StateStartFailed: {StateRemoved, StateDown},
}

func (s State) canTransitionTo(to State) bool {
	for _, next := range validTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
