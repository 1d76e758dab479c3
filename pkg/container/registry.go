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

import "sync"

// Registry is the concurrent name -> controller map shared by every batch
// installed into a Container. Reads never block; writes are atomic per name.
type Registry struct {
	m sync.Map // string -> *ServiceController
}

// Get performs a non-blocking lookup.
func (r *Registry) Get(name ServiceName) (*ServiceController, bool) {
	v, ok := r.m.Load(name.key())
	if !ok {
		return nil, false
	}
	return v.(*ServiceController), true
}

// GetRequired is Get, but fails with a *ServiceNotFoundError instead of ok=false.
func (r *Registry) GetRequired(name ServiceName) (*ServiceController, error) {
	ctrl, ok := r.Get(name)
	if !ok {
		return nil, &ServiceNotFoundError{Name: name}
	}
	return ctrl, nil
}

// putIfAbsent atomically installs ctrl under name, returning the controller
// already occupying that name (and ok=false) if one exists.
func (r *Registry) putIfAbsent(name ServiceName, ctrl *ServiceController) (*ServiceController, bool) {
	actual, loaded := r.m.LoadOrStore(name.key(), ctrl)
	if loaded {
		return actual.(*ServiceController), false
	}
	return ctrl, true
}

// removeIf atomically clears name's slot, but only if it currently holds
// exactly ctrl. Used by the installer's auto-removal listener so a
// re-installed controller under the same name is never clobbered by a stale
// removal notification from its predecessor.
func (r *Registry) removeIf(name ServiceName, ctrl *ServiceController) bool {
	return r.m.CompareAndDelete(name.key(), ctrl)
}

// remove unconditionally deletes name's slot; used only by the installer to
// roll back a partially-committed batch.
func (r *Registry) remove(name ServiceName) {
	r.m.Delete(name.key())
}

// Services returns a snapshot of every controller currently installed.
func (r *Registry) Services() []*ServiceController {
	var out []*ServiceController
	r.m.Range(func(_, v any) bool {
		out = append(out, v.(*ServiceController))
		return true
	})
	return out
}
