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

import (
	"github.com/oysterpack/svccontainer/pkg/logging"
)

// installEntry tracks one batch entry's progress through the iterative
// resolver. The walk never recurses: prev is the back-link used to unwind
// instead of a call stack, so a linear chain of any length resolves in
// bounded stack space.
type installEntry struct {
	name      ServiceName
	builder   genericServiceBuilder
	processed bool
	visited   bool
	prev      *installEntry
	i         int
}

// install resolves every entry declared on b against the live registry and
// the rest of the batch, inserting controllers in dependency order. Any
// failure rolls back every controller this call inserted, leaving the
// registry exactly as it was found.
func install(b *BatchBuilder) error {
	entries := make(map[string]*installEntry, len(b.order))
	for _, key := range b.order {
		builder := b.entries[key]
		entries[key] = &installEntry{name: builder.name(), builder: builder}
	}

	var installed []*ServiceController
	for _, key := range b.order {
		root := entries[key]
		if root.processed {
			continue
		}
		if err := resolveEntry(b, entries, root, &installed); err != nil {
			for _, ctrl := range installed {
				b.container.registry.remove(ctrl.Name())
			}
			b.container.metrics.recordInstall("failure")
			return &ResolutionError{Cause: err}
		}
	}

	// The batch resolved in full: only now do newly installed controllers
	// start propagating demand and attempting to start, in the order they
	// were installed (which is itself a valid topological order).
	for _, ctrl := range installed {
		if ctrl.mode == ModeActive || ctrl.mode == ModeAutomatic {
			ctrl.demandDependencies()
		}
	}
	for _, ctrl := range installed {
		ctrl.evaluateStart()
	}

	b.container.metrics.recordInstall("success")
	return nil
}

func resolveEntry(b *BatchBuilder, entries map[string]*installEntry, root *installEntry, installed *[]*ServiceController) error {
	current := root
	current.visited = true

	for current != nil {
		if current.processed {
			current = current.prev
			continue
		}

		deps := current.builder.dependencies()
		descended := false
		for current.i < len(deps) {
			depName := deps[current.i]
			current.i++

			if _, live := b.container.registry.Get(depName); live {
				continue
			}

			depEntry, inBatch := entries[depName.key()]
			if !inBatch {
				return &MissingDependencyError{Service: current.name, Dependency: depName}
			}
			if depEntry.processed {
				continue
			}
			if depEntry.visited {
				return &CircularDependencyError{Cycle: []ServiceName{current.name, depName}}
			}

			depEntry.prev = current
			depEntry.visited = true
			current = depEntry
			descended = true
			break
		}
		if descended {
			continue
		}

		// every dependency of current is now either already live or already
		// processed earlier in this same walk: safe to create and insert.
		ctrl, err := createAndInsertController(b, current)
		if err != nil {
			return err
		}
		*installed = append(*installed, ctrl)

		current.visited = false
		current.processed = true
		current = current.prev
	}
	return nil
}

func createAndInsertController(b *BatchBuilder, entry *installEntry) (*ServiceController, error) {
	builder := entry.builder
	ctrl := newServiceController(entry.name, builder.factory(), builder.mode(), b.container.executor, builder.descriptor(), b.container.metrics)

	for _, depName := range builder.dependencies() {
		dep, err := b.container.registry.GetRequired(depName)
		if err != nil {
			// the resolver above guarantees every dependency is already
			// live by this point; reaching here is a resolver bug, not a
			// runtime condition callers need to recover from.
			return nil, err
		}
		ctrl.addDependency(dep)
	}

	ctrl.addListener(autoRemovalListener{registry: b.container.registry})
	for _, l := range b.batchListeners {
		ctrl.addListener(l)
	}
	for _, l := range builder.listeners() {
		ctrl.addListener(l)
	}
	for _, inj := range builder.injections() {
		ctrl.addInjection(inj)
	}

	if _, inserted := b.container.registry.putIfAbsent(entry.name, ctrl); !inserted {
		return nil, &DuplicateServiceError{Name: entry.name}
	}
	return ctrl, nil
}

// autoRemovalListener clears a controller's registry slot once it reaches
// StateRemoved. Until it fires, the name stays occupied by the original
// controller, so a concurrent attempt to install the same name observes
// *DuplicateServiceError rather than racing with the removal.
type autoRemovalListener struct {
	registry *Registry
}

func (l autoRemovalListener) Transition(ctrl *ServiceController, from, to State) {
	if to != StateRemoved {
		return
	}
	if !l.registry.removeIf(ctrl.Name(), ctrl) {
		logger.Error().Str(logging.SERVICE, ctrl.Name().String()).Msg("auto-removal observed a registry slot that no longer held this controller")
	}
}
