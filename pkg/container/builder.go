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
	"github.com/oysterpack/svccontainer/pkg/commons/collections/sets"
	"github.com/oysterpack/svccontainer/pkg/value"
)

// genericServiceBuilder is the type-erased view the installer needs of a
// ServiceBuilder[T], regardless of what T a particular batch entry was
// declared with.
type genericServiceBuilder interface {
	name() ServiceName
	dependencies() []ServiceName
	factory() value.Value[Service]
	mode() Mode
	descriptor() *Descriptor
	listeners() []Listener
	injections() []injection
}

// BatchBuilder accumulates a group of service definitions to be installed
// atomically. It is single-use: Install commits the batch, and a second
// Install or a later AddService returns an *IllegalStateError.
type BatchBuilder struct {
	container      *Container
	entries        map[string]genericServiceBuilder
	order          []string
	batchListeners []Listener
	installed      bool
}

// AddListener attaches l to every service installed by this batch.
func (b *BatchBuilder) AddListener(l Listener) {
	b.batchListeners = append(b.batchListeners, l)
}

// Install resolves the batch against the container's registry and the rest
// of this batch, installing every entry in dependency order. On any failure
// the registry is left exactly as it was before Install was called.
func (b *BatchBuilder) Install() error {
	if b.installed {
		return &IllegalStateError{Reason: "batch already installed"}
	}
	b.installed = true
	return install(b)
}

// ServiceBuilder accumulates a single service's dependencies, listeners, and
// injections within a batch. T is the type the service exposes via Provider,
// if any; it has no effect on a service that never implements Provider.
type ServiceBuilder[T any] struct {
	batch         *BatchBuilder
	svcName       ServiceName
	svcFactory    value.Value[Service]
	deps          []ServiceName
	depNames      sets.Strings
	svcListeners  []Listener
	svcInjections []injection
	svcMode       Mode
	svcDescriptor *Descriptor
}

func (b *ServiceBuilder[T]) name() ServiceName               { return b.svcName }
func (b *ServiceBuilder[T]) dependencies() []ServiceName     { return b.deps }
func (b *ServiceBuilder[T]) factory() value.Value[Service]   { return b.svcFactory }
func (b *ServiceBuilder[T]) mode() Mode                      { return b.svcMode }
func (b *ServiceBuilder[T]) descriptor() *Descriptor         { return b.svcDescriptor }
func (b *ServiceBuilder[T]) listeners() []Listener           { return b.svcListeners }
func (b *ServiceBuilder[T]) injections() []injection         { return b.svcInjections }

// AddDependency declares that this service depends on the named service.
// Duplicate dependencies are permitted but have no additional effect: the
// resolver and the pending-dependency count only ever see name once.
func (b *ServiceBuilder[T]) AddDependency(name ServiceName) *ServiceBuilder[T] {
	if b.depNames == nil {
		b.depNames = sets.NewStrings()
	}
	if b.depNames.Add(name.key()) {
		b.deps = append(b.deps, name)
	}
	return b
}

// AddListener attaches l to this service only.
func (b *ServiceBuilder[T]) AddListener(l Listener) *ServiceBuilder[T] {
	b.svcListeners = append(b.svcListeners, l)
	return b
}

// SetMode overrides the default ModeActive admission policy.
func (b *ServiceBuilder[T]) SetMode(m Mode) *ServiceBuilder[T] {
	b.svcMode = m
	return b
}

// SetDescriptor attaches optional namespace/system/component/version
// metadata used only for metrics and log labeling.
func (b *ServiceBuilder[T]) SetDescriptor(d *Descriptor) *ServiceBuilder[T] {
	b.svcDescriptor = d
	return b
}

// AddService declares a new service named name within batch b, built lazily
// by factory once the installer decides to start it. It fails with a
// *DuplicateServiceError if name is already declared elsewhere in this same
// batch (a clash against the live registry is only detected at Install time,
// since other batches may be installing concurrently).
func AddService[T any](b *BatchBuilder, name ServiceName, factory value.Value[Service]) (*ServiceBuilder[T], error) {
	if b.installed {
		return nil, &IllegalStateError{Reason: "batch already installed"}
	}
	key := name.key()
	if _, exists := b.entries[key]; exists {
		return nil, &DuplicateServiceError{Name: name}
	}
	sb := &ServiceBuilder[T]{batch: b, svcName: name, svcFactory: factory, svcMode: ModeActive}
	b.entries[key] = sb
	b.order = append(b.order, key)
	return sb, nil
}

// AddInjection declares that destination is populated with source's current
// value just before the owning service's Start runs, and cleared again when
// the service leaves StateUp (or its Start fails). S is the owning builder's exposed
// value type; T is the injected value's type, which need not match S.
func AddInjection[S, T any](b *ServiceBuilder[S], source value.Value[T], destination value.Injector[T]) {
	b.svcInjections = append(b.svcInjections, injection{
		get: func() (any, error) {
			v, err := source.Get()
			return v, err
		},
		inject: func(v any) error {
			return destination.Inject(v.(T))
		},
		uninject: destination.Uninject,
	})
}
