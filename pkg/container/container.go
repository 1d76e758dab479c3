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

// Package container hosts a population of named services, resolves their
// dependencies, and drives each through its lifecycle while injecting values
// between them.
package container

import "github.com/prometheus/client_golang/prometheus"

// Container owns a Registry and the Executor shared by every controller
// installed into it.
type Container struct {
	registry   *Registry
	executor   Executor
	metrics    *metricsRecorder
	gatherer   prometheus.Gatherer
}

// Option configures a Container at construction time.
type Option func(*Container)

// WithExecutor overrides the default GoroutineExecutor.
func WithExecutor(e Executor) Option {
	return func(c *Container) { c.executor = e }
}

// WithMetricsRegisterer registers this container's Prometheus collectors
// against reg. Without this option, metrics recording is a no-op. Pass a
// *prometheus.Registry (which implements both Registerer and Gatherer) to
// also make MetricsGatherer available for an HTTPReporter.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(c *Container) {
		c.metrics = newMetricsRecorder(reg)
		if g, ok := reg.(prometheus.Gatherer); ok {
			c.gatherer = g
		}
	}
}

// MetricsGatherer returns the Gatherer supplied via WithMetricsRegisterer,
// or prometheus.DefaultGatherer if none was supplied.
func (c *Container) MetricsGatherer() prometheus.Gatherer {
	if c.gatherer != nil {
		return c.gatherer
	}
	return prometheus.DefaultGatherer
}

// New returns a Container with an empty Registry.
func New(opts ...Option) *Container {
	c := &Container{
		registry: &Registry{},
		executor: GoroutineExecutor{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BatchBuilder returns a fresh, single-use BatchBuilder bound to this
// container's registry and executor.
func (c *Container) BatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		container: c,
		entries:   make(map[string]genericServiceBuilder),
	}
}

// Registry exposes the container's concurrent name -> controller map.
func (c *Container) Registry() *Registry {
	return c.registry
}

// Stop drives every installed controller toward StateDown by setting its
// mode to ModeNever and clearing its demand count. Controllers are visited
// in registry iteration order, and each one that is UP moves to
// StateStopping at once; a controller entering StateStopping also makes its
// UP dependents stop. The shutdown order is not dependency-aware: a
// dependency may reach StateDown before its dependents do. A controller
// that is STARTING when Stop is called stops once it reaches StateUp.
// Stop does not block for completion; use
// a Listener if the caller needs to know when a particular service has
// actually reached StateDown.
func (c *Container) Stop() {
	for _, ctrl := range c.registry.Services() {
		ctrl.forceStopMode()
	}
}
