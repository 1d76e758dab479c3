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

// Service is the capability a ServiceController hosts. Start and Stop run on
// the controller's Executor.
type Service interface {
	Start(ctx *StartContext) error
	Stop(ctx *StopContext) error
}

// Provider is optionally implemented by a Service that wants to expose a
// value for cross-service injection once it reaches StateUp. See ServiceValue.
type Provider interface {
	Value() any
}

// lifecycleContext is embedded by StartContext and StopContext; it carries
// the shared asynchronous-completion bookkeeping.
type lifecycleContext struct {
	mu          sync.Mutex
	async       bool
	completed   bool
	completeErr error
	done        chan struct{}
}

func newLifecycleContext() *lifecycleContext {
	return &lifecycleContext{done: make(chan struct{})}
}

// Asynchronous declares that the action will complete later, via Complete or
// (start-only) Failed. It must be called before the callback's synchronous
// return for the deferred completion to take effect.
func (c *lifecycleContext) Asynchronous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.async = true
}

func (c *lifecycleContext) isAsync() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.async
}

// Complete marks the action as finished successfully. Calling Complete twice,
// or calling it after Failed, returns an *IllegalStateError.
func (c *lifecycleContext) Complete() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.completed {
		return &IllegalStateError{Reason: "lifecycle context already completed"}
	}
	c.completed = true
	close(c.done)
	return nil
}

func (c *lifecycleContext) awaitCompletion() error {
	<-c.done
	return c.completeErr
}

// StartContext is passed to Service.Start.
type StartContext struct {
	*lifecycleContext
}

func newStartContext() *StartContext {
	return &StartContext{lifecycleContext: newLifecycleContext()}
}

// Failed reports that Start failed with reason. It is only valid after
// Asynchronous has been called, and only once; otherwise it returns an
// *IllegalStateError without affecting the prior completion state.
func (c *StartContext) Failed(reason error) error {
	c.mu.Lock()
	if !c.async {
		c.mu.Unlock()
		return &IllegalStateError{Reason: "Failed called without a prior call to Asynchronous"}
	}
	if c.completed {
		c.mu.Unlock()
		return &IllegalStateError{Reason: "lifecycle context already completed"}
	}
	c.completed = true
	c.completeErr = reason
	c.mu.Unlock()
	close(c.done)
	return nil
}

// StopContext is passed to Service.Stop. Stop has no Failed: a stop callback
// that cannot clean up still leaves the controller StateDown, and the error
// is only logged.
type StopContext struct {
	*lifecycleContext
}

func newStopContext() *StopContext {
	return &StopContext{lifecycleContext: newLifecycleContext()}
}
