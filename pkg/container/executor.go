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

import "time"

// Executor runs controller tasks (start/stop callbacks, dependent
// notifications). Implementations must not run a submitted task
// synchronously on the caller's goroutine, to keep the dependency-induced
// partial order from turning into accidental lock nesting across
// controllers.
type Executor interface {
	Submit(task func())
}

// GoroutineExecutor is the default Executor: every task runs on its own
// goroutine, so admission is gated only by the dependency graph, never by
// executor capacity.
type GoroutineExecutor struct{}

func (GoroutineExecutor) Submit(task func()) {
	go func() {
		defer recoverTask()
		task()
	}()
}

// WorkerPoolExecutor runs tasks on a fixed pool of worker goroutines, for
// hosts that want to cap concurrency or serialize callbacks (size 1).
type WorkerPoolExecutor struct {
	tasks chan func()
}

// NewWorkerPoolExecutor starts size worker goroutines draining a shared task
// queue. The queue is unbounded; callers that need backpressure should wrap
// Submit.
func NewWorkerPoolExecutor(size int) *WorkerPoolExecutor {
	if size < 1 {
		size = 1
	}
	e := &WorkerPoolExecutor{tasks: make(chan func())}
	for i := 0; i < size; i++ {
		go e.worker()
	}
	return e
}

func (e *WorkerPoolExecutor) worker() {
	for task := range e.tasks {
		func() {
			defer recoverTask()
			task()
		}()
	}
}

func (e *WorkerPoolExecutor) Submit(task func()) {
	e.tasks <- task
}

func recoverTask() {
	if r := recover(); r != nil {
		logger.Error().Interface("panic", r).Msg("controller task panicked")
	}
}

// WatchdogTimeout starts a timer that calls ctx.Failed(reason) if ctx has
// not completed within d. It is a no-op once ctx completes on its own; the
// returned stop function cancels the timer early and should be called once
// the caller no longer cares (e.g. right after a successful Complete()).
func WatchdogTimeout(ctx *StartContext, d time.Duration, reason error) (stop func()) {
	timer := time.AfterFunc(d, func() {
		_ = ctx.Failed(reason)
	})
	return func() { timer.Stop() }
}
