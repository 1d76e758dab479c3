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
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGoroutineExecutorRunsOffCaller(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	called := make(chan int, 1)

	GoroutineExecutor{}.Submit(func() {
		defer wg.Done()
		called <- 1
	})

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	wg.Wait()
}

func TestGoroutineExecutorRecoversPanic(t *testing.T) {
	done := make(chan struct{})
	GoroutineExecutor{}.Submit(func() {
		defer close(done)
		panic("boom")
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panicking task should still signal completion")
	}
}

func TestWorkerPoolExecutorSerializesAtSizeOne(t *testing.T) {
	e := NewWorkerPoolExecutor(1)
	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		i := i
		e.Submit(func() {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want strictly increasing submission order", order)
		}
	}
}

func TestWatchdogTimeoutFiresFailed(t *testing.T) {
	ctx := newStartContext()
	ctx.Asynchronous()
	reason := errors.New("watchdog expired")
	stop := WatchdogTimeout(ctx, 10*time.Millisecond, reason)
	defer stop()

	select {
	case <-ctx.done:
		if ctx.completeErr != reason {
			t.Fatalf("completeErr = %v, want %v", ctx.completeErr, reason)
		}
	case <-time.After(time.Second):
		t.Fatal("watchdog never fired")
	}
}

func TestWatchdogTimeoutStopPreventsFailure(t *testing.T) {
	ctx := newStartContext()
	ctx.Asynchronous()
	stop := WatchdogTimeout(ctx, 50*time.Millisecond, errors.New("should not fire"))
	if err := ctx.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	stop()

	time.Sleep(100 * time.Millisecond)
	if ctx.completeErr != nil {
		t.Fatalf("completeErr = %v, want nil", ctx.completeErr)
	}
}
