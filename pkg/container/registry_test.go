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
)

func newTestController(name ServiceName) *ServiceController {
	return newServiceController(name, newFakeServiceFactory(&fakeService{}), ModeNever, GoroutineExecutor{}, nil, nil)
}

func TestRegistryGetMissing(t *testing.T) {
	r := &Registry{}
	if _, ok := r.Get(ParseServiceName("x")); ok {
		t.Fatal("expected ok=false for an absent name")
	}
}

func TestRegistryGetRequiredMissing(t *testing.T) {
	r := &Registry{}
	_, err := r.GetRequired(ParseServiceName("x"))
	var nfe *ServiceNotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected *ServiceNotFoundError, got %v", err)
	}
}

func TestRegistryPutIfAbsent(t *testing.T) {
	r := &Registry{}
	name := ParseServiceName("x")
	c1 := newTestController(name)
	c2 := newTestController(name)

	actual, inserted := r.putIfAbsent(name, c1)
	if !inserted || actual != c1 {
		t.Fatal("first insert should succeed")
	}

	actual, inserted = r.putIfAbsent(name, c2)
	if inserted || actual != c1 {
		t.Fatal("second insert under the same name should report the original controller")
	}
}

func TestRegistryRemoveIf(t *testing.T) {
	r := &Registry{}
	name := ParseServiceName("x")
	c1 := newTestController(name)
	c2 := newTestController(name)
	r.putIfAbsent(name, c1)

	if r.removeIf(name, c2) {
		t.Fatal("removeIf should fail when the slot holds a different controller")
	}
	if _, ok := r.Get(name); !ok {
		t.Fatal("slot should still hold c1")
	}

	if !r.removeIf(name, c1) {
		t.Fatal("removeIf should succeed when the slot holds exactly ctrl")
	}
	if _, ok := r.Get(name); ok {
		t.Fatal("slot should now be empty")
	}
}

func TestRegistryServices(t *testing.T) {
	r := &Registry{}
	names := []string{"a", "b", "c"}
	for _, n := range names {
		r.putIfAbsent(ParseServiceName(n), newTestController(ParseServiceName(n)))
	}
	if got := len(r.Services()); got != len(names) {
		t.Fatalf("got %d services, want %d", got, len(names))
	}
}

func TestRegistryConcurrentPutIfAbsent(t *testing.T) {
	r := &Registry{}
	name := ParseServiceName("x")
	var wg sync.WaitGroup
	var successes int32
	var mu sync.Mutex

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, inserted := r.putIfAbsent(name, newTestController(name)); inserted {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if successes != 1 {
		t.Fatalf("expected exactly one winner, got %d", successes)
	}
}
