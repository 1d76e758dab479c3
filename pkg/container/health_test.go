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
	"testing"
	"time"
)

type healthCheckingService struct {
	fakeService
	err error
}

func (s *healthCheckingService) Check() error { return s.err }

func TestRunHealthChecksSkipsControllersNotUp(t *testing.T) {
	c := New()
	b := c.BatchBuilder()
	if _, err := AddService[any](b, ParseServiceName("x"), newFakeServiceFactory(&fakeService{})); err != nil {
		t.Fatalf("AddService: %v", err)
	}
	_, err := AddService[any](b, ParseServiceName("blocked"), newFakeServiceFactory(&fakeService{
		onStart: func(ctx *StartContext) error { ctx.Asynchronous(); return nil },
	}))
	if err != nil {
		t.Fatalf("AddService: %v", err)
	}
	if err := b.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}

	ctrlX, _ := c.Registry().Get(ParseServiceName("x"))
	waitForState(t, ctrlX, StateUp, time.Second)

	reports := c.RunHealthChecks()
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	for _, r := range reports {
		if r.Name.Equals(ParseServiceName("x")) && !r.Healthy() {
			t.Fatal("x should be healthy once UP")
		}
		if r.Name.Equals(ParseServiceName("blocked")) && r.Healthy() {
			t.Fatal("blocked should not be healthy while still STARTING")
		}
	}
}

func TestRunHealthChecksInvokesHealthChecker(t *testing.T) {
	c := New()
	b := c.BatchBuilder()
	cause := errors.New("disk full")
	svc := &healthCheckingService{err: cause}
	if _, err := AddService[any](b, ParseServiceName("x"), newFakeServiceFactory(svc)); err != nil {
		t.Fatalf("AddService: %v", err)
	}
	if err := b.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}

	ctrl, _ := c.Registry().Get(ParseServiceName("x"))
	waitForState(t, ctrl, StateUp, time.Second)

	reports := c.RunHealthChecks()
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].Err != cause {
		t.Fatalf("Err = %v, want %v", reports[0].Err, cause)
	}
	if reports[0].Healthy() {
		t.Fatal("report should not be healthy when Check returns an error")
	}
}
