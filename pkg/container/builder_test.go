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
)

func TestAddServiceDuplicateWithinBatch(t *testing.T) {
	c := New()
	b := c.BatchBuilder()
	name := ParseServiceName("x")

	if _, err := AddService[any](b, name, newFakeServiceFactory(&fakeService{})); err != nil {
		t.Fatalf("first AddService: %v", err)
	}
	_, err := AddService[any](b, name, newFakeServiceFactory(&fakeService{}))
	var dup *DuplicateServiceError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateServiceError, got %v", err)
	}
}

func TestBuilderFluentChain(t *testing.T) {
	c := New()
	b := c.BatchBuilder()
	name := ParseServiceName("x")

	desc, err := NewDescriptor("acme", "web", "server", "1.2.3")
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}

	sb, err := AddService[any](b, name, newFakeServiceFactory(&fakeService{}))
	if err != nil {
		t.Fatalf("AddService: %v", err)
	}
	sb.SetMode(ModeOnDemand).SetDescriptor(desc).AddListener(BaseListener{})

	if sb.mode() != ModeOnDemand {
		t.Fatalf("mode() = %s, want ON_DEMAND", sb.mode())
	}
	if sb.descriptor() != desc {
		t.Fatal("descriptor() should return the attached Descriptor")
	}
	if len(sb.listeners()) != 1 {
		t.Fatalf("listeners() = %d, want 1", len(sb.listeners()))
	}
}

func TestBatchBuilderInstallTwiceFails(t *testing.T) {
	c := New()
	b := c.BatchBuilder()
	if _, err := AddService[any](b, ParseServiceName("x"), newFakeServiceFactory(&fakeService{})); err != nil {
		t.Fatalf("AddService: %v", err)
	}
	if err := b.Install(); err != nil {
		t.Fatalf("first Install: %v", err)
	}

	err := b.Install()
	var ise *IllegalStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected *IllegalStateError, got %v", err)
	}
}

func TestAddServiceAfterInstallFails(t *testing.T) {
	c := New()
	b := c.BatchBuilder()
	if err := b.Install(); err != nil {
		t.Fatalf("Install on empty batch: %v", err)
	}
	_, err := AddService[any](b, ParseServiceName("x"), newFakeServiceFactory(&fakeService{}))
	var ise *IllegalStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected *IllegalStateError, got %v", err)
	}
}
