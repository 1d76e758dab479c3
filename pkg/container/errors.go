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

import "fmt"

// MissingDependencyError is returned when a batch references a dependency
// that exists neither in the live registry nor elsewhere in the same batch.
type MissingDependencyError struct {
	Service    ServiceName
	Dependency ServiceName
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("service %s depends on %s, which is not installed and not present in this batch", e.Service, e.Dependency)
}

// CircularDependencyError is returned when the installer's walk revisits an
// entry that is still on the active path.
type CircularDependencyError struct {
	Cycle []ServiceName
}

func (e *CircularDependencyError) Error() string {
	names := make([]string, len(e.Cycle))
	for i, n := range e.Cycle {
		names[i] = n.String()
	}
	return fmt.Sprintf("circular dependency: %v", names)
}

// DuplicateServiceError is returned when a name is already occupied in the
// registry, or declared twice within the same batch.
type DuplicateServiceError struct {
	Name ServiceName
}

func (e *DuplicateServiceError) Error() string {
	return fmt.Sprintf("service %s is already installed", e.Name)
}

// ServiceNotFoundError is returned by Registry.GetRequired for an absent name.
type ServiceNotFoundError struct {
	Name ServiceName
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service not found: %s", e.Name)
}

// IllegalStateError indicates an operation attempted in the wrong state:
// completing a lifecycle context twice, calling Failed before Asynchronous,
// reusing an installed BatchBuilder, or removing a controller that is not
// DOWN or START_FAILED or still has live dependents.
type IllegalStateError struct {
	Reason string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("illegal state: %s", e.Reason)
}

// StartException carries the reason a controller transitioned to
// StateStartFailed; it is retained on the controller and surfaced to
// listeners.
type StartException struct {
	Service ServiceName
	Cause   error
}

func (e *StartException) Error() string {
	return fmt.Sprintf("service %s failed to start: %v", e.Service, e.Cause)
}

func (e *StartException) Unwrap() error {
	return e.Cause
}

// ResolutionError wraps the first fatal error the installer hit while
// resolving a batch, after any partial inserts made by that batch were
// rolled back.
type ResolutionError struct {
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("batch installation failed: %v", e.Cause)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}
