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
	"fmt"

	"github.com/oysterpack/svccontainer/pkg/value"
)

// ServiceValue adapts a controller's eventual Provider.Value() into a lazily
// resolved value.Value[T]: Get fails with *value.InvalidValueError until
// ctrl reaches StateUp and its service implements Provider and exposes a T.
// This is the usual way to build an injection source: AddInjection(builder,
// container.ServiceValue[Config](configCtrl), configInjector).
func ServiceValue[T any](ctrl *ServiceController) value.Value[T] {
	return serviceValue[T]{ctrl: ctrl}
}

type serviceValue[T any] struct {
	ctrl *ServiceController
}

func (s serviceValue[T]) Get() (T, error) {
	var zero T
	if s.ctrl.State() != StateUp {
		return zero, &value.InvalidValueError{Reason: fmt.Sprintf("service %s is not UP", s.ctrl.Name())}
	}

	s.ctrl.mu.Lock()
	svc := s.ctrl.service
	s.ctrl.mu.Unlock()

	provider, ok := svc.(Provider)
	if !ok {
		return zero, &value.InvalidValueError{Reason: fmt.Sprintf("service %s does not implement Provider", s.ctrl.Name())}
	}

	v, ok := provider.Value().(T)
	if !ok {
		return zero, &value.InvalidValueError{Reason: fmt.Sprintf("service %s's value is not assignable to the requested type", s.ctrl.Name())}
	}
	return v, nil
}
