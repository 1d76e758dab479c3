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

// HealthChecker is optionally implemented by a Service that wants to report
// its own operational health beyond "reached StateUp". Check runs on demand;
// it is the caller's responsibility to run it periodically if desired.
type HealthChecker interface {
	Check() error
}

// HealthReport is one controller's health snapshot.
type HealthReport struct {
	Name  ServiceName
	State State
	Err   error
}

// Healthy reports whether the controller is UP and, if it implements
// HealthChecker, its last Check succeeded.
func (r HealthReport) Healthy() bool {
	return r.State == StateUp && r.Err == nil
}

// RunHealthChecks runs Check on every currently UP controller that
// implements HealthChecker, concurrently, and returns one report per
// controller in the registry. A controller that is not UP, or that does not
// implement HealthChecker, reports a nil Err and is considered healthy iff
// it is UP.
func (c *Container) RunHealthChecks() []HealthReport {
	controllers := c.registry.Services()
	reports := make([]HealthReport, len(controllers))

	var wg sync.WaitGroup
	wg.Add(len(controllers))
	for i, ctrl := range controllers {
		go func(i int, ctrl *ServiceController) {
			defer wg.Done()
			reports[i] = ctrl.healthReport()
		}(i, ctrl)
	}
	wg.Wait()
	return reports
}

func (c *ServiceController) healthReport() HealthReport {
	c.mu.Lock()
	state := c.state
	svc := c.service
	c.mu.Unlock()

	report := HealthReport{Name: c.name, State: state}
	if state != StateUp {
		return report
	}
	if hc, ok := svc.(HealthChecker); ok {
		report.Err = hc.Check()
	}
	return report
}
