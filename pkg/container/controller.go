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
	"sync"
	"time"
	"weak"

	"github.com/oysterpack/svccontainer/pkg/logging"
	"github.com/oysterpack/svccontainer/pkg/value"
)

type pkgMarker struct{}

var logger = logging.NewPackageLogger(pkgMarker{})

// injection is a type-erased (source, destination) pair accumulated on a
// ServiceBuilder via AddInjection. Erasure lets a ServiceController hold
// injections whose element types differ from each other and from the
// controller's own.
type injection struct {
	get      func() (any, error)
	inject   func(any) error
	uninject func() error
}

// ServiceController owns the lifecycle state machine for a single installed
// service. It is created by the installer and never constructed directly.
type ServiceController struct {
	name       ServiceName
	descriptor *Descriptor
	executor   Executor
	metrics    *metricsRecorder

	factory value.Value[Service]

	mu          sync.Mutex
	state       State
	mode        Mode
	pendingDeps int
	demand      int
	startErr    error
	service     Service

	deps       []*ServiceController
	dependents []weak.Pointer[ServiceController]
	injections []injection
	listeners  []Listener
}

func newServiceController(name ServiceName, factory value.Value[Service], mode Mode, executor Executor, desc *Descriptor, metrics *metricsRecorder) *ServiceController {
	return &ServiceController{
		name:       name,
		descriptor: desc,
		executor:   executor,
		metrics:    metrics,
		factory:    factory,
		mode:       mode,
	}
}

// Name returns the controller's service identity.
func (c *ServiceController) Name() ServiceName {
	return c.name
}

// State returns the controller's current lifecycle state.
func (c *ServiceController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the controller's current admission mode.
func (c *ServiceController) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// FailureCause returns the error that caused StateStartFailed, if any.
func (c *ServiceController) FailureCause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startErr
}

// SetMode changes the controller's admission mode, re-evaluating whether it
// should start or stop as a result. It does not re-derive demand through the
// dependency graph; callers that widen admission after install should pair
// this with Demand if they want dependents-style propagation.
func (c *ServiceController) SetMode(m Mode) {
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
	c.maybeStart()
	c.maybeStopIfModeNoLongerAdmits()
}

// Demand increments the controller's demand count. The first increment
// (0->1) forwards demand to this controller's own dependencies, and
// re-evaluates whether the controller itself should now start.
func (c *ServiceController) Demand() {
	c.mu.Lock()
	c.demand++
	first := c.demand == 1
	deps := append([]*ServiceController(nil), c.deps...)
	c.mu.Unlock()

	if first {
		for _, d := range deps {
			d.Demand()
		}
	}
	c.maybeStart()
}

// Undemand reverses one Demand call. When the demand count reaches zero it
// withdraws demand from this controller's own dependencies and, if this
// controller's mode is demand-gated, stops it.
func (c *ServiceController) Undemand() {
	c.mu.Lock()
	if c.demand > 0 {
		c.demand--
	}
	last := c.demand == 0
	deps := append([]*ServiceController(nil), c.deps...)
	c.mu.Unlock()

	if last {
		for _, d := range deps {
			d.Undemand()
		}
	}
	c.maybeStopIfModeNoLongerAdmits()
}

// Remove transitions a StateDown or StateStartFailed controller to
// StateRemoved. It fails with an *IllegalStateError if the controller is in
// any other state, or still has live dependents.
func (c *ServiceController) Remove() error {
	c.mu.Lock()
	if c.state != StateDown && c.state != StateStartFailed {
		state := c.state
		c.mu.Unlock()
		return &IllegalStateError{Reason: "service must be DOWN or START_FAILED to be removed, was " + state.String()}
	}
	if c.hasLiveDependentsLocked() {
		c.mu.Unlock()
		return &IllegalStateError{Reason: "service still has live dependents"}
	}
	from := c.state
	c.setState(StateRemoved)
	c.mu.Unlock()

	c.notifyListeners(from, StateRemoved)
	c.recordMetric(from, StateRemoved)
	return nil
}

func (c *ServiceController) hasLiveDependentsLocked() bool {
	live := c.dependents[:0]
	alive := false
	for _, w := range c.dependents {
		if w.Value() != nil {
			alive = true
			live = append(live, w)
		}
	}
	c.dependents = live
	return alive
}

// setState moves c.state to to, logging an error if the edge is not one
// validTransitions allows. Callers must hold c.mu.
func (c *ServiceController) setState(to State) {
	if !c.state.canTransitionTo(to) {
		logger.Error().Str(logging.SERVICE, c.name.String()).Str(logging.STATE, c.state.String()).Str("to", to.String()).Msg("illegal state transition attempted")
	}
	c.state = to
}

// addDependency wires dep as a strong dependency of c, registering c as a
// weak dependent of dep. It is only called by the installer, before c is
// visible to anything else.
func (c *ServiceController) addDependency(dep *ServiceController) {
	c.deps = append(c.deps, dep)
	if dep.State() != StateUp {
		c.pendingDeps++
	}
	dep.addDependent(c)
}

func (c *ServiceController) addDependent(dependent *ServiceController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dependents = append(c.dependents, weak.Make(dependent))
}

func (c *ServiceController) addInjection(inj injection) {
	c.injections = append(c.injections, inj)
}

func (c *ServiceController) addListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// demandDependencies forwards initial demand to c's own dependencies; called
// once by the installer right after an ACTIVE/AUTOMATIC controller's
// dependency list is wired.
func (c *ServiceController) demandDependencies() {
	for _, d := range c.deps {
		d.Demand()
	}
}

// evaluateStart is called once by the installer after a controller has been
// fully wired (dependencies, injections, listeners attached) to kick off its
// first admission check.
func (c *ServiceController) evaluateStart() {
	c.maybeStart()
}

func (c *ServiceController) maybeStart() {
	c.mu.Lock()
	if c.state != StateDown || c.pendingDeps != 0 {
		c.mu.Unlock()
		return
	}
	if !c.mode.admits(c.demand) {
		c.mu.Unlock()
		return
	}
	from := c.state
	c.setState(StateStarting)
	c.mu.Unlock()

	c.notifyListeners(from, StateStarting)
	c.recordMetric(from, StateStarting)
	c.executor.Submit(c.runStart)
}

// forceStopMode sets mode to ModeNever and clears demand, then re-evaluates.
// Used by Container.Stop to unwind the whole graph without touching every
// controller's individual Mode/Demand bookkeeping one call at a time.
func (c *ServiceController) forceStopMode() {
	c.mu.Lock()
	c.mode = ModeNever
	c.demand = 0
	c.mu.Unlock()
	c.maybeStop()
}

func (c *ServiceController) maybeStopIfModeNoLongerAdmits() {
	c.mu.Lock()
	state := c.state
	admits := c.mode.admits(c.demand)
	c.mu.Unlock()
	if state == StateUp && !admits {
		c.maybeStop()
	}
}

func (c *ServiceController) maybeStop() {
	c.mu.Lock()
	if c.state != StateUp {
		c.mu.Unlock()
		return
	}
	c.setState(StateStopping)
	c.mu.Unlock()

	c.notifyListeners(StateUp, StateStopping)
	c.notifyDependents(StateUp, StateStopping)
	c.recordMetric(StateUp, StateStopping)
	c.executor.Submit(c.runStop)
}

func (c *ServiceController) runStart() {
	svc, err := c.factory.Get()
	if err != nil {
		c.failStart(err)
		return
	}

	if err := c.applyInjections(); err != nil {
		c.failStart(err)
		return
	}

	ctx := newStartContext()
	began := time.Now()
	startErr := svc.Start(ctx)
	if ctx.isAsync() {
		startErr = ctx.awaitCompletion()
	}
	c.metrics.observeCallback(c.name, "start", time.Since(began).Seconds())
	if startErr != nil {
		c.uninjectAll()
		c.failStart(startErr)
		return
	}

	c.mu.Lock()
	c.service = svc
	from := c.state
	c.setState(StateUp)
	c.mu.Unlock()

	c.notifyListeners(from, StateUp)
	c.notifyDependents(from, StateUp)
	c.recordMetric(from, StateUp)

	// mode or demand may have changed while starting; re-check admission.
	c.maybeStopIfModeNoLongerAdmits()
}

func (c *ServiceController) runStop() {
	c.uninjectAll()

	c.mu.Lock()
	svc := c.service
	c.mu.Unlock()

	if svc != nil {
		ctx := newStopContext()
		began := time.Now()
		stopErr := svc.Stop(ctx)
		if ctx.isAsync() {
			stopErr = ctx.awaitCompletion()
		}
		c.metrics.observeCallback(c.name, "stop", time.Since(began).Seconds())
		if stopErr != nil {
			logger.Warn().Str(logging.SERVICE, c.name.String()).Err(stopErr).Msg("service Stop returned an error")
		}
	}

	c.mu.Lock()
	from := c.state
	c.setState(StateDown)
	c.service = nil
	c.mu.Unlock()

	c.notifyListeners(from, StateDown)
	c.recordMetric(from, StateDown)

	// dependencies may have changed while stopping; re-check admission.
	c.maybeStart()
}

func (c *ServiceController) failStart(cause error) {
	se := &StartException{Service: c.name, Cause: cause}
	c.mu.Lock()
	from := c.state
	c.setState(StateStartFailed)
	c.startErr = se
	c.mu.Unlock()

	c.notifyListeners(from, StateStartFailed)
	c.recordMetric(from, StateStartFailed)
	logger.Warn().Str(logging.SERVICE, c.name.String()).Err(se).Msg("service failed to start")
}

func (c *ServiceController) applyInjections() error {
	for _, inj := range c.injections {
		v, err := inj.get()
		if err != nil {
			return err
		}
		if err := inj.inject(v); err != nil {
			return err
		}
	}
	return nil
}

func (c *ServiceController) uninjectAll() {
	for i := len(c.injections) - 1; i >= 0; i-- {
		if err := c.injections[i].uninject(); err != nil {
			logger.Warn().Str(logging.SERVICE, c.name.String()).Err(err).Msg("uninject failed")
		}
	}
}

// onDependencyTransition is invoked (via the executor, never on dep's own
// call stack) whenever a dependency's state changes in a way this controller
// cares about.
func (c *ServiceController) onDependencyTransition(dep *ServiceController, from, to State) {
	reachedUp := to == StateUp
	leftUp := from == StateUp && to != StateUp

	c.mu.Lock()
	if reachedUp {
		c.pendingDeps--
	} else if leftUp {
		c.pendingDeps++
	}
	pending := c.pendingDeps
	c.mu.Unlock()

	if reachedUp && pending == 0 {
		c.maybeStart()
	} else if leftUp {
		c.maybeStop()
	}
}

func (c *ServiceController) notifyDependents(from, to State) {
	c.mu.Lock()
	deps := make([]*ServiceController, 0, len(c.dependents))
	live := c.dependents[:0]
	for _, w := range c.dependents {
		if d := w.Value(); d != nil {
			deps = append(deps, d)
			live = append(live, w)
		}
	}
	c.dependents = live
	c.mu.Unlock()

	for _, d := range deps {
		dependent := d
		c.executor.Submit(func() { dependent.onDependencyTransition(c, from, to) })
	}
}

func (c *ServiceController) notifyListeners(from, to State) {
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		c.safeNotify(l, from, to)
	}
}

func (c *ServiceController) safeNotify(l Listener, from, to State) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str(logging.SERVICE, c.name.String()).Interface("panic", r).Msg("listener panicked")
		}
	}()
	l.Transition(c, from, to)
}

func (c *ServiceController) recordMetric(from, to State) {
	c.metrics.recordTransition(c.name, c.descriptor, from, to)
}
