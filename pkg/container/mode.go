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

// Mode governs whether a controller ever attempts to start, and if so, under
// what demand condition.
type Mode int

const (
	// ModeNever: the controller never attempts to start.
	ModeNever Mode = iota
	// ModeOnDemand: starts only while demanded by a dependent or an explicit Demand() call.
	ModeOnDemand
	// ModePassive: same admission rule as ModeOnDemand; distinguished for callers
	// that want to document "started only because something needs it" intent.
	ModePassive
	// ModeActive: starts as soon as dependencies are ready, unconditionally.
	ModeActive
	// ModeAutomatic: admits a start attempt identically to ModeActive.
	ModeAutomatic
)

func (m Mode) String() string {
	switch m {
	case ModeNever:
		return "NEVER"
	case ModeOnDemand:
		return "ON_DEMAND"
	case ModePassive:
		return "PASSIVE"
	case ModeActive:
		return "ACTIVE"
	case ModeAutomatic:
		return "AUTOMATIC"
	default:
		return "UNKNOWN"
	}
}

// demandGated reports whether this mode only admits a start while demanded.
func (m Mode) demandGated() bool {
	return m == ModeOnDemand || m == ModePassive
}

// admits reports whether this mode ever admits a start attempt, given the
// current demand count.
func (m Mode) admits(demand int) bool {
	switch m {
	case ModeNever:
		return false
	case ModeOnDemand, ModePassive:
		return demand > 0
	case ModeActive, ModeAutomatic:
		return true
	default:
		return false
	}
}
