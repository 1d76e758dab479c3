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

// Package logging provides the structured logging conventions shared by every
// package in this module: a zerolog.Logger tagged with the owning package's
// import path, and a small set of canonical field names used when building
// log events.
package logging

import (
	"os"
	"reflect"
	"time"

	"github.com/rs/zerolog"
)

// canonical field names used across packages when building log events.
const (
	PACKAGE = "pkg"
	FUNC    = "func"
	SERVICE = "service"
	NAME    = "name"
	EVENT   = "event"
	STATE   = "state"
	MODE    = "mode"
	ERROR   = "error"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Event names a recurring, loggable occurrence. Unlike a one-off log line,
// an Event is meant to be referenced from more than one call site so that
// log consumers can filter on a stable string.
type Event string

// Log starts a log entry for this event on the given level-bound builder,
// stamping the event field before returning control to the caller so
// additional structured fields can still be chained on.
func (e Event) Log(entry *zerolog.Event) *zerolog.Event {
	return entry.Str(EVENT, string(e))
}

// NewPackageLogger returns a logger tagged with the import path of o's type.
// o is typically an unexported zero-size marker struct declared in the
// calling package, e.g. `var logger = logging.NewPackageLogger(pkgMarker{})`.
func NewPackageLogger(o interface{}) zerolog.Logger {
	t := reflect.TypeOf(o)
	return zerolog.New(os.Stderr).With().
		Timestamp().
		Str(PACKAGE, t.PkgPath()).
		Logger()
}
