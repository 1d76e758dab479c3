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
	"strings"

	"github.com/oysterpack/svccontainer/pkg/commons/collections"
)

// ServiceName is a canonical dotted service identity, e.g. "jboss.web.server".
// Two names are equal iff their segment sequences are equal.
type ServiceName struct {
	segments []string
}

// NewServiceName builds a ServiceName from one or more non-empty segments.
func NewServiceName(segments ...string) ServiceName {
	s := make([]string, len(segments))
	copy(s, segments)
	return ServiceName{segments: s}
}

// ParseServiceName splits a dotted path into a ServiceName.
func ParseServiceName(dotted string) ServiceName {
	return NewServiceName(strings.Split(dotted, ".")...)
}

func (n ServiceName) String() string {
	return strings.Join(n.segments, ".")
}

// Equals reports whether n and other denote the same service.
func (n ServiceName) Equals(other ServiceName) bool {
	return collections.StringSlicesAreEqual(n.segments, other.segments)
}

// key is the comparable form used as a sync.Map / map key.
func (n ServiceName) key() string {
	return n.String()
}
