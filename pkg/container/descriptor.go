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
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
)

var wordRegexp = regexp.MustCompile(`^[[:word:]]+$`)

// Descriptor is optional metadata attached to a service purely for log and
// metric labeling; it never participates in dependency resolution or the
// state machine. ServiceName remains the sole identity a controller is
// looked up by.
type Descriptor struct {
	namespace string
	system    string
	component string
	version   *semver.Version
}

// NewDescriptor builds a Descriptor. namespace, system, and component are
// trimmed and lower-cased, and must consist only of word characters.
func NewDescriptor(namespace, system, component, version string) (*Descriptor, error) {
	ns, err := normalizeDescriptorField("namespace", namespace)
	if err != nil {
		return nil, err
	}
	sys, err := normalizeDescriptorField("system", system)
	if err != nil {
		return nil, err
	}
	comp, err := normalizeDescriptorField("component", component)
	if err != nil {
		return nil, err
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", version, err)
	}
	return &Descriptor{namespace: ns, system: sys, component: comp, version: v}, nil
}

func normalizeDescriptorField(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s must not be blank", name)
	}
	if !wordRegexp.MatchString(trimmed) {
		return "", fmt.Errorf("%s contains a non-word character: %q", name, trimmed)
	}
	return strings.ToLower(trimmed), nil
}

// ID returns the {namespace}-{system}-{component}-{version} identity used in
// log and metric labels.
func (d *Descriptor) ID() string {
	return strings.Join([]string{d.namespace, d.system, d.component, d.version.String()}, "-")
}

func (d *Descriptor) String() string { return d.ID() }

func (d *Descriptor) Namespace() string      { return d.namespace }
func (d *Descriptor) System() string         { return d.system }
func (d *Descriptor) Component() string      { return d.component }
func (d *Descriptor) Version() *semver.Version { return d.version }
