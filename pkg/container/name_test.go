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

import "testing"

func TestParseServiceNameRoundTrip(t *testing.T) {
	n := ParseServiceName("jboss.web.server")
	if got := n.String(); got != "jboss.web.server" {
		t.Fatalf("got %q, want %q", got, "jboss.web.server")
	}
}

func TestNewServiceNameEquals(t *testing.T) {
	a := NewServiceName("jboss", "web", "server")
	b := ParseServiceName("jboss.web.server")
	if !a.Equals(b) {
		t.Fatalf("%v should equal %v", a, b)
	}
}

func TestServiceNameNotEquals(t *testing.T) {
	a := ParseServiceName("jboss.web.server")
	b := ParseServiceName("jboss.web.server.connector")
	if a.Equals(b) {
		t.Fatalf("%v should not equal %v", a, b)
	}
	c := ParseServiceName("jboss.ejb.server")
	if a.Equals(c) {
		t.Fatalf("%v should not equal %v", a, c)
	}
}
