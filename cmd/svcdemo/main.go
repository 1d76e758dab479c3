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

// svcdemo wires a config service and a server service that depends on it,
// with the listen address injected from config into server, and prints each
// lifecycle transition as it happens.
package main

import (
	"fmt"
	"time"

	"github.com/oysterpack/svccontainer/pkg/container"
	"github.com/oysterpack/svccontainer/pkg/value"
)

type configService struct {
	addr string
}

func (s *configService) Start(ctx *container.StartContext) error { return nil }
func (s *configService) Stop(ctx *container.StopContext) error   { return nil }
func (s *configService) Value() any                              { return s.addr }

type serverService struct {
	addr *value.InjectedValue[string]
}

func (s *serverService) Start(ctx *container.StartContext) error {
	addr, err := s.addr.Get()
	if err != nil {
		return err
	}
	fmt.Println("server bound to", addr)
	return nil
}

func (s *serverService) Stop(ctx *container.StopContext) error {
	fmt.Println("server shutting down")
	return nil
}

// registryValue resolves a named controller's Provider value on demand; it
// is the indirection AddInjection needs since a dependency's controller
// does not exist yet when the dependent's injections are declared.
type registryValue struct {
	registry *container.Registry
	name     container.ServiceName
}

func (v registryValue) Get() (string, error) {
	ctrl, err := v.registry.GetRequired(v.name)
	if err != nil {
		return "", err
	}
	return container.ServiceValue[string](ctrl).Get()
}

func main() {
	c := container.New()
	b := c.BatchBuilder()

	configName := container.ParseServiceName("demo.config")
	serverName := container.ParseServiceName("demo.server")

	b.AddListener(container.ListenerFunc(func(ctrl *container.ServiceController, from, to container.State) {
		fmt.Printf("%s: %s -> %s\n", ctrl.Name(), from, to)
	}))

	if _, err := container.AddService[string](b, configName, value.Immediate[container.Service](&configService{addr: "0.0.0.0:8080"})); err != nil {
		panic(err)
	}

	addr := value.NewInjectedValue[string]()
	server := &serverService{addr: addr}
	serverBuilder, err := container.AddService[any](b, serverName, value.Immediate[container.Service](server))
	if err != nil {
		panic(err)
	}
	serverBuilder.AddDependency(configName)
	container.AddInjection[any, string](serverBuilder, registryValue{registry: c.Registry(), name: configName}, addr)

	if err := b.Install(); err != nil {
		panic(err)
	}

	ctrl, ok := c.Registry().Get(serverName)
	if !ok {
		panic("server not installed")
	}
	for ctrl.State() != container.StateUp {
		time.Sleep(time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	c.Stop()
}
