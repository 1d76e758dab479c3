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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPReporter is itself an installable Service that serves /metrics (via
// promhttp against c.MetricsGatherer()) and /healthz (via c.RunHealthChecks)
// on addr. It has no dependencies of its own and is typically installed with
// ModeActive so it comes up alongside everything else it is meant to observe.
type HTTPReporter struct {
	addr   string
	c      *Container
	server *http.Server
}

// NewHTTPReporter builds a Service that exposes c's metrics and aggregate
// health over HTTP on addr (e.g. ":9102").
func NewHTTPReporter(addr string, c *Container) *HTTPReporter {
	return &HTTPReporter{addr: addr, c: c}
}

func (r *HTTPReporter) Start(ctx *StartContext) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.c.MetricsGatherer(), promhttp.HandlerOpts{
		ErrorLog:      reporterErrorLogger{},
		ErrorHandling: promhttp.ContinueOnError,
	}))
	mux.HandleFunc("/healthz", r.serveHealthz)

	r.server = &http.Server{Addr: r.addr, Handler: mux}
	go func() {
		if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTPReporter ListenAndServe exited")
		}
	}()
	return nil
}

func (r *HTTPReporter) Stop(ctx *StopContext) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return r.server.Shutdown(shutdownCtx)
}

func (r *HTTPReporter) serveHealthz(w http.ResponseWriter, req *http.Request) {
	reports := r.c.RunHealthChecks()
	status := http.StatusOK
	body := make([]map[string]any, len(reports))
	for i, rep := range reports {
		entry := map[string]any{
			"name":    rep.Name.String(),
			"state":   rep.State.String(),
			"healthy": rep.Healthy(),
		}
		if rep.Err != nil {
			entry["error"] = rep.Err.Error()
		}
		if !rep.Healthy() {
			status = http.StatusServiceUnavailable
		}
		body[i] = entry
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// reporterErrorLogger adapts our package logger to promhttp.Logger.
type reporterErrorLogger struct{}

func (reporterErrorLogger) Println(v ...interface{}) {
	logger.Error().Msg(fmt.Sprint(v...))
}
