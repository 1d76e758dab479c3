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

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "svccontainer"

// metricsRecorder wraps the prometheus collectors shared by every
// ServiceController and the installer in a Container. A nil *metricsRecorder
// is valid and every method on it is a no-op, so metrics stay optional.
type metricsRecorder struct {
	transitions  *prometheus.CounterVec
	inState      *prometheus.GaugeVec
	installs     *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
}

func newMetricsRecorder(reg prometheus.Registerer) *metricsRecorder {
	m := &metricsRecorder{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "service",
			Name:      "transitions_total",
			Help:      "Count of service lifecycle transitions, by destination state.",
		}, []string{"service", "state"}),
		inState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "service",
			Name:      "in_state",
			Help:      "1 if the service currently sits in the labeled state, 0 otherwise.",
		}, []string{"service", "state"}),
		installs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "installer",
			Name:      "batches_total",
			Help:      "Count of batch installs, by outcome.",
		}, []string{"outcome"}),
		callDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "service",
			Name:      "callback_duration_seconds",
			Help:      "Duration of Start/Stop callbacks.",
		}, []string{"service", "callback"}),
	}
	reg.MustRegister(m.transitions, m.inState, m.installs, m.callDuration)
	return m
}

func (m *metricsRecorder) recordTransition(name ServiceName, desc *Descriptor, from, to State) {
	if m == nil {
		return
	}
	_ = desc // Descriptor fields enrich logs; folding them into metric labels
	// would make them non-const cardinality bombs for versioned services, so
	// they are deliberately left out of the label set here.
	m.transitions.WithLabelValues(name.String(), to.String()).Inc()
	if from != to {
		m.inState.WithLabelValues(name.String(), from.String()).Set(0)
	}
	m.inState.WithLabelValues(name.String(), to.String()).Set(1)
}

func (m *metricsRecorder) recordInstall(outcome string) {
	if m == nil {
		return
	}
	m.installs.WithLabelValues(outcome).Inc()
}

func (m *metricsRecorder) observeCallback(name ServiceName, callback string, seconds float64) {
	if m == nil {
		return
	}
	m.callDuration.WithLabelValues(name.String(), callback).Observe(seconds)
}
