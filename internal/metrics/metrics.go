// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package metrics counts pipeline runs for the current session. The collectors
// live in a private registry so nothing leaks into the process-wide default.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeSuccess         = "success"
	OutcomeEmptyQuestion   = "empty_question"
	OutcomeGenerationError = "generation_failed"
	OutcomeExecutionError  = "execution_failed"
	OutcomeOther           = "error"
)

// Session holds the collectors of one CLI session.
type Session struct {
	registry          *prometheus.Registry
	runsTotal         *prometheus.CounterVec
	generationLatency prometheus.Histogram
}

// NewSession registers a fresh set of collectors.
func NewSession() *Session {
	s := &Session{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asksql_pipeline_runs_total",
				Help: "Total number of question pipeline runs by outcome.",
			},
			[]string{"outcome"},
		),
		generationLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "asksql_generation_latency_seconds",
				Help:    "Latency of model completion requests.",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
		),
	}
	s.registry.MustRegister(s.runsTotal, s.generationLatency)
	return s
}

// ObserveRun records the outcome of one pipeline run.
func (s *Session) ObserveRun(outcome string) {
	if s == nil {
		return
	}
	s.runsTotal.WithLabelValues(outcome).Inc()
}

// ObserveGeneration records how long a completion request took.
func (s *Session) ObserveGeneration(d time.Duration) {
	if s == nil {
		return
	}
	s.generationLatency.Observe(d.Seconds())
}

// Runs returns the number of runs recorded for outcome.
func (s *Session) Runs(outcome string) float64 {
	families, err := s.registry.Gather()
	if err != nil {
		return 0
	}
	for _, mf := range families {
		if mf.GetName() != "asksql_pipeline_runs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelValue(m, "outcome") == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

// Summary renders the gathered metrics as short human-readable lines.
func (s *Session) Summary() (string, error) {
	families, err := s.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		switch mf.GetType() {
		case dto.MetricType_COUNTER:
			for _, m := range mf.GetMetric() {
				lines = append(lines, fmt.Sprintf("runs %-18s %d", labelValue(m, "outcome"), int64(m.GetCounter().GetValue())))
			}
		case dto.MetricType_HISTOGRAM:
			for _, m := range mf.GetMetric() {
				h := m.GetHistogram()
				if h.GetSampleCount() == 0 {
					continue
				}
				avg := time.Duration(h.GetSampleSum() / float64(h.GetSampleCount()) * float64(time.Second))
				lines = append(lines, fmt.Sprintf("model calls %-11d avg %s", h.GetSampleCount(), avg.Round(time.Millisecond)))
			}
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
