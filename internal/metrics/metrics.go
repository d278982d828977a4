// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

// Package metrics provides Prometheus metric collection and exposition.
//
// # Architecture
//
// A single [Collector] is created at startup, registered against a
// process-local registry, and injected into the layers that record events
// (HTTP middleware, borrow workflow). Handlers never talk to Prometheus
// types directly — they go through the [Recorder] interface so tests can
// substitute a no-op.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metric-recording interface used by middleware and services.
type Recorder interface {
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)
	RecordBorrowOutcome(outcome string)
	RecordReturn()
}

// Collector implements [Recorder] backed by Prometheus metrics.
type Collector struct {
	httpRequests   *prometheus.CounterVec
	httpLatency    prometheus.Histogram
	borrowOutcomes *prometheus.CounterVec
	returns        prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shelfwise_http_requests_total",
			Help: "HTTP requests processed, partitioned by method, path and status code.",
		}, []string{"method", "path", "status"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shelfwise_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		borrowOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shelfwise_borrow_outcomes_total",
			Help: "Borrow workflow results, partitioned by typed outcome.",
		}, []string{"outcome"}),
		returns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shelfwise_returns_total",
			Help: "Completed book returns.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.borrowOutcomes,
		c.returns,
	)

	return c
}

// NewRegistry creates a registry preloaded with the standard Go runtime collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// RecordHTTPRequest counts one finished HTTP request and observes its latency.
func (c *Collector) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// RecordBorrowOutcome counts one borrow attempt by its typed outcome.
func (c *Collector) RecordBorrowOutcome(outcome string) {
	c.borrowOutcomes.WithLabelValues(outcome).Inc()
}

// RecordReturn counts one completed return.
func (c *Collector) RecordReturn() {
	c.returns.Inc()
}

// Handler returns the Prometheus scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// # No-op Recorder

// Nop is a [Recorder] that discards all measurements. Used in tests.
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordBorrowOutcome(string)                           {}
func (Nop) RecordReturn()                                        {}
