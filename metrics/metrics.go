// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by method, route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabletamer_http_requests_total",
		Help: "Total HTTP requests served.",
	}, []string{"method", "path", "status"})

	// HTTPDuration observes request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tabletamer_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// BatchChunks counts batch-write chunk outcomes.
	BatchChunks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabletamer_batch_chunks_total",
		Help: "Batch-write chunks by final outcome.",
	}, []string{"result"})

	// ImportedGuests counts guests persisted through the import pipeline.
	ImportedGuests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabletamer_imported_guests_total",
		Help: "Guests persisted by spreadsheet imports.",
	})
)
