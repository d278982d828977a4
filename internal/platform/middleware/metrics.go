// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leminhkhoa/shelfwise/internal/metrics"
)

// Metrics records a counter and latency observation for every finished request.
//
// The path label uses chi's route pattern ("/book/{id}") rather than the raw
// URL so cardinality stays bounded.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			startTime := time.Now()
			wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrappedWriter, request)

			routePattern := chi.RouteContext(request.Context()).RoutePattern()
			if routePattern == "" {
				routePattern = "unmatched"
			}

			recorder.RecordHTTPRequest(
				request.Method,
				routePattern,
				wrappedWriter.status,
				time.Since(startTime),
			)
		})
	}
}
