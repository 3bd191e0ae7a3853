// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Authentication

Wrap private handlers with bearer-token validation:

	mux.HandleFunc("GET /events", middleware.RequireAuth(jwt, handler))

On success the caller's user ID and email are stored in the request
context, retrievable with middleware.UserID(ctx) and middleware.Email(ctx).
On failure the response is HTTP 401 with the standard envelope.

# Request Logging and Metrics

WithLogging logs request start/completion via slog and records Prometheus
counters and latency histograms labeled by route pattern.

# Response Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.Fail(w, "Guest not found")          // 200 + success:false
	middleware.FailResponse(w, 400, "Invalid JSON") // explicit status
	middleware.AuthFailure(w)                       // canonical 401

# CORS

CORS wraps the whole mux for browser clients, answering preflight OPTIONS
requests inline.
*/
package middleware
