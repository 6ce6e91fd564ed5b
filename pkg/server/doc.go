// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server provides the HTTP server behind fpland.
//
// API handlers are registered by pattern and wrapped in a middleware chain:
// metrics, API version negotiation, request IDs, panic recovery, token
// bucket rate limiting (golang.org/x/time/rate), request body limits and
// debug logging. System endpoints are served without the chain:
//
//	GET /health    liveness probe
//	GET /ready     readiness probe, 503 until the listener is up
//	GET /metrics   Prometheus metrics
//
// Usage:
//
//	s := server.New(
//	    server.WithName("fpland"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/plan": h.HandlePlan,
//	    }),
//	)
//	err := s.Run(ctx)
//
// # Configuration
//
// Defaults come from pkg/defaults and can be overridden with environment
// variables:
//
//	PORT                        listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS    graceful shutdown timeout
//	RATE_LIMIT                  requests per second
//
// # Errors
//
// Every error response is an ErrorResponse carrying the error code, message,
// request ID and a retryable hint. WriteErrorFromErr maps the planner error
// codes to HTTP status: unknown products and invalid requests are 400,
// infeasible and unbounded models are 422, an unavailable solver is 503 and
// timeouts are 504.
package server
