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

// Package api wires the planner into the fpland HTTP server.
//
// # Endpoints
//
//	POST /v1/plan       optimize a request document (JSON, or YAML with a
//	                    YAML Content-Type) and return the Plan
//	GET  /v1/products   product names referenced by the catalog
//	GET  /v1/recipes    catalog recipes
//
// The listing endpoints accept ?alternates=true to include alternate
// recipes. A plan request without its own recipes is resolved against the
// served catalog, honoring its alternates field.
//
// Health, readiness and metrics endpoints come from pkg/server.
//
// # Configuration
//
//	FPLAN_CATALOG   catalog source: file, URL or cm://namespace/name;
//	                empty serves the built-in catalog
//	LOG_LEVEL       debug, info, warn or error
//
// Error responses follow pkg/server: unknown products in a strict request
// return 400 with one entry per product, infeasible and unbounded models
// return 422.
package api
