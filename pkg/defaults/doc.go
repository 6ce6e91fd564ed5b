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

// Package defaults provides centralized configuration constants for the planner.
//
// This package defines the production model bounds, solver settings, timeout
// values, and other configuration defaults used across the codebase.
// Centralizing these values ensures consistency and makes tuning easier.
//
// # Categories
//
//   - Planning constants: RecipeMax, ProductMax, RecipeCost, ReportTolerance
//   - Solver settings: default backend and numerical tolerance
//   - Handler timeouts: For HTTP plan requests
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For remote catalog downloads
//   - ConfigMap timeouts: For Kubernetes ConfigMap catalog and plan I/O
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.PlanBuildTimeout)
//	defer cancel()
//
//	opt := planner.New(planner.WithRecipeMax(defaults.RecipeMax))
package defaults
