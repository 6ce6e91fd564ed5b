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

// Package planner computes optimal production plans.
//
// An Optimizer validates a Request against the products its recipes use,
// builds the production model, solves it with a registered solver backend,
// and projects the solution into a Plan:
//
//	opt := planner.New(
//	    planner.WithVersion(version),
//	    planner.WithStrictValidation(false),
//	)
//
//	req := planner.NewRequest(
//	    map[string]float64{"Iron Ore": 30},
//	    map[string]float64{"Iron Ingot": 10},
//	).Resolve(catalog)
//
//	plan, err := opt.Optimize(ctx, req)
//
// # Validation
//
// Input and output names that no recipe uses are reported as UNKNOWN_PRODUCT
// errors. By default those names are dropped, logged, and listed in
// Plan.Warnings while the run continues with the recognized products.
// WithStrictValidation, or Strict on the request, turns them into a joined
// error and skips the solve.
//
// # Plans
//
// A Plan lists every recipe whose scale exceeds the report tolerance, the
// supply remaining for each recognized input (available plus net
// production), and every product whose net production exceeds the report
// tolerance. The objective is recomputed from the recipe scales.
//
// # Sweeps
//
// Sweep runs many requests against a shared read-only catalog with bounded
// concurrency. Vary generates requests that step one input's supply across
// a range.
package planner
