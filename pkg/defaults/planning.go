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

package defaults

// Production model bounds and penalties.
const (
	// RecipeMax is the upper bound on any recipe's scale variable.
	RecipeMax = 100.0

	// ProductMax is the upper bound on any product's net surplus.
	ProductMax = 10000.0

	// RecipeCost is the per-unit-scale penalty subtracted from every recipe's
	// objective coefficient. It breaks ties in favor of fewer recipes.
	RecipeCost = 0.01

	// ReportTolerance is the threshold above which a recipe scale or a produced
	// quantity is reported. Values at or below it are treated as solver noise.
	ReportTolerance = 0.01
)

// Solver settings.
const (
	// SolverBackend is the name of the default LP solver backend.
	SolverBackend = "simplex"

	// SolverTolerance is the numerical tolerance handed to the simplex backend.
	SolverTolerance = 1e-10

	// SolverMaxConcurrent caps simplex runs in flight per process, including
	// runs whose caller already timed out.
	SolverMaxConcurrent = 8
)

// Batch settings.
const (
	// SweepParallelism is the default number of concurrent runs in a sweep.
	SweepParallelism = 4
)
