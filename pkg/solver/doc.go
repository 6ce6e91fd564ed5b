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

// Package solver provides linear program backends for production models.
//
// Backends implement Solver and register themselves by name. The default
// backend, "simplex", wraps gonum's simplex method:
//
//	s, err := solver.New(solver.SimplexName)
//	if err != nil {
//	    // SOLVER_UNAVAILABLE
//	}
//	sol, err := s.Solve(ctx, m)
//
// Bounded variables and ranged constraints are rewritten into the equality
// standard form the simplex method expects. Every finite bound becomes one
// row with its own slack column, so the slacks form a feasible starting
// basis whenever all right-hand sides are non-negative; otherwise the
// backend falls back to a phase one start.
//
// An infeasible model returns a Solution with StatusInfeasible and an
// INFEASIBLE error; an unbounded one returns StatusUnbounded and an
// UNBOUNDED error. Solves are never retried.
package solver
