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

package solver

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/mchmarny/factoryplan/pkg/defaults"
	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/model"
)

// SimplexName is the registry name of the gonum simplex backend.
const SimplexName = "simplex"

// solveSlots bounds simplex runs across the process, counting runs that
// outlived their caller's context.
var solveSlots = semaphore.NewWeighted(defaults.SolverMaxConcurrent)

func init() {
	Register(SimplexName, func() (Solver, error) {
		return NewSimplex(), nil
	})
}

// SimplexOption configures a Simplex backend.
type SimplexOption func(*Simplex)

// WithTolerance sets the numerical tolerance passed to the simplex method.
func WithTolerance(tol float64) SimplexOption {
	return func(s *Simplex) {
		if tol >= 0 {
			s.tol = tol
		}
	}
}

// WithMaxConcurrent gives the backend its own limit of n simplex runs in
// flight instead of the process-wide one.
func WithMaxConcurrent(n int64) SimplexOption {
	return func(s *Simplex) {
		if n > 0 {
			s.slots = semaphore.NewWeighted(n)
		}
	}
}

// Simplex solves models with gonum's Dantzig simplex implementation.
// It is safe for concurrent use.
type Simplex struct {
	tol   float64
	slots *semaphore.Weighted
}

// NewSimplex returns a simplex backend.
func NewSimplex(opts ...SimplexOption) *Simplex {
	s := &Simplex{tol: defaults.SolverTolerance, slots: solveSlots}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the backend name.
func (s *Simplex) Name() string {
	return SimplexName
}

type simplexResult struct {
	z   []float64
	err error
}

// Solve converts m to standard form and runs the simplex method. The
// underlying solve cannot be interrupted; when ctx ends first Solve
// returns a TIMEOUT error and the solve finishes in the background while
// still holding its slot. A caller that cannot get a slot before ctx ends
// also gets TIMEOUT.
func (s *Simplex) Solve(ctx context.Context, m *model.Model) (*Solution, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "model is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "solve canceled before start", err)
	}

	sf, decided, err := toStandardForm(m)
	if err != nil {
		return nil, err
	}
	if decided != nil {
		return finish(m, decided.status, decided.values)
	}

	rows, cols := sf.a.Dims()
	slog.Debug("running simplex",
		"variables", len(m.Variables),
		"constraints", len(m.Constraints),
		"rows", rows,
		"columns", cols,
		"phaseOne", sf.basic == nil)

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "no solver slot available in time", err)
	}

	done := make(chan simplexResult, 1)
	go func() {
		res := s.run(sf)
		s.slots.Release(1)
		done <- res
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeTimeout, "solve did not finish in time", ctx.Err())
	case res := <-done:
		switch {
		case res.err == nil:
			return finish(m, StatusOptimal, sf.values(res.z))
		case stderrors.Is(res.err, lp.ErrInfeasible):
			return finish(m, StatusInfeasible, nil)
		case stderrors.Is(res.err, lp.ErrUnbounded):
			return finish(m, StatusUnbounded, nil)
		default:
			return nil, errors.Wrap(errors.ErrCodeInternal, "simplex failed", res.err)
		}
	}
}

// finish builds the solution for a terminated solve and the matching
// error for non-optimal outcomes.
func finish(m *model.Model, status Status, values []float64) (*Solution, error) {
	sol := &Solution{Status: status}
	switch status {
	case StatusOptimal:
		sol.Values = values
		sol.Objective = m.Evaluate(values)
		return sol, nil
	case StatusInfeasible:
		return sol, errors.New(errors.ErrCodeInfeasible, "production model has no feasible plan")
	case StatusUnbounded:
		return sol, errors.New(errors.ErrCodeUnbounded, "production model objective is unbounded")
	default:
		return sol, errors.New(errors.ErrCodeInternal, fmt.Sprintf("unexpected solver status %s", status))
	}
}

func (s *Simplex) run(sf *standardForm) (res simplexResult) {
	defer func() {
		if r := recover(); r != nil {
			res = simplexResult{err: fmt.Errorf("simplex panic: %v", r)}
		}
	}()
	_, z, err := lp.Simplex(sf.c, sf.a, sf.b, s.tol, sf.basic)
	return simplexResult{z: z, err: err}
}
