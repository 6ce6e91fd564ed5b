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

package planner

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mchmarny/factoryplan/pkg/defaults"
	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/header"
	"github.com/mchmarny/factoryplan/pkg/model"
	"github.com/mchmarny/factoryplan/pkg/product"
)

// Option is a functional option for configuring Optimizer instances.
type Option func(*Optimizer)

// WithSolver sets the solver backend by registry name.
func WithSolver(name string) Option {
	return func(o *Optimizer) {
		o.backend = name
	}
}

// WithStrictValidation rejects requests that name unknown products instead
// of dropping those products with a warning.
func WithStrictValidation(strict bool) Option {
	return func(o *Optimizer) {
		o.strict = strict
	}
}

// WithRecipeMax sets the upper bound on every recipe's scale.
func WithRecipeMax(v float64) Option {
	return func(o *Optimizer) {
		o.bounds.RecipeMax = v
	}
}

// WithProductMax sets the upper bound on every product's net surplus.
func WithProductMax(v float64) Option {
	return func(o *Optimizer) {
		o.bounds.ProductMax = v
	}
}

// WithRecipeCost sets the per-scale penalty applied to every recipe.
func WithRecipeCost(v float64) Option {
	return func(o *Optimizer) {
		o.bounds.RecipeCost = v
	}
}

// WithTolerance sets the threshold above which scales and quantities are reported.
func WithTolerance(v float64) Option {
	return func(o *Optimizer) {
		o.tolerance = v
	}
}

// WithVersion sets the tool version stamped into plan headers.
func WithVersion(version string) Option {
	return func(o *Optimizer) {
		o.version = version
	}
}

// Optimizer turns requests into production plans. It holds no per-run
// state and is safe for concurrent use.
type Optimizer struct {
	backend   string
	strict    bool
	bounds    model.Bounds
	tolerance float64
	version   string
}

// New creates an Optimizer with the given options.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		backend:   defaults.SolverBackend,
		bounds:    model.DefaultBounds(),
		tolerance: defaults.ReportTolerance,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Backend returns the configured solver backend name.
func (o *Optimizer) Backend() string {
	return o.backend
}

// validate rejects settings that would make every model infeasible or
// meaningless. Bounds may be +Inf; the cost and tolerance must be finite.
func (o *Optimizer) validate() error {
	settings := []struct {
		name   string
		value  float64
		finite bool
	}{
		{"recipeMax", o.bounds.RecipeMax, false},
		{"productMax", o.bounds.ProductMax, false},
		{"recipeCost", o.bounds.RecipeCost, true},
		{"tolerance", o.tolerance, true},
	}
	for _, st := range settings {
		if st.value < 0 || math.IsNaN(st.value) || (st.finite && math.IsInf(st.value, 0)) {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("optimizer setting %s must be a non-negative number, got %v", st.name, st.value),
				map[string]any{"setting": st.name})
		}
	}
	return nil
}

// Optimize validates req, builds the production model, solves it, and
// projects the solution into a Plan.
//
// Unknown product names are dropped with a warning unless the optimizer or
// the request is strict, in which case all of them are returned as one
// joined error and nothing is solved.
func (o *Optimizer) Optimize(ctx context.Context, req *Request) (*Plan, error) {
	start := time.Now()

	plan, err := o.optimize(ctx, req)

	optimizeDuration.Observe(time.Since(start).Seconds())
	optimizeOutcomes.WithLabelValues(outcomeOf(plan, err)).Inc()

	if err != nil {
		return nil, err
	}
	plan.Duration = time.Since(start).String()
	return plan, nil
}

func (o *Optimizer) optimize(ctx context.Context, req *Request) (*Plan, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ix := product.NewIndex(req.Recipes)
	inputs, inputIssues := ix.Filter(product.FieldInputs, req.Inputs)
	outputs, outputIssues := ix.Filter(product.FieldOutputs, req.Outputs)
	unknownProducts.WithLabelValues(string(product.FieldInputs)).Add(float64(len(inputIssues)))
	unknownProducts.WithLabelValues(string(product.FieldOutputs)).Add(float64(len(outputIssues)))

	issues := append(inputIssues, outputIssues...)
	if len(issues) > 0 && (o.strict || req.Strict) {
		return nil, stderrors.Join(issues...)
	}

	plan := &Plan{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Backend: o.backend,
	}
	plan.Init(header.KindPlan, o.version)

	for _, issue := range issues {
		slog.Warn("ignoring unknown product", "request", req.Name, "error", issue)
		plan.Warnings = append(plan.Warnings, issue.Error())
	}

	s, err := solverFor(o.backend)
	if err != nil {
		return nil, err
	}

	m := model.Build(&model.Spec{
		Recipes: req.Recipes,
		Index:   ix,
		Inputs:  inputs,
		Outputs: outputs,
		Bounds:  o.bounds,
	})

	slog.Debug("solving production model",
		"request", req.Name,
		"backend", o.backend,
		"recipes", len(m.Variables),
		"products", len(m.Constraints))

	sol, err := s.Solve(ctx, m)
	if err != nil {
		return nil, err
	}

	pr := &projection{
		recipes:   req.Recipes,
		index:     ix,
		inputs:    inputs,
		tolerance: o.tolerance,
	}
	pr.apply(plan, m, sol)

	slog.Debug("production plan ready",
		"request", req.Name,
		"objective", plan.Objective,
		"recipes", len(plan.Recipes))

	return plan, nil
}

// outcomeOf labels a run for the outcome counter.
func outcomeOf(plan *Plan, err error) string {
	if err == nil {
		return plan.Status
	}
	switch errors.CodeOf(err) {
	case errors.ErrCodeInfeasible:
		return "infeasible"
	case errors.ErrCodeUnbounded:
		return "unbounded"
	case errors.ErrCodeInvalidRequest, errors.ErrCodeUnknownProduct:
		return "invalid"
	case errors.ErrCodeTimeout:
		return "timeout"
	default:
		return "error"
	}
}
