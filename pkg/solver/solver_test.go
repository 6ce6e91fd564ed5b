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
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/model"
	"github.com/mchmarny/factoryplan/pkg/product"
	"github.com/mchmarny/factoryplan/pkg/recipe"
)

const delta = 1e-6

func buildModel(recipes []*recipe.Recipe, inputs, outputs product.Rates) *model.Model {
	return model.Build(&model.Spec{
		Recipes: recipes,
		Index:   product.NewIndex(recipes),
		Inputs:  inputs,
		Outputs: outputs,
		Bounds:  model.DefaultBounds(),
	})
}

func smeltIron() *recipe.Recipe {
	return recipe.New("Smelt Iron", "Smelter").WithInput("Iron Ore", 30).WithOutput("Iron Ingot", 30)
}

func TestNewBackend(t *testing.T) {
	s, err := New(SimplexName)
	require.NoError(t, err)
	assert.Equal(t, SimplexName, s.Name())
	assert.Contains(t, Backends(), SimplexName)

	_, err = New("glpk")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSolverUnavailable))
}

func TestFailingFactory(t *testing.T) {
	Register("broken", func() (Solver, error) {
		return nil, assert.AnError
	})
	_, err := New("broken")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSolverUnavailable))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSimplexProductionModels(t *testing.T) {
	plate := recipe.New("Iron Plate", "Constructor").WithInput("Iron Ingot", 30).WithOutput("Iron Plate", 20)

	tests := []struct {
		name      string
		recipes   []*recipe.Recipe
		inputs    product.Rates
		outputs   product.Rates
		wantScale []float64
		wantObj   float64
	}{
		{
			name:      "smelt iron with supply",
			recipes:   []*recipe.Recipe{smeltIron()},
			inputs:    product.Rates{"Iron Ore": 30},
			outputs:   product.Rates{"Iron Ingot": 10},
			wantScale: []float64{1},
			wantObj:   299.99,
		},
		{
			name:      "smelt iron without supply",
			recipes:   []*recipe.Recipe{smeltIron()},
			inputs:    product.Rates{"Iron Ore": 0},
			outputs:   product.Rates{"Iron Ingot": 10},
			wantScale: []float64{0},
			wantObj:   0,
		},
		{
			name:      "nothing scored",
			recipes:   []*recipe.Recipe{smeltIron()},
			inputs:    product.Rates{"Iron Ore": 30},
			outputs:   nil,
			wantScale: []float64{0},
			wantObj:   0,
		},
		{
			name:      "two step chain",
			recipes:   []*recipe.Recipe{smeltIron(), plate},
			inputs:    product.Rates{"Iron Ore": 30},
			outputs:   product.Rates{"Iron Plate": 1},
			wantScale: []float64{1, 1},
			wantObj:   20 - 0.02,
		},
		{
			name:      "recipe bound caps scale",
			recipes:   []*recipe.Recipe{smeltIron()},
			inputs:    product.Rates{"Iron Ore": 30000},
			outputs:   product.Rates{"Iron Ingot": 1},
			wantScale: []float64{100},
			wantObj:   3000 - 1,
		},
	}

	s := NewSimplex()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildModel(tt.recipes, tt.inputs, tt.outputs)
			sol, err := s.Solve(context.Background(), m)
			require.NoError(t, err)
			require.True(t, sol.IsOptimal())
			require.Len(t, sol.Values, len(tt.wantScale))
			for j, want := range tt.wantScale {
				assert.InDelta(t, want, sol.Values[j], delta, "scale %d", j)
			}
			assert.InDelta(t, tt.wantObj, sol.Objective, delta)
		})
	}
}

func TestSimplexInfeasible(t *testing.T) {
	tests := []struct {
		name string
		m    *model.Model
	}{
		{
			name: "row cannot be satisfied",
			m: &model.Model{
				Variables:   []model.Variable{{Name: "x", Lower: 0, Upper: 10}},
				Constraints: []model.Constraint{{Name: "c", Lower: 20, Upper: math.Inf(1), Coefficients: []float64{1}}},
				Objective:   []float64{1},
			},
		},
		{
			name: "crossed variable bounds",
			m: &model.Model{
				Variables: []model.Variable{{Name: "x", Lower: 5, Upper: 1}},
				Objective: []float64{1},
			},
		},
		{
			name: "empty row with negative requirement",
			m: &model.Model{
				Variables:   []model.Variable{{Name: "x", Lower: 0, Upper: 1}},
				Constraints: []model.Constraint{{Name: "c", Lower: 1, Upper: 2, Coefficients: []float64{0}}},
				Objective:   []float64{1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := NewSimplex().Solve(context.Background(), tt.m)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInfeasible), "got %v", err)
			require.NotNil(t, sol)
			assert.True(t, sol.IsInfeasible())
			assert.Empty(t, sol.Values)
		})
	}
}

func TestSimplexUnbounded(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name string
		m    *model.Model
	}{
		{
			name: "unconstrained improving variable",
			m: &model.Model{
				Variables: []model.Variable{{Name: "x", Lower: 0, Upper: inf}},
				Objective: []float64{1},
			},
		},
		{
			name: "difference constraint",
			m: &model.Model{
				Variables: []model.Variable{
					{Name: "x", Lower: 0, Upper: inf},
					{Name: "y", Lower: 0, Upper: inf},
				},
				Constraints: []model.Constraint{
					{Name: "c", Lower: math.Inf(-1), Upper: 5, Coefficients: []float64{1, -1}},
				},
				Objective: []float64{1, 0},
			},
		},
		{
			name: "production without caps",
			m: model.Build(&model.Spec{
				Recipes: []*recipe.Recipe{recipe.New("Free Water", "Pump").WithOutput("Water", 60)},
				Index:   product.NewIndex([]*recipe.Recipe{recipe.New("Free Water", "Pump").WithOutput("Water", 60)}),
				Outputs: product.Rates{"Water": 1},
				Bounds:  model.Bounds{RecipeMax: inf, ProductMax: inf, RecipeCost: 0.01},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := NewSimplex().Solve(context.Background(), tt.m)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeUnbounded), "got %v", err)
			require.NotNil(t, sol)
			assert.True(t, sol.IsUnbounded())
		})
	}
}

func TestSimplexGeneralBounds(t *testing.T) {
	inf := math.Inf(1)

	t.Run("minimize with lower row needs phase one", func(t *testing.T) {
		m := &model.Model{
			Variables:   []model.Variable{{Name: "x", Lower: 0, Upper: 10}},
			Constraints: []model.Constraint{{Name: "c", Lower: 2, Upper: inf, Coefficients: []float64{1}}},
			Objective:   []float64{1},
			Sense:       model.Minimize,
		}
		sol, err := NewSimplex().Solve(context.Background(), m)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, sol.Values[0], delta)
		assert.InDelta(t, 2.0, sol.Objective, delta)
	})

	t.Run("shifted lower bound", func(t *testing.T) {
		m := &model.Model{
			Variables: []model.Variable{{Name: "x", Lower: 3, Upper: 10}},
			Objective: []float64{-1},
		}
		sol, err := NewSimplex().Solve(context.Background(), m)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, sol.Values[0], delta)
		assert.InDelta(t, -3.0, sol.Objective, delta)
	})

	t.Run("unused variable with penalty stays at lower bound", func(t *testing.T) {
		m := &model.Model{
			Variables: []model.Variable{
				{Name: "x", Lower: 0, Upper: 4},
				{Name: "idle", Lower: 0, Upper: inf},
			},
			Objective: []float64{2, -0.01},
		}
		sol, err := NewSimplex().Solve(context.Background(), m)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, sol.Values[0], delta)
		assert.InDelta(t, 0.0, sol.Values[1], delta)
		assert.InDelta(t, 8.0, sol.Objective, delta)
	})

	t.Run("empty model", func(t *testing.T) {
		sol, err := NewSimplex().Solve(context.Background(), &model.Model{})
		require.NoError(t, err)
		assert.True(t, sol.IsOptimal())
		assert.Empty(t, sol.Values)
		assert.Zero(t, sol.Objective)
	})
}

func TestSimplexInvalidModels(t *testing.T) {
	tests := []struct {
		name string
		m    *model.Model
	}{
		{"nil model", nil},
		{
			name: "objective length mismatch",
			m: &model.Model{
				Variables: []model.Variable{{Name: "x", Upper: 1}},
				Objective: []float64{1, 2},
			},
		},
		{
			name: "constraint length mismatch",
			m: &model.Model{
				Variables:   []model.Variable{{Name: "x", Upper: 1}},
				Constraints: []model.Constraint{{Name: "c", Upper: 1, Coefficients: []float64{1, 1}}},
				Objective:   []float64{1},
			},
		},
		{
			name: "infinite lower bound",
			m: &model.Model{
				Variables: []model.Variable{{Name: "x", Lower: math.Inf(-1), Upper: 1}},
				Objective: []float64{1},
			},
		},
		{
			name: "NaN constraint bound",
			m: &model.Model{
				Variables:   []model.Variable{{Name: "x", Upper: 1}},
				Constraints: []model.Constraint{{Name: "c", Lower: math.NaN(), Upper: 1, Coefficients: []float64{1}}},
				Objective:   []float64{1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := NewSimplex().Solve(context.Background(), tt.m)
			require.Error(t, err)
			assert.Nil(t, sol)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
		})
	}
}

func TestSimplexCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := buildModel([]*recipe.Recipe{smeltIron()}, product.Rates{"Iron Ore": 30}, product.Rates{"Iron Ingot": 10})
	sol, err := NewSimplex().Solve(ctx, m)
	require.Error(t, err)
	assert.Nil(t, sol)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusOptimal:    "optimal",
		StatusInfeasible: "infeasible",
		StatusUnbounded:  "unbounded",
		StatusUnknown:    "unknown",
	}
	for s, want := range tests {
		assert.Equal(t, want, s.String())
	}

	var nilSol *Solution
	assert.False(t, nilSol.IsOptimal())
	assert.False(t, nilSol.IsInfeasible())
	assert.False(t, nilSol.IsUnbounded())
}

func TestWithTolerance(t *testing.T) {
	s := NewSimplex(WithTolerance(1e-6))
	assert.Equal(t, 1e-6, s.tol)

	s = NewSimplex(WithTolerance(-1))
	assert.Greater(t, s.tol, 0.0)
}

func TestSimplexWaitsForSlot(t *testing.T) {
	s := NewSimplex(WithMaxConcurrent(1))
	m := buildModel([]*recipe.Recipe{smeltIron()}, product.Rates{"Iron Ore": 30}, product.Rates{"Iron Ingot": 10})

	// Hold the only slot, as an abandoned run would.
	require.NoError(t, s.slots.Acquire(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	sol, err := s.Solve(ctx, m)
	require.Error(t, err)
	assert.Nil(t, sol)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout), "got %v", err)

	s.slots.Release(1)
	sol, err = s.Solve(context.Background(), m)
	require.NoError(t, err)
	assert.True(t, sol.IsOptimal())

	// The slot is returned once the run finishes.
	assert.True(t, s.slots.TryAcquire(1))
	s.slots.Release(1)
}

func TestWithMaxConcurrent(t *testing.T) {
	assert.Same(t, solveSlots, NewSimplex().slots)
	assert.Same(t, solveSlots, NewSimplex(WithMaxConcurrent(0)).slots)
	assert.NotSame(t, solveSlots, NewSimplex(WithMaxConcurrent(2)).slots)
}
