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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/factoryplan/pkg/product"
	"github.com/mchmarny/factoryplan/pkg/recipe"
)

func smeltIron() *recipe.Recipe {
	return recipe.New("Smelt Iron", "Smelter").WithInput("Iron Ore", 30).WithOutput("Iron Ingot", 30)
}

func makePlate() *recipe.Recipe {
	return recipe.New("Iron Plate", "Constructor").WithInput("Iron Ingot", 30).WithOutput("Iron Plate", 20)
}

func TestBuildVariables(t *testing.T) {
	vars := BuildVariables([]*recipe.Recipe{smeltIron(), makePlate()}, 100)
	require.Len(t, vars, 2)
	assert.Equal(t, Variable{Name: "Smelt Iron", Lower: 0, Upper: 100}, vars[0])
	assert.Equal(t, "Iron Plate", vars[1].Name)
}

func TestBuildConstraints(t *testing.T) {
	recipes := []*recipe.Recipe{smeltIron(), makePlate()}
	ix := product.NewIndex(recipes)

	rows := BuildConstraints(recipes, ix, product.Rates{"Iron Ore": 30}, 10000)
	require.Len(t, rows, 3)

	tests := []struct {
		name   string
		lower  float64
		coeffs []float64
	}{
		{"Iron Ingot", 0, []float64{30, -30}},
		{"Iron Ore", -30, []float64{-30, 0}},
		{"Iron Plate", 0, []float64{0, 20}},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := rows[i]
			assert.Equal(t, tt.name, row.Name)
			assert.Equal(t, tt.lower, row.Lower)
			assert.Equal(t, 10000.0, row.Upper)
			assert.Equal(t, tt.coeffs, row.Coefficients)
		})
	}
}

func TestBuildConstraintsZeroSupply(t *testing.T) {
	recipes := []*recipe.Recipe{smeltIron()}
	ix := product.NewIndex(recipes)

	rows := BuildConstraints(recipes, ix, product.Rates{"Iron Ore": 0}, 10000)
	require.Len(t, rows, 2)
	assert.Equal(t, "Iron Ore", rows[1].Name)
	assert.Zero(t, rows[1].Lower)
}

func TestBuildObjective(t *testing.T) {
	recipes := []*recipe.Recipe{smeltIron(), makePlate()}

	tests := []struct {
		name    string
		outputs product.Rates
		want    []float64
	}{
		{
			name:    "ingot scored",
			outputs: product.Rates{"Iron Ingot": 10},
			want:    []float64{300 - 0.01, -300 - 0.01},
		},
		{
			name:    "plate scored",
			outputs: product.Rates{"Iron Plate": 1},
			want:    []float64{-0.01, 20 - 0.01},
		},
		{
			name:    "nothing scored",
			outputs: nil,
			want:    []float64{-0.01, -0.01},
		},
		{
			name:    "both scored",
			outputs: product.Rates{"Iron Ingot": 1, "Iron Plate": 2},
			want:    []float64{30 - 0.01, -30 + 40 - 0.01},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildObjective(recipes, tt.outputs, 0.01)
			require.Len(t, got, len(tt.want))
			for j := range tt.want {
				assert.InDelta(t, tt.want[j], got[j], 1e-9)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	recipes := []*recipe.Recipe{smeltIron()}
	ix := product.NewIndex(recipes)

	m := Build(&Spec{
		Recipes: recipes,
		Index:   ix,
		Inputs:  product.Rates{"Iron Ore": 30},
		Outputs: product.Rates{"Iron Ingot": 10},
		Bounds:  DefaultBounds(),
	})

	assert.Equal(t, Maximize, m.Sense)
	assert.Equal(t, "maximize", m.Sense.String())
	require.Len(t, m.Variables, 1)
	assert.Equal(t, 100.0, m.Variables[0].Upper)
	require.Len(t, m.Constraints, 2)
	assert.InDelta(t, 299.99, m.Evaluate([]float64{1}), 1e-9)
	assert.InDelta(t, -30.0, m.Constraints[1].Activity([]float64{1}), 1e-9)
	assert.Zero(t, m.Evaluate(nil))
}

func TestDefaultBounds(t *testing.T) {
	b := DefaultBounds()
	assert.Equal(t, 100.0, b.RecipeMax)
	assert.Equal(t, 10000.0, b.ProductMax)
	assert.Equal(t, 0.01, b.RecipeCost)
}
