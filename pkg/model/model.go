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
	"slices"

	"github.com/mchmarny/factoryplan/pkg/defaults"
	"github.com/mchmarny/factoryplan/pkg/product"
	"github.com/mchmarny/factoryplan/pkg/recipe"
)

// Sense is the optimization direction of a model.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

func (s Sense) String() string {
	if s == Minimize {
		return "minimize"
	}
	return "maximize"
}

// Variable is a bounded continuous decision variable.
type Variable struct {
	Name  string
	Lower float64
	Upper float64
}

// Constraint bounds a linear combination of the variables:
// Lower <= sum(Coefficients[j] * x[j]) <= Upper.
// An infinite bound leaves that side open.
type Constraint struct {
	Name         string
	Lower        float64
	Upper        float64
	Coefficients []float64
}

// Activity returns the value of the constraint's linear combination at x.
func (c *Constraint) Activity(x []float64) float64 {
	var sum float64
	for j, a := range c.Coefficients {
		if j < len(x) {
			sum += a * x[j]
		}
	}
	return sum
}

// Model is a linear program over bounded variables.
type Model struct {
	Variables   []Variable
	Constraints []Constraint
	Objective   []float64
	Sense       Sense
}

// Evaluate returns the objective value at x.
func (m *Model) Evaluate(x []float64) float64 {
	var sum float64
	for j, c := range m.Objective {
		if j < len(x) {
			sum += c * x[j]
		}
	}
	return sum
}

// Bounds are the production model limits.
type Bounds struct {
	// RecipeMax is the upper bound on every recipe's scale.
	RecipeMax float64

	// ProductMax is the upper bound on every product's net surplus.
	ProductMax float64

	// RecipeCost is subtracted from every recipe's objective coefficient.
	RecipeCost float64
}

// DefaultBounds returns the standard production limits.
func DefaultBounds() Bounds {
	return Bounds{
		RecipeMax:  defaults.RecipeMax,
		ProductMax: defaults.ProductMax,
		RecipeCost: defaults.RecipeCost,
	}
}

// Spec is everything needed to build a production model. Inputs and
// Outputs must already be validated against Index.
type Spec struct {
	Recipes []*recipe.Recipe
	Index   *product.Index
	Inputs  product.Rates
	Outputs product.Rates
	Bounds  Bounds
}

// Build creates the production model: one scale variable per recipe in
// order, one balance constraint per product in index order, and the
// scored objective.
func Build(s *Spec) *Model {
	return &Model{
		Variables:   BuildVariables(s.Recipes, s.Bounds.RecipeMax),
		Constraints: BuildConstraints(s.Recipes, s.Index, s.Inputs, s.Bounds.ProductMax),
		Objective:   BuildObjective(s.Recipes, s.Outputs, s.Bounds.RecipeCost),
		Sense:       Maximize,
	}
}

// BuildVariables returns a scale variable in [0, recipeMax] per recipe.
func BuildVariables(recipes []*recipe.Recipe, recipeMax float64) []Variable {
	vars := make([]Variable, len(recipes))
	for j, r := range recipes {
		vars[j] = Variable{Name: r.Name, Lower: 0, Upper: recipeMax}
	}
	return vars
}

// BuildConstraints returns one balance constraint per product. The net
// production of a product may dip below zero by at most its available
// supply and may not exceed productMax.
func BuildConstraints(recipes []*recipe.Recipe, ix *product.Index, inputs product.Rates, productMax float64) []Constraint {
	names := ix.Names()
	rows := make([]Constraint, len(names))
	for i, p := range names {
		lower := 0.0
		if supply, ok := inputs[p]; ok {
			lower = -supply
		}
		coeffs := make([]float64, len(recipes))
		for j, r := range recipes {
			coeffs[j] = r.NetQuantity(string(p))
		}
		rows[i] = Constraint{
			Name:         string(p),
			Lower:        lower,
			Upper:        productMax,
			Coefficients: coeffs,
		}
	}
	return rows
}

// BuildObjective returns, per recipe, the score-weighted net production of
// the scored outputs minus recipeCost. A recipe that touches no scored
// output gets exactly -recipeCost.
func BuildObjective(recipes []*recipe.Recipe, outputs product.Rates, recipeCost float64) []float64 {
	scored := make([]product.Name, 0, len(outputs))
	for p := range outputs {
		scored = append(scored, p)
	}
	// Sorted so floating point sums are reproducible.
	slices.Sort(scored)

	obj := make([]float64, len(recipes))
	for j, r := range recipes {
		var contribution float64
		for _, p := range scored {
			contribution += outputs[p] * r.NetQuantity(string(p))
		}
		obj[j] = contribution - recipeCost
	}
	return obj
}
