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
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mchmarny/factoryplan/pkg/header"
	"github.com/mchmarny/factoryplan/pkg/model"
	"github.com/mchmarny/factoryplan/pkg/product"
	"github.com/mchmarny/factoryplan/pkg/recipe"
	"github.com/mchmarny/factoryplan/pkg/solver"
)

// RecipeScale is a recipe that runs in the plan.
type RecipeScale struct {
	Name     string  `json:"name" yaml:"name"`
	Building string  `json:"building,omitempty" yaml:"building,omitempty"`
	Scale    float64 `json:"scale" yaml:"scale"`
}

// InputBalance is the supply left over for a provided input.
type InputBalance struct {
	Product      string  `json:"product" yaml:"product"`
	Available    float64 `json:"available" yaml:"available"`
	Remaining    float64 `json:"remaining" yaml:"remaining"`
	WithinSupply bool    `json:"withinSupply" yaml:"withinSupply"`
}

// ProductQuantity is the net amount of a product the plan produces.
type ProductQuantity struct {
	Product  string  `json:"product" yaml:"product"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// Plan is the result of an optimization run.
type Plan struct {
	header.Header `json:",inline" yaml:",inline"`

	// ID uniquely identifies the run.
	ID string `json:"id" yaml:"id"`

	// Name is copied from the request.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Status is the solver termination status.
	Status string `json:"status" yaml:"status"`

	// Backend is the solver backend that produced the plan.
	Backend string `json:"backend" yaml:"backend"`

	// Objective is the objective value recomputed from the recipe scales.
	Objective float64 `json:"objective" yaml:"objective"`

	// Recipes lists recipes with a scale above the report tolerance, in
	// request order.
	Recipes []RecipeScale `json:"recipes" yaml:"recipes"`

	// Inputs lists the remaining supply of every recognized input, by name.
	Inputs []InputBalance `json:"inputs" yaml:"inputs"`

	// Produced lists products with net production above the report
	// tolerance, by name.
	Produced []ProductQuantity `json:"produced" yaml:"produced"`

	// Warnings holds validation issues that did not stop the run.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Duration is the wall time of the run.
	Duration string `json:"duration" yaml:"duration"`
}

// RecipeNames returns the names of the recipes used by the plan.
func (p *Plan) RecipeNames() []string {
	names := make([]string, len(p.Recipes))
	for i, r := range p.Recipes {
		names[i] = r.Name
	}
	return names
}

// Scale returns the scale of the named recipe, or zero when it is unused.
func (p *Plan) Scale(name string) float64 {
	for _, r := range p.Recipes {
		if r.Name == name {
			return r.Scale
		}
	}
	return 0
}

// Input returns the balance of the named input.
func (p *Plan) Input(name string) (InputBalance, bool) {
	for _, b := range p.Inputs {
		if b.Product == name {
			return b, true
		}
	}
	return InputBalance{}, false
}

// ProducedQuantity returns the net production of the named product, or
// zero when it is not reported.
func (p *Plan) ProducedQuantity(name string) float64 {
	for _, q := range p.Produced {
		if q.Product == name {
			return q.Quantity
		}
	}
	return 0
}

// projection turns solved scales into the reported plan figures.
type projection struct {
	recipes   []*recipe.Recipe
	index     *product.Index
	inputs    product.Rates
	tolerance float64
}

// net returns the net production of p across all recipes at scales.
func (pr *projection) net(p string, scales []float64) float64 {
	var q float64
	for j, r := range pr.recipes {
		q += r.NetQuantity(p) * scales[j]
	}
	return q
}

func (pr *projection) apply(plan *Plan, m *model.Model, sol *solver.Solution) {
	scales := sol.Values
	plan.Status = sol.Status.String()
	plan.Objective = m.Evaluate(scales)

	plan.Recipes = make([]RecipeScale, 0)
	for j, r := range pr.recipes {
		if scales[j] > pr.tolerance {
			plan.Recipes = append(plan.Recipes, RecipeScale{
				Name:     r.Name,
				Building: r.Building,
				Scale:    scales[j],
			})
		}
	}

	supplied := make([]product.Name, 0, len(pr.inputs))
	for p := range pr.inputs {
		supplied = append(supplied, p)
	}
	slices.Sort(supplied)

	plan.Inputs = make([]InputBalance, 0, len(supplied))
	for _, p := range supplied {
		available := pr.inputs[p]
		remaining := available + pr.net(string(p), scales)
		plan.Inputs = append(plan.Inputs, InputBalance{
			Product:      string(p),
			Available:    available,
			Remaining:    remaining,
			WithinSupply: remaining >= -pr.tolerance,
		})
	}

	plan.Produced = make([]ProductQuantity, 0)
	for _, p := range pr.index.Names() {
		if q := pr.net(string(p), scales); q > pr.tolerance {
			plan.Produced = append(plan.Produced, ProductQuantity{Product: string(p), Quantity: q})
		}
	}
}

// WriteSummary renders the plan as a human readable report.
func (p *Plan) WriteSummary(w io.Writer) error {
	var sb strings.Builder

	if len(p.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, warn := range p.Warnings {
			fmt.Fprintf(&sb, "  %s\n", warn)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Solution:\n")
	fmt.Fprintf(&sb, "Objective value: %.2f\n", p.Objective)

	sb.WriteString("\nRecipes Used:\n")
	for _, r := range p.Recipes {
		fmt.Fprintf(&sb, "%s: %.2f\n", r.Name, r.Scale)
	}

	sb.WriteString("\nInputs Remaining:\n")
	for _, b := range p.Inputs {
		fmt.Fprintf(&sb, "%s: %.2f\n", b.Product, b.Remaining)
	}

	sb.WriteString("\nProduced Products:\n")
	for _, q := range p.Produced {
		fmt.Fprintf(&sb, "%s: %.2f\n", q.Product, q.Quantity)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
