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

package recipe

import (
	"fmt"
	"math"

	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/header"
)

// Catalog is an ordered set of recipes. Order is preserved from the source
// document and determines variable order in the production model.
type Catalog struct {
	header.Header `json:",inline" yaml:",inline"`

	// Recipes is the ordered list of recipes in the catalog.
	Recipes []*Recipe `json:"recipes" yaml:"recipes"`
}

// NewCatalog wraps recipes into a catalog document.
func NewCatalog(recipes []*Recipe) *Catalog {
	c := &Catalog{Recipes: recipes}
	c.Kind = header.KindCatalog
	c.APIVersion = header.APIVersion
	return c
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Recipes)
}

// Get returns the recipe with the given name.
func (c *Catalog) Get(name string) (*Recipe, bool) {
	for _, r := range c.Recipes {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// Defaults returns the recipes that are available without unlocking
// alternates, preserving catalog order.
func (c *Catalog) Defaults() []*Recipe {
	out := make([]*Recipe, 0, len(c.Recipes))
	for _, r := range c.Recipes {
		if !r.Alternate {
			out = append(out, r)
		}
	}
	return out
}

// Select returns all recipes when alternates is true, otherwise Defaults.
func (c *Catalog) Select(alternates bool) []*Recipe {
	if alternates {
		out := make([]*Recipe, len(c.Recipes))
		copy(out, c.Recipes)
		return out
	}
	return c.Defaults()
}

// Validate checks the catalog header and its recipes. See Validate.
func (c *Catalog) Validate() error {
	if c == nil || len(c.Recipes) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "catalog contains no recipes")
	}
	if !c.Header.Check(header.KindCatalog) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "document is not a catalog",
			map[string]any{"kind": c.Kind.String()})
	}
	return Validate(c.Recipes)
}

// Validate checks recipes for empty or duplicate names and for rates that
// are not positive finite numbers.
func Validate(recipes []*Recipe) error {
	if len(recipes) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "no recipes to validate")
	}

	seen := make(map[string]int, len(recipes))
	for i, r := range recipes {
		if r == nil {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "recipe entry is empty",
				map[string]any{"index": i})
		}
		if r.Name == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "recipe name is required",
				map[string]any{"index": i})
		}
		if prev, ok := seen[r.Name]; ok {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate recipe name %q", r.Name),
				map[string]any{"index": i, "previous": prev})
		}
		seen[r.Name] = i

		if len(r.Inputs) == 0 && len(r.Outputs) == 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("recipe %q has no inputs or outputs", r.Name),
				map[string]any{"recipe": r.Name})
		}
		if err := validateRates(r.Name, "inputs", r.Inputs); err != nil {
			return err
		}
		if err := validateRates(r.Name, "outputs", r.Outputs); err != nil {
			return err
		}
	}
	return nil
}

func validateRates(recipeName, field string, rates Rates) error {
	for _, p := range rates.Names() {
		v := rates[p]
		if p == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("recipe %q has an empty product name", recipeName),
				map[string]any{"recipe": recipeName, "field": field})
		}
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("recipe %q has invalid rate %v for %q", recipeName, v, p),
				map[string]any{"recipe": recipeName, "field": field, "product": p})
		}
	}
	return nil
}
