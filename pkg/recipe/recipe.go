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
	"sort"
	"strconv"
	"strings"
)

// Rates maps a product name to a per-minute rate.
type Rates map[string]float64

// Get returns the rate for product, or zero when it is not listed.
func (r Rates) Get(product string) float64 {
	return r[product]
}

// Names returns the product names in lexicographic order.
func (r Rates) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Recipe is a fixed-ratio transformation rule: running it at scale 1
// consumes Inputs and produces Outputs, both in units per minute.
//
// A Recipe is not modified once its catalog has been loaded and is safe
// to share across concurrent optimization runs.
type Recipe struct {
	// Name is the unique display name of the recipe.
	Name string `json:"name" yaml:"name"`

	// Building is the machine the recipe runs in.
	Building string `json:"building,omitempty" yaml:"building,omitempty"`

	// Alternate marks recipes that must be unlocked separately in the game.
	Alternate bool `json:"alternate,omitempty" yaml:"alternate,omitempty"`

	// Inputs are the consumed products and their rates.
	Inputs Rates `json:"inputs,omitempty" yaml:"inputs,omitempty"`

	// Outputs are the produced products and their rates.
	Outputs Rates `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// New creates a recipe with empty input and output sets.
func New(name, building string) *Recipe {
	return &Recipe{
		Name:     name,
		Building: building,
		Inputs:   Rates{},
		Outputs:  Rates{},
	}
}

// WithInput sets the consumption rate of product and returns the recipe.
// It is intended for catalog construction only.
func (r *Recipe) WithInput(product string, rate float64) *Recipe {
	if r.Inputs == nil {
		r.Inputs = Rates{}
	}
	r.Inputs[product] = rate
	return r
}

// WithOutput sets the production rate of product and returns the recipe.
// It is intended for catalog construction only.
func (r *Recipe) WithOutput(product string, rate float64) *Recipe {
	if r.Outputs == nil {
		r.Outputs = Rates{}
	}
	r.Outputs[product] = rate
	return r
}

// NetQuantity returns outputs[product] - inputs[product], treating missing
// entries as zero. Positive means the recipe produces the product.
func (r *Recipe) NetQuantity(product string) float64 {
	return r.Outputs.Get(product) - r.Inputs.Get(product)
}

// ProductsUsed returns the union of input and output product names in
// lexicographic order.
func (r *Recipe) ProductsUsed() []string {
	seen := make(map[string]struct{}, len(r.Inputs)+len(r.Outputs))
	for p := range r.Inputs {
		seen[p] = struct{}{}
	}
	for p := range r.Outputs {
		seen[p] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for p := range seen {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}

// Description renders the recipe as a multi-line human readable block.
func (r *Recipe) Description() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	if r.Alternate {
		sb.WriteString(" (alternate)")
	}
	fmt.Fprintf(&sb, "\nProduced in: %s\nInputs:", r.Building)
	writeRates(&sb, r.Inputs)
	sb.WriteString("\nOutputs:")
	writeRates(&sb, r.Outputs)
	return sb.String()
}

func writeRates(sb *strings.Builder, rates Rates) {
	for _, name := range rates.Names() {
		sb.WriteString("\n\t")
		sb.WriteString(strconv.FormatFloat(rates[name], 'f', -1, 64))
		sb.WriteString(" ")
		sb.WriteString(name)
	}
}

func (r *Recipe) String() string {
	return r.Name
}
