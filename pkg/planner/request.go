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
	"maps"
	"math"

	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/header"
	"github.com/mchmarny/factoryplan/pkg/recipe"
	"github.com/mchmarny/factoryplan/pkg/serializer"
)

// Request describes one optimization run.
type Request struct {
	header.Header `json:",inline" yaml:",inline"`

	// Name labels the run in sweeps and logs.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Inputs maps a product to its available supply per minute.
	Inputs map[string]float64 `json:"inputs,omitempty" yaml:"inputs,omitempty"`

	// Outputs maps a desired product to its objective score. Products not
	// listed score zero.
	Outputs map[string]float64 `json:"outputs,omitempty" yaml:"outputs,omitempty"`

	// Alternates includes alternate recipes when recipes come from a catalog.
	Alternates bool `json:"alternates,omitempty" yaml:"alternates,omitempty"`

	// Strict rejects the request when any product name is unknown.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`

	// Recipes is the ordered recipe list to optimize over. When empty it is
	// filled from a catalog by Resolve.
	Recipes []*recipe.Recipe `json:"recipes,omitempty" yaml:"recipes,omitempty"`
}

// NewRequest returns a request document with the given inputs and outputs.
func NewRequest(inputs, outputs map[string]float64) *Request {
	r := &Request{
		Inputs:  inputs,
		Outputs: outputs,
	}
	r.Kind = header.KindRequest
	r.APIVersion = header.APIVersion
	return r
}

// ExampleRequest returns the refinery scenario: turn crude oil, water, coal
// and sulfur into fuel and turbofuel using every recipe, alternates included.
func ExampleRequest() *Request {
	r := NewRequest(
		map[string]float64{
			"Crude Oil": 300,
			"Water":     800,
			"Coal":      533.33,
			"Sulfur":    533.33,
		},
		map[string]float64{
			"Fuel":      600,
			"Turbofuel": 2000,
		},
	)
	r.Name = "example"
	r.Alternates = true
	return r
}

// LoadRequest reads a request document from a file path, an http(s) URL,
// or a cm://namespace/name ConfigMap URI.
func LoadRequest(source, kubeconfig string) (*Request, error) {
	r, err := serializer.FromFileWithKubeconfig[Request](source, kubeconfig)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to load request", err,
			map[string]any{"source": source})
	}
	if !r.Header.Check(header.KindRequest) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "document is not a request",
			map[string]any{"source": source, "kind": r.Kind.String()})
	}
	return r, nil
}

// Clone returns a copy of r with its own input and output maps. Recipes
// are shared.
func (r *Request) Clone() *Request {
	c := *r
	c.Header.Metadata = maps.Clone(r.Header.Metadata)
	c.Inputs = maps.Clone(r.Inputs)
	c.Outputs = maps.Clone(r.Outputs)
	if r.Recipes != nil {
		c.Recipes = append([]*recipe.Recipe(nil), r.Recipes...)
	}
	return &c
}

// Resolve returns a copy of r whose recipes are taken from catalog when r
// does not list its own.
func (r *Request) Resolve(catalog *recipe.Catalog) *Request {
	c := r.Clone()
	if len(c.Recipes) == 0 && catalog != nil {
		c.Recipes = catalog.Select(c.Alternates)
	}
	return c
}

// Validate checks that the request has well-formed recipes and that every
// quantity is a non-negative finite number. Recipes supplied inline with the
// request get the same checks as catalog recipes.
func (r *Request) Validate() error {
	if r == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "request is required")
	}
	if !r.Header.Check(header.KindRequest) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "document is not a request",
			map[string]any{"kind": r.Kind.String()})
	}
	if len(r.Recipes) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "request has no recipes to optimize over")
	}
	if err := recipe.Validate(r.Recipes); err != nil {
		return err
	}
	if err := validateQuantities("inputs", r.Inputs); err != nil {
		return err
	}
	return validateQuantities("outputs", r.Outputs)
}

func validateQuantities(field string, values map[string]float64) error {
	for p, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("%s quantity for %q must be a non-negative finite number, got %v", field, p, v),
				map[string]any{"field": field, "product": p})
		}
	}
	return nil
}
