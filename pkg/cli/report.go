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

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mchmarny/factoryplan/pkg/planner"
	"github.com/mchmarny/factoryplan/pkg/recipe"
)

// SweepRun is one run of a sweep.
type SweepRun struct {
	Name  string        `json:"name" yaml:"name"`
	Value float64       `json:"value" yaml:"value"`
	Plan  *planner.Plan `json:"plan,omitempty" yaml:"plan,omitempty"`
	Error string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// SweepReport collects the runs of a sweep in supply order.
type SweepReport struct {
	Input  string     `json:"input" yaml:"input"`
	Failed int        `json:"failed" yaml:"failed"`
	Runs   []SweepRun `json:"runs" yaml:"runs"`
}

// newSweepReport pairs each request with its plan. Sweep joins failures in
// request order, so the n-th failure belongs to the n-th failed run.
func newSweepReport(input string, reqs []*planner.Request, plans []*planner.Plan, err error) *SweepReport {
	var failures []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		failures = joined.Unwrap()
	}

	r := &SweepReport{Input: input, Runs: make([]SweepRun, len(reqs))}
	next := 0
	for i, req := range reqs {
		run := SweepRun{Name: req.Name, Value: req.Inputs[input]}
		if i < len(plans) && plans[i] != nil {
			run.Plan = plans[i]
		} else {
			r.Failed++
			run.Error = "run failed"
			if next < len(failures) {
				run.Error = failures[next].Error()
				next++
			}
		}
		r.Runs[i] = run
	}
	return r
}

// WriteSummary renders one line per run followed by each plan.
func (r *SweepReport) WriteSummary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tSTATUS\tOBJECTIVE\tRECIPES\n", strings.ToUpper(r.Input))
	for _, run := range r.Runs {
		if run.Plan == nil {
			fmt.Fprintf(tw, "%.2f\tfailed\t-\t-\n", run.Value)
			continue
		}
		fmt.Fprintf(tw, "%.2f\t%s\t%.2f\t%d\n", run.Value, run.Plan.Status, run.Plan.Objective, len(run.Plan.Recipes))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, run := range r.Runs {
		if _, err := fmt.Fprintf(w, "\n=== %s\n", run.Name); err != nil {
			return err
		}
		if run.Plan == nil {
			if _, err := fmt.Fprintf(w, "Error: %s\n", run.Error); err != nil {
				return err
			}
			continue
		}
		if err := run.Plan.WriteSummary(w); err != nil {
			return err
		}
	}
	return nil
}

// ProductList lists the product names known to a recipe selection.
type ProductList struct {
	Alternates bool     `json:"alternates" yaml:"alternates"`
	Products   []string `json:"products" yaml:"products"`
}

// WriteSummary renders one product per line.
func (l *ProductList) WriteSummary(w io.Writer) error {
	for _, p := range l.Products {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// RecipeList is a selection of catalog recipes.
type RecipeList struct {
	Alternates bool             `json:"alternates" yaml:"alternates"`
	Recipes    []*recipe.Recipe `json:"recipes" yaml:"recipes"`
}

// WriteSummary renders each recipe description separated by blank lines.
func (l *RecipeList) WriteSummary(w io.Writer) error {
	for i, r := range l.Recipes {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, r.Description()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
