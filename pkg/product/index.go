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

package product

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/recipe"
)

// Name is a product name that has been checked against an Index.
type Name string

func (n Name) String() string {
	return string(n)
}

// Field identifies which part of a request a product name came from.
type Field string

const (
	FieldInputs  Field = "inputs"
	FieldOutputs Field = "outputs"
)

// Rates maps validated product names to a quantity.
type Rates map[Name]float64

// Index is the sorted set of every product referenced by a recipe list.
// It is immutable after construction.
type Index struct {
	names    []Name
	position map[Name]int
	folded   []string
}

// NewIndex collects every distinct product referenced by recipes.
func NewIndex(recipes []*recipe.Recipe) *Index {
	position := make(map[Name]int)
	for _, r := range recipes {
		for _, p := range r.ProductsUsed() {
			position[Name(p)] = 0
		}
	}

	names := make([]Name, 0, len(position))
	for n := range position {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	ix := &Index{
		names:    names,
		position: position,
		folded:   make([]string, len(names)),
	}
	folder := cases.Fold()
	for i, n := range names {
		ix.position[n] = i
		ix.folded[i] = folder.String(string(n))
	}
	return ix
}

// Len returns the number of distinct products.
func (ix *Index) Len() int {
	return len(ix.names)
}

// Names returns the products in lexicographic order.
func (ix *Index) Names() []Name {
	out := make([]Name, len(ix.names))
	copy(out, ix.names)
	return out
}

// Position returns the dense position of a product in Names order.
func (ix *Index) Position(n Name) (int, bool) {
	i, ok := ix.position[n]
	return i, ok
}

// Lookup checks name against the index. Matching is exact.
func (ix *Index) Lookup(name string) (Name, bool) {
	n := Name(name)
	_, ok := ix.position[n]
	return n, ok
}

// Suggest returns the closest known product name, comparing case-folded
// names by edit distance. Only matches within a third of the name's length
// (at least two edits) are returned.
func (ix *Index) Suggest(name string) (Name, bool) {
	if len(ix.names) == 0 || name == "" {
		return "", false
	}
	// Casers are stateful, so each call gets its own.
	folded := cases.Fold().String(name)

	best, bestDist := -1, 0
	for i, f := range ix.folded {
		d := levenshtein.ComputeDistance(folded, f)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	limit := max(2, len([]rune(folded))/3)
	if bestDist > limit {
		return "", false
	}
	return ix.names[best], true
}

// Validate returns one UNKNOWN_PRODUCT error per name that is not in the
// index. Errors follow the order of names.
func (ix *Index) Validate(field Field, names []string) []error {
	var errs []error
	for _, name := range names {
		if _, ok := ix.Lookup(name); ok {
			continue
		}
		errs = append(errs, ix.unknown(field, name))
	}
	return errs
}

// Filter validates every key of values and returns the recognized subset
// together with one error per unknown key, in key order.
func (ix *Index) Filter(field Field, values map[string]float64) (Rates, []error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Rates, len(values))
	var errs []error
	for _, k := range keys {
		n, ok := ix.Lookup(k)
		if !ok {
			errs = append(errs, ix.unknown(field, k))
			continue
		}
		out[n] = values[k]
	}
	return out, errs
}

func (ix *Index) unknown(field Field, name string) error {
	ctx := map[string]any{
		"product": name,
		"field":   string(field),
	}
	msg := fmt.Sprintf("unknown product %q in %s", name, field)
	if s, ok := ix.Suggest(name); ok {
		ctx["suggestion"] = s.String()
		msg = fmt.Sprintf("%s, did you mean %q?", msg, s)
	}
	return errors.NewWithContext(errors.ErrCodeUnknownProduct, msg, ctx)
}
