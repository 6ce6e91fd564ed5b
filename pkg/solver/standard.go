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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/model"
)

// standardForm is a model rewritten as
//
//	minimize c·z subject to A·z = b, z >= 0
//
// where z holds the shifted active model variables followed by one slack
// per row. Model variable j maps to z[column[j]] + lower[j], or to lower[j]
// when column[j] is -1.
type standardForm struct {
	c      []float64
	a      *mat.Dense
	b      []float64
	basic  []int
	column []int
	lower  []float64
	upper  []float64
}

type row struct {
	coeffs []float64
	rhs    float64
}

// outcome short-circuits a solve that is decided during conversion.
type outcome struct {
	status Status
	values []float64
}

// toStandardForm converts m. A non-nil outcome means the model was decided
// without needing a simplex run.
func toStandardForm(m *model.Model) (*standardForm, *outcome, error) {
	n := len(m.Variables)
	if len(m.Objective) != n {
		return nil, nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("objective has %d coefficients for %d variables", len(m.Objective), n))
	}

	cost := make([]float64, n)
	lower := make([]float64, n)
	upper := make([]float64, n)
	for j, v := range m.Variables {
		if math.IsInf(v.Lower, 0) || math.IsNaN(v.Lower) || math.IsNaN(v.Upper) {
			return nil, nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"variable bounds must be finite below and not NaN",
				map[string]any{"variable": v.Name})
		}
		if v.Upper < v.Lower {
			return nil, &outcome{status: StatusInfeasible}, nil
		}
		lower[j], upper[j] = v.Lower, v.Upper
		cost[j] = m.Objective[j]
		if m.Sense == model.Maximize {
			cost[j] = -cost[j]
		}
	}

	var rows []row
	for _, ct := range m.Constraints {
		if len(ct.Coefficients) != n {
			return nil, nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("constraint has %d coefficients for %d variables", len(ct.Coefficients), n),
				map[string]any{"constraint": ct.Name})
		}
		if math.IsNaN(ct.Lower) || math.IsNaN(ct.Upper) {
			return nil, nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"constraint bounds must not be NaN", map[string]any{"constraint": ct.Name})
		}
		shift := ct.Activity(lower)
		if !math.IsInf(ct.Lower, -1) {
			neg := make([]float64, n)
			for j, a := range ct.Coefficients {
				neg[j] = -a
			}
			rows = append(rows, row{coeffs: neg, rhs: shift - ct.Lower})
		}
		if !math.IsInf(ct.Upper, 1) {
			rows = append(rows, row{coeffs: ct.Coefficients, rhs: ct.Upper - shift})
		}
	}
	for j := range m.Variables {
		if math.IsInf(upper[j], 1) {
			continue
		}
		e := make([]float64, n)
		e[j] = 1
		rows = append(rows, row{coeffs: e, rhs: upper[j] - lower[j]})
	}

	// Drop rows without any variable: each one only pins its own slack.
	kept := rows[:0]
	for _, r := range rows {
		if isZero(r.coeffs) {
			if r.rhs < 0 {
				return nil, &outcome{status: StatusInfeasible}, nil
			}
			continue
		}
		kept = append(kept, r)
	}
	rows = kept

	// Variables that appear in no row sit at their lower bound unless
	// increasing them improves the objective forever.
	column := make([]int, n)
	active := 0
	for j := range m.Variables {
		used := false
		for _, r := range rows {
			if r.coeffs[j] != 0 {
				used = true
				break
			}
		}
		if !used {
			if cost[j] < 0 {
				return nil, &outcome{status: StatusUnbounded}, nil
			}
			column[j] = -1
			continue
		}
		column[j] = active
		active++
	}

	if active == 0 || len(rows) == 0 {
		return nil, &outcome{status: StatusOptimal, values: lower}, nil
	}

	cols := active + len(rows)
	sf := &standardForm{
		c:      make([]float64, cols),
		a:      mat.NewDense(len(rows), cols, nil),
		b:      make([]float64, len(rows)),
		column: column,
		lower:  lower,
		upper:  upper,
	}
	for j, col := range column {
		if col >= 0 {
			sf.c[col] = cost[j]
		}
	}

	feasibleStart := true
	for i, r := range rows {
		sign := 1.0
		if r.rhs < 0 {
			sign = -1
			feasibleStart = false
		}
		for j, col := range column {
			if col >= 0 && r.coeffs[j] != 0 {
				sf.a.Set(i, col, sign*r.coeffs[j])
			}
		}
		sf.a.Set(i, active+i, sign)
		sf.b[i] = sign * r.rhs
	}

	// The slack columns form an identity basis whenever no row was negated.
	if feasibleStart {
		sf.basic = make([]int, len(rows))
		for i := range sf.basic {
			sf.basic[i] = active + i
		}
	}
	return sf, nil, nil
}

// values maps a standard form point back to model variables.
func (sf *standardForm) values(z []float64) []float64 {
	x := make([]float64, len(sf.column))
	for j, col := range sf.column {
		x[j] = sf.lower[j]
		if col >= 0 {
			x[j] += z[col]
		}
		x[j] = math.Max(sf.lower[j], math.Min(sf.upper[j], x[j]))
	}
	return x
}

func isZero(v []float64) bool {
	for _, a := range v {
		if a != 0 {
			return false
		}
	}
	return true
}
