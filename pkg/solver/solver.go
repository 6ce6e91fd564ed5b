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
	"fmt"
	"sort"
	"sync"

	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/model"
)

// Status is the termination status of a solve.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Solution is the result of solving a model.
type Solution struct {
	// Status is the termination status.
	Status Status

	// Values holds one value per model variable, in model order.
	// It is empty unless Status is StatusOptimal.
	Values []float64

	// Objective is the objective value at Values in the model's sense.
	Objective float64
}

// IsOptimal reports whether an optimal point was found.
func (s *Solution) IsOptimal() bool { return s != nil && s.Status == StatusOptimal }

// IsInfeasible reports whether the model has no feasible point.
func (s *Solution) IsInfeasible() bool { return s != nil && s.Status == StatusInfeasible }

// IsUnbounded reports whether the objective can improve without limit.
func (s *Solution) IsUnbounded() bool { return s != nil && s.Status == StatusUnbounded }

// Solver solves linear programs.
//
// Solve returns a Solution for every terminated solve. When the status is
// not optimal the returned error carries INFEASIBLE or UNBOUNDED. Other
// failures return a nil Solution.
type Solver interface {
	Name() string
	Solve(ctx context.Context, m *model.Model) (*Solution, error)
}

// Factory creates a solver backend.
type Factory func() (Solver, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a backend available under name. Registering the same name
// twice replaces the earlier factory.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New creates the named backend. Unknown names and backends that fail to
// initialize return a SOLVER_UNAVAILABLE error.
func New(name string) (Solver, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeSolverUnavailable,
			fmt.Sprintf("solver backend %q is not available", name),
			map[string]any{"backend": name, "available": Backends()})
	}

	s, err := f()
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeSolverUnavailable,
			fmt.Sprintf("failed to initialize solver backend %q", name), err,
			map[string]any{"backend": name})
	}
	return s, nil
}
