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
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/factoryplan/pkg/defaults"
	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/recipe"
)

// maxSweepSteps bounds the number of requests Vary may generate.
const maxSweepSteps = 1000

// Sweep optimizes independent requests concurrently, at most parallelism
// at a time. Requests without their own recipes take them from catalog.
//
// The returned slice has one entry per request, in request order; failed
// runs leave a nil entry and contribute to the joined error. A failed run
// does not stop the others.
func (o *Optimizer) Sweep(ctx context.Context, catalog *recipe.Catalog, reqs []*Request, parallelism int) ([]*Plan, error) {
	sweepRuns.Inc()

	if parallelism <= 0 {
		parallelism = defaults.SweepParallelism
	}

	plans := make([]*Plan, len(reqs))
	failures := make([]error, len(reqs))

	var g errgroup.Group
	g.SetLimit(parallelism)

	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[i] = errors.Wrap(errors.ErrCodeTimeout, "sweep canceled", err)
				return nil
			}
			if req == nil {
				failures[i] = errors.NewWithContext(errors.ErrCodeInvalidRequest, "sweep request is empty",
					map[string]any{"index": i})
				return nil
			}

			plan, err := o.Optimize(ctx, req.Resolve(catalog))
			if err != nil {
				failures[i] = fmt.Errorf("run %d (%s): %w", i, req.Name, err)
				return nil
			}
			plans[i] = plan
			return nil
		})
	}
	_ = g.Wait()

	err := stderrors.Join(failures...)
	if err != nil {
		slog.Warn("sweep finished with failures", "runs", len(reqs), "error", err)
	}
	return plans, err
}

// Vary returns copies of base with the supply of one input stepped from
// from to to, inclusive. Each copy is named after the value it sets.
func Vary(base *Request, input string, from, to, step float64) ([]*Request, error) {
	if base == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "base request is required")
	}
	if input == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "input product is required")
	}
	for _, v := range []float64{from, to, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidRequest, "sweep range must be finite")
		}
	}
	if from < 0 || to < from || step <= 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"sweep range must satisfy 0 <= from <= to and step > 0",
			map[string]any{"from": from, "to": to, "step": step})
	}

	// A little slack so rounding never drops a value that lands on to.
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	if n > maxSweepSteps {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("sweep would generate %d runs, limit is %d", n, maxSweepSteps),
			map[string]any{"runs": n})
	}

	reqs := make([]*Request, 0, n)
	for i := range n {
		v := math.Min(from+float64(i)*step, to)
		r := base.Clone()
		if r.Inputs == nil {
			r.Inputs = map[string]float64{}
		}
		r.Inputs[input] = v
		r.Name = fmt.Sprintf("%s=%s", input, strconv.FormatFloat(v, 'f', -1, 64))
		reqs = append(reqs, r)
	}
	return reqs, nil
}
