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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	optimizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fplan_optimize_duration_seconds",
			Help:    "Duration of optimization runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	optimizeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fplan_optimize_total",
			Help: "Total number of optimization runs by outcome",
		},
		[]string{"outcome"},
	)

	unknownProducts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fplan_unknown_products_total",
			Help: "Total number of unknown product names in requests",
		},
		[]string{"field"},
	)

	sweepRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fplan_sweep_runs_total",
			Help: "Total number of sweeps",
		},
	)
)
