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
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/factoryplan/pkg/defaults"
	"github.com/mchmarny/factoryplan/pkg/planner"
	"github.com/mchmarny/factoryplan/pkg/serializer"
)

func sweepCmd() *cli.Command {
	return &cli.Command{
		Name:                  "sweep",
		EnableShellCompletion: true,
		Usage:                 "Optimize a request across a range of supply for one input",
		Description: `Run the same request for every supply value of one input and report each
plan. Runs are independent and execute concurrently.

# Examples

Iron ore from 0 to 300 per minute in steps of 30:
  fplan sweep --input "Iron Ore=30" --output "Iron Ingot=10" --vary "Iron Ore=0:300:30"`,
		Flags: slices.Concat(
			requestFlags(),
			optimizerFlags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:     "vary",
					Required: true,
					Usage:    `Input to vary (format: "Product=from:to:step")`,
				},
				&cli.IntFlag{
					Name:  "parallelism",
					Value: defaults.SweepParallelism,
					Usage: "Maximum number of concurrent runs",
				},
				catalogFlag(),
				outFlag(),
				formatFlag(serializer.FormatText),
				kubeconfigFlag(),
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			input, from, to, step, err := parseVary(cmd.String("vary"))
			if err != nil {
				return err
			}

			base, err := buildRequest(cmd)
			if err != nil {
				return fmt.Errorf("invalid request: %w", err)
			}

			reqs, err := planner.Vary(base, input, from, to, step)
			if err != nil {
				return err
			}

			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(ctx, cmd)
			defer cancel()

			plans, sweepErr := newOptimizer(cmd).Sweep(ctx, catalog, reqs, cmd.Int("parallelism"))
			report := newSweepReport(input, reqs, plans, sweepErr)

			slog.Debug("sweep complete", "runs", len(reqs), "failed", report.Failed)

			if err := writeOutput(ctx, cmd, report); err != nil {
				return err
			}
			if report.Failed == len(reqs) {
				return fmt.Errorf("all %d sweep runs failed: %w", len(reqs), sweepErr)
			}
			return nil
		},
	}
}

// parseVary parses "Product=from:to:step".
func parseVary(s string) (input string, from, to, step float64, err error) {
	input, spec, ok := strings.Cut(s, "=")
	input = strings.TrimSpace(input)
	parts := strings.Split(spec, ":")
	if !ok || input == "" || len(parts) != 3 {
		return "", 0, 0, 0, fmt.Errorf("invalid --vary %q, expected Product=from:to:step", s)
	}

	vals := make([]float64, 3)
	for i, p := range parts {
		v, perr := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if perr != nil {
			return "", 0, 0, 0, fmt.Errorf("invalid --vary %q: %w", s, perr)
		}
		vals[i] = v
	}
	return input, vals[0], vals[1], vals[2], nil
}
