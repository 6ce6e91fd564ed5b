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

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/factoryplan/pkg/serializer"
)

func planCmd() *cli.Command {
	return &cli.Command{
		Name:                  "plan",
		EnableShellCompletion: true,
		Usage:                 "Optimize production for one request",
		Description: `Find the recipe scales that maximize the score of the requested outputs
without consuming more of each input than is available.

The request comes from a document (--request), the built-in example
(--example), or flags alone. --input and --output add to or override the
document's quantities.

# Examples

Smelt iron:
  fplan plan --input "Iron Ore=30" --output "Iron Ingot=10"

Refinery example with alternates, written as YAML to a ConfigMap:
  fplan plan --example --format yaml --out cm://factory/plan`,
		Flags: slices.Concat(
			requestFlags(),
			optimizerFlags(),
			[]cli.Flag{
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

			req, err := buildRequest(cmd)
			if err != nil {
				return fmt.Errorf("invalid request: %w", err)
			}

			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(ctx, cmd)
			defer cancel()

			opt := newOptimizer(cmd)
			plan, err := opt.Optimize(ctx, req.Resolve(catalog))
			if err != nil {
				return fmt.Errorf("optimization failed: %w", err)
			}

			slog.Debug("plan complete",
				"id", plan.ID,
				"status", plan.Status,
				"objective", plan.Objective,
				"duration", plan.Duration)

			return writeOutput(ctx, cmd, plan)
		},
	}
}
