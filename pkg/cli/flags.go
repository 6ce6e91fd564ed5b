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
	"math"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/factoryplan/pkg/defaults"
	"github.com/mchmarny/factoryplan/pkg/planner"
	"github.com/mchmarny/factoryplan/pkg/recipe"
	"github.com/mchmarny/factoryplan/pkg/serializer"
)

func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage: `Output destination: file path or ConfigMap URI (cm://namespace/name).
	Writes to stdout when empty.`,
	}
}

func formatFlag(value serializer.Format) cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(value),
		Usage:   fmt.Sprintf("Output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig for cm:// sources and destinations (default: KUBECONFIG or ~/.kube/config)",
	}
}

func catalogFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "catalog",
		Aliases: []string{"c"},
		Value:   recipe.BuiltinSource,
		Sources: cli.EnvVars("FPLAN_CATALOG"),
		Usage: `Recipe catalog: file path, HTTP/HTTPS URL, ConfigMap URI (cm://namespace/name),
	or "builtin" for the embedded catalog.`,
	}
}

func alternatesFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "alternates",
		Aliases: []string{"a"},
		Usage:   "Include alternate recipes from the catalog",
	}
}

// requestFlags select and override the request document.
func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "request",
			Aliases: []string{"r"},
			Usage:   "Request document: file path, HTTP/HTTPS URL, or ConfigMap URI (cm://namespace/name)",
		},
		&cli.BoolFlag{
			Name:  "example",
			Usage: "Use the built-in refinery example request",
		},
		&cli.StringSliceFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   `Available input supply per minute (format: "Product=Quantity", can be repeated)`,
		},
		&cli.StringSliceFlag{
			Name:  "output",
			Usage: `Desired output score (format: "Product=Score", can be repeated)`,
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "Name of the run",
		},
		alternatesFlag(),
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail on unknown product names instead of ignoring them",
		},
	}
}

// optimizerFlags tune the solver and model bounds.
func optimizerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "solver",
			Value: defaults.SolverBackend,
			Usage: "Solver backend",
		},
		&cli.FloatFlag{
			Name:  "recipe-max",
			Value: defaults.RecipeMax,
			Usage: "Upper bound on any recipe scale",
		},
		&cli.FloatFlag{
			Name:  "product-max",
			Value: defaults.ProductMax,
			Usage: "Upper bound on net production of any product",
		},
		&cli.FloatFlag{
			Name:  "recipe-cost",
			Value: defaults.RecipeCost,
			Usage: "Objective penalty per unit of recipe scale",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Value: defaults.CLIPlanTimeout,
			Usage: "Maximum time for the whole command",
		},
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported: %s",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// parseQuantities parses "Product=Quantity" pairs. Later pairs win.
func parseQuantities(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid quantity %q, expected Product=Quantity", pair)
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", pair, err)
		}
		if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
			return nil, fmt.Errorf("invalid quantity %q: must be a non-negative finite number", pair)
		}
		out[key] = q
	}
	return out, nil
}

// buildRequest loads the request document, if any, and applies flag
// overrides on top of it.
func buildRequest(cmd *cli.Command) (*planner.Request, error) {
	var req *planner.Request

	switch src := cmd.String("request"); {
	case src != "":
		if cmd.Bool("example") {
			return nil, fmt.Errorf("--request and --example are mutually exclusive")
		}
		loaded, err := planner.LoadRequest(src, cmd.String("kubeconfig"))
		if err != nil {
			return nil, err
		}
		req = loaded
	case cmd.Bool("example"):
		req = planner.ExampleRequest()
	default:
		req = planner.NewRequest(nil, nil)
	}

	inputs, err := parseQuantities(cmd.StringSlice("input"))
	if err != nil {
		return nil, err
	}
	outputs, err := parseQuantities(cmd.StringSlice("output"))
	if err != nil {
		return nil, err
	}
	req = req.Clone()
	req.Inputs = merge(req.Inputs, inputs)
	req.Outputs = merge(req.Outputs, outputs)

	if n := cmd.String("name"); n != "" {
		req.Name = n
	}
	if cmd.IsSet("alternates") {
		req.Alternates = cmd.Bool("alternates")
	}
	if cmd.Bool("strict") {
		req.Strict = true
	}
	return req, nil
}

func merge(base, overrides map[string]float64) map[string]float64 {
	if len(overrides) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]float64, len(overrides))
	}
	for k, v := range overrides {
		base[k] = v
	}
	return base
}

func newOptimizer(cmd *cli.Command) *planner.Optimizer {
	return planner.New(
		planner.WithSolver(cmd.String("solver")),
		planner.WithStrictValidation(cmd.Bool("strict")),
		planner.WithRecipeMax(cmd.Float("recipe-max")),
		planner.WithProductMax(cmd.Float("product-max")),
		planner.WithRecipeCost(cmd.Float("recipe-cost")),
		planner.WithVersion(version),
	)
}

func commandContext(ctx context.Context, cmd *cli.Command) (context.Context, context.CancelFunc) {
	timeout := cmd.Duration("timeout")
	if timeout <= 0 {
		timeout = defaults.CLIPlanTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func loadCatalog(cmd *cli.Command) (*recipe.Catalog, error) {
	src := cmd.String("catalog")
	c, err := recipe.Load(src, cmd.String("kubeconfig"))
	if err != nil {
		return nil, err
	}
	slog.Debug("catalog loaded", "source", src, "recipes", c.Len())
	return c, nil
}

// writeOutput serializes v to the --out destination in the --format format.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(format, cmd.String("out"))
	if cm, ok := ser.(*serializer.ConfigMapWriter); ok {
		cm.WithKubeconfig(cmd.String("kubeconfig"))
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, v)
}
