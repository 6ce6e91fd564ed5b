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
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/factoryplan/pkg/recipe"
	"github.com/mchmarny/factoryplan/pkg/serializer"
)

func importCmd() *cli.Command {
	return &cli.Command{
		Name:                  "import",
		EnableShellCompletion: true,
		Usage:                 "Convert a game data export into a catalog document",
		Description: `Read a game data JSON export (items, buildings and recipes keyed by class
name) and write the machine recipes as a catalog, rates converted to per
minute.

# Examples

  fplan import --source data.json --format yaml --out catalog.yaml
  fplan plan --catalog catalog.yaml --input "Iron Ore=30" --output "Iron Ingot=10"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Game data export: file path or HTTP/HTTPS URL",
			},
			outFlag(),
			formatFlag(serializer.FormatYAML),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			if !format.Readable() {
				return fmt.Errorf("catalog must be written as json or yaml, got %q", format)
			}

			src := cmd.String("source")
			data, err := serializer.ReadSource(ctx, src)
			if err != nil {
				return fmt.Errorf("failed to read game data from %q: %w", src, err)
			}

			catalog, err := recipe.LoadGameData(bytes.NewReader(data))
			if err != nil {
				return err
			}
			catalog.Init(catalog.Kind, version)
			catalog.Metadata["source"] = src

			slog.Info("catalog imported", "source", src, "recipes", catalog.Len())
			return writeOutput(ctx, cmd, catalog)
		},
	}
}
