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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/factoryplan/pkg/product"
	"github.com/mchmarny/factoryplan/pkg/recipe"
	"github.com/mchmarny/factoryplan/pkg/serializer"
)

func productsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "products",
		EnableShellCompletion: true,
		Usage:                 "List the products referenced by the catalog",
		Description: `Print every product name consumed or produced by the selected recipes.
These are the names accepted by --input and --output.`,
		Flags: []cli.Flag{
			catalogFlag(),
			alternatesFlag(),
			outFlag(),
			formatFlag(serializer.FormatText),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			alternates := cmd.Bool("alternates")
			names := product.NewIndex(catalog.Select(alternates)).Names()
			list := &ProductList{Alternates: alternates, Products: make([]string, 0, len(names))}
			for _, n := range names {
				list.Products = append(list.Products, n.String())
			}
			return writeOutput(ctx, cmd, list)
		},
	}
}

func recipesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recipes",
		EnableShellCompletion: true,
		Usage:                 "List catalog recipes",
		Description: `Print the selected recipes with their building, inputs and outputs.

# Examples

Recipes that mention iron, alternates included:
  fplan recipes --alternates --match iron`,
		Flags: []cli.Flag{
			catalogFlag(),
			alternatesFlag(),
			&cli.StringFlag{
				Name:    "match",
				Aliases: []string{"m"},
				Usage:   "Only list recipes whose name or products contain this text (case insensitive)",
			},
			outFlag(),
			formatFlag(serializer.FormatText),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			alternates := cmd.Bool("alternates")
			list := &RecipeList{
				Alternates: alternates,
				Recipes:    filterRecipes(catalog.Select(alternates), cmd.String("match")),
			}
			if len(list.Recipes) == 0 {
				return fmt.Errorf("no recipes match %q", cmd.String("match"))
			}
			return writeOutput(ctx, cmd, list)
		},
	}
}

func filterRecipes(recipes []*recipe.Recipe, match string) []*recipe.Recipe {
	match = strings.ToLower(strings.TrimSpace(match))
	if match == "" {
		return recipes
	}
	out := make([]*recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Name), match) {
			out = append(out, r)
			continue
		}
		for _, p := range r.ProductsUsed() {
			if strings.Contains(strings.ToLower(p), match) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
