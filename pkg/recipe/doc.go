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

// Package recipe defines production recipes and the catalogs that hold them.
//
// A Recipe is a fixed-ratio transformation rule. Running it at scale 1
// consumes its Inputs and produces its Outputs, all expressed per minute.
// The net quantity of a product for a recipe is its output rate minus its
// input rate, with missing entries counted as zero:
//
//	r := recipe.New("Iron Ingot", "Smelter").
//	    WithInput("Iron Ore", 30).
//	    WithOutput("Iron Ingot", 30)
//
//	r.NetQuantity("Iron Ore")   // -30
//	r.NetQuantity("Iron Ingot") // 30
//	r.NetQuantity("Water")      // 0
//
// # Catalogs
//
// A Catalog is an ordered list of recipes, serialized as a Catalog document:
//
//	kind: Catalog
//	apiVersion: fplan.dev/v1
//	recipes:
//	  - name: Iron Ingot
//	    building: Smelter
//	    inputs:
//	      Iron Ore: 30
//	    outputs:
//	      Iron Ingot: 30
//
// Catalogs are read from files, URLs, or ConfigMaps with Load, or taken
// from the binary with Builtin. LoadGameData converts the community game
// data export (data.json) into a catalog, keeping only machine recipes and
// rescaling every amount to a per-minute rate.
//
// Recipes flagged as alternate are excluded by Defaults.
package recipe
