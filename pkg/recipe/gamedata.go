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

package recipe

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/mchmarny/factoryplan/pkg/errors"
)

// secondsPerMinute converts per-cycle game amounts into per-minute rates.
const secondsPerMinute = 60.0

// gameData mirrors the subset of the community game data export
// (data.json) that the importer needs.
type gameData struct {
	Items     map[string]gameItem     `json:"items"`
	Buildings map[string]gameBuilding `json:"buildings"`
	Recipes   map[string]gameRecipe   `json:"recipes"`
}

type gameItem struct {
	Name string `json:"name"`
}

type gameBuilding struct {
	Name string `json:"name"`
}

type gameAmount struct {
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
}

type gameRecipe struct {
	Name        string       `json:"name"`
	ClassName   string       `json:"className"`
	Alternate   bool         `json:"alternate"`
	Time        float64      `json:"time"`
	ForBuilding bool         `json:"forBuilding"`
	InMachine   bool         `json:"inMachine"`
	Ingredients []gameAmount `json:"ingredients"`
	Products    []gameAmount `json:"products"`
	ProducedIn  []string     `json:"producedIn"`
}

// LoadGameData converts a game data export into a catalog.
//
// Building blueprints and recipes that cannot run in a machine are skipped.
// Amounts are rescaled by 60/time so every rate is per minute, and item and
// building class names are resolved to their display names. The resulting
// recipes are ordered by name.
func LoadGameData(r io.Reader) (*Catalog, error) {
	var data gameData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode game data", err)
	}
	if len(data.Recipes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "game data contains no recipes")
	}

	keys := make([]string, 0, len(data.Recipes))
	for k := range data.Recipes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	recipes := make([]*Recipe, 0, len(keys))
	skipped := 0
	for _, key := range keys {
		gr := data.Recipes[key]
		if gr.ForBuilding || !gr.InMachine {
			skipped++
			continue
		}

		rec, err := data.convert(key, gr)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}

	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].Name < recipes[j].Name
	})

	slog.Debug("game data imported",
		"recipes", len(recipes),
		"skipped", skipped,
		"items", len(data.Items),
		"buildings", len(data.Buildings))

	catalogLoads.WithLabelValues("gamedata").Inc()
	return NewCatalog(recipes), nil
}

func (d *gameData) convert(key string, gr gameRecipe) (*Recipe, error) {
	ctx := map[string]any{"recipe": key}

	if gr.Time <= 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("recipe %s has non-positive cycle time", key), ctx)
	}
	if len(gr.ProducedIn) == 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("recipe %s has no producing building", key), ctx)
	}
	building, ok := d.Buildings[gr.ProducedIn[0]]
	if !ok {
		ctx["building"] = gr.ProducedIn[0]
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("recipe %s references unknown building", key), ctx)
	}

	rec := New(gr.Name, building.Name)
	rec.Alternate = gr.Alternate

	multiplier := secondsPerMinute / gr.Time
	for _, in := range gr.Ingredients {
		name, err := d.itemName(key, in.Item)
		if err != nil {
			return nil, err
		}
		rec.Inputs[name] += in.Amount * multiplier
	}
	for _, out := range gr.Products {
		name, err := d.itemName(key, out.Item)
		if err != nil {
			return nil, err
		}
		rec.Outputs[name] += out.Amount * multiplier
	}
	return rec, nil
}

func (d *gameData) itemName(recipeKey, class string) (string, error) {
	item, ok := d.Items[class]
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("recipe %s references unknown item %s", recipeKey, class),
			map[string]any{"recipe": recipeKey, "item": class})
	}
	return item.Name, nil
}
