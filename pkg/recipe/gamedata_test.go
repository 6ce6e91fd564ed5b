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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/factoryplan/pkg/errors"
)

const sampleGameData = `{
  "items": {
    "Desc_OreIron_C": {"name": "Iron Ore"},
    "Desc_IronIngot_C": {"name": "Iron Ingot"},
    "Desc_IronPlate_C": {"name": "Iron Plate"},
    "Desc_Water_C": {"name": "Water"}
  },
  "buildings": {
    "Desc_SmelterMk1_C": {"name": "Smelter"},
    "Desc_ConstructorMk1_C": {"name": "Constructor"},
    "Desc_OilRefinery_C": {"name": "Refinery"}
  },
  "recipes": {
    "Recipe_IronIngot_C": {
      "name": "Iron Ingot", "className": "Recipe_IronIngot_C", "alternate": false,
      "time": 2, "forBuilding": false, "inMachine": true,
      "ingredients": [{"item": "Desc_OreIron_C", "amount": 1}],
      "products": [{"item": "Desc_IronIngot_C", "amount": 1}],
      "producedIn": ["Desc_SmelterMk1_C"]
    },
    "Recipe_IronPlate_C": {
      "name": "Iron Plate", "className": "Recipe_IronPlate_C", "alternate": false,
      "time": 6, "forBuilding": false, "inMachine": true,
      "ingredients": [{"item": "Desc_IronIngot_C", "amount": 3}],
      "products": [{"item": "Desc_IronPlate_C", "amount": 2}],
      "producedIn": ["Desc_ConstructorMk1_C"]
    },
    "Recipe_Alternate_PureIronIngot_C": {
      "name": "Alternate: Pure Iron Ingot", "alternate": true,
      "time": 12, "forBuilding": false, "inMachine": true,
      "ingredients": [{"item": "Desc_OreIron_C", "amount": 7}, {"item": "Desc_Water_C", "amount": 4}],
      "products": [{"item": "Desc_IronIngot_C", "amount": 13}],
      "producedIn": ["Desc_OilRefinery_C"]
    },
    "Recipe_SmelterMk1_C": {
      "name": "Smelter", "alternate": false,
      "time": 1, "forBuilding": true, "inMachine": false,
      "ingredients": [{"item": "Desc_IronPlate_C", "amount": 5}],
      "products": [],
      "producedIn": []
    },
    "Recipe_IronIngotHand_C": {
      "name": "Iron Ingot (Hand)", "alternate": false,
      "time": 2, "forBuilding": false, "inMachine": false,
      "ingredients": [{"item": "Desc_OreIron_C", "amount": 1}],
      "products": [{"item": "Desc_IronIngot_C", "amount": 1}],
      "producedIn": []
    }
  }
}`

func TestLoadGameData(t *testing.T) {
	c, err := LoadGameData(strings.NewReader(sampleGameData))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	require.Len(t, c.Recipes, 3)

	// Ordered by name.
	assert.Equal(t, "Alternate: Pure Iron Ingot", c.Recipes[0].Name)
	assert.Equal(t, "Iron Ingot", c.Recipes[1].Name)
	assert.Equal(t, "Iron Plate", c.Recipes[2].Name)

	ingot := c.Recipes[1]
	assert.Equal(t, "Smelter", ingot.Building)
	assert.InDelta(t, 30.0, ingot.Inputs["Iron Ore"], 1e-9)
	assert.InDelta(t, 30.0, ingot.Outputs["Iron Ingot"], 1e-9)

	plate := c.Recipes[2]
	assert.InDelta(t, 30.0, plate.Inputs["Iron Ingot"], 1e-9)
	assert.InDelta(t, 20.0, plate.Outputs["Iron Plate"], 1e-9)

	pure := c.Recipes[0]
	assert.True(t, pure.Alternate)
	assert.Equal(t, "Refinery", pure.Building)
	assert.InDelta(t, 35.0, pure.Inputs["Iron Ore"], 1e-9)
	assert.InDelta(t, 20.0, pure.Inputs["Water"], 1e-9)
	assert.InDelta(t, 65.0, pure.Outputs["Iron Ingot"], 1e-9)

	assert.Len(t, c.Defaults(), 2)
}

func TestLoadGameDataErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.ErrorCode
	}{
		{
			name: "malformed",
			doc:  `{"recipes":`,
			code: errors.ErrCodeInvalidRequest,
		},
		{
			name: "no recipes",
			doc:  `{"items":{},"buildings":{},"recipes":{}}`,
			code: errors.ErrCodeInvalidRequest,
		},
		{
			name: "zero time",
			doc: `{"items":{"A":{"name":"A"}},"buildings":{"B":{"name":"B"}},"recipes":{"R":{
				"name":"R","time":0,"inMachine":true,"ingredients":[],"products":[{"item":"A","amount":1}],"producedIn":["B"]}}}`,
			code: errors.ErrCodeInvalidRequest,
		},
		{
			name: "no building",
			doc: `{"items":{"A":{"name":"A"}},"buildings":{},"recipes":{"R":{
				"name":"R","time":1,"inMachine":true,"ingredients":[],"products":[{"item":"A","amount":1}],"producedIn":[]}}}`,
			code: errors.ErrCodeInvalidRequest,
		},
		{
			name: "unknown building",
			doc: `{"items":{"A":{"name":"A"}},"buildings":{},"recipes":{"R":{
				"name":"R","time":1,"inMachine":true,"ingredients":[],"products":[{"item":"A","amount":1}],"producedIn":["X"]}}}`,
			code: errors.ErrCodeNotFound,
		},
		{
			name: "unknown item",
			doc: `{"items":{},"buildings":{"B":{"name":"B"}},"recipes":{"R":{
				"name":"R","time":1,"inMachine":true,"ingredients":[],"products":[{"item":"A","amount":1}],"producedIn":["B"]}}}`,
			code: errors.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGameData(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := `kind: Catalog
recipes:
  - name: Smelt Iron
    building: Smelter
    inputs:
      Iron Ore: 30
    outputs:
      Iron Ingot: 30
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(path, "")
	require.NoError(t, err)
	require.Len(t, c.Recipes, 1)
	assert.Equal(t, "Smelt Iron", c.Recipes[0].Name)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("recipes: []\n"), 0o600))
	_, err = Load(bad, "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}
