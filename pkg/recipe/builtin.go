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
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var builtinCatalog []byte

var (
	builtinOnce   sync.Once
	cachedBuiltin *Catalog
	cachedErr     error
)

// Builtin returns the catalog embedded in the binary. It is parsed and
// validated once and shared by all callers; callers must not modify it.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		catalogLoads.WithLabelValues("builtin").Inc()
		cachedBuiltin, cachedErr = Parse(builtinCatalog)
	})
	if cachedErr == nil {
		catalogCacheHits.Inc()
	}
	return cachedBuiltin, cachedErr
}

// Parse decodes and validates a catalog document. Both YAML and JSON are
// accepted since JSON is a subset of YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
