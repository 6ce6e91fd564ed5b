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
	"github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/serializer"
)

// BuiltinSource is the catalog source name that selects the embedded catalog.
const BuiltinSource = "builtin"

// Load reads and validates a catalog from a file path, an http(s) URL, or a
// cm://namespace/name ConfigMap URI. An empty source or BuiltinSource
// returns the embedded catalog.
func Load(source, kubeconfig string) (*Catalog, error) {
	if source == "" || source == BuiltinSource {
		return Builtin()
	}

	c, err := serializer.FromFileWithKubeconfig[Catalog](source, kubeconfig)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to load catalog", err,
			map[string]any{"source": source})
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	catalogLoads.WithLabelValues("document").Inc()
	return c, nil
}
