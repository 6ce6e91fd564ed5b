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

package planner

import (
	"sync"

	"github.com/mchmarny/factoryplan/pkg/solver"
)

// Backends are stateless, so one instance per name is shared by all runs.
var (
	backendsMu sync.Mutex
	backends   = map[string]solver.Solver{}
)

func solverFor(name string) (solver.Solver, error) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	if s, ok := backends[name]; ok {
		return s, nil
	}
	s, err := solver.New(name)
	if err != nil {
		return nil, err
	}
	backends[name] = s
	return s, nil
}
