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

// Package cli implements the fplan command line interface.
//
// # Commands
//
// plan - optimize one request:
//
//	fplan plan --input "Iron Ore=30" --output "Iron Ingot=10"
//	fplan plan --request request.yaml --alternates --format yaml --out plan.yaml
//	fplan plan --example
//
// sweep - optimize a request for every supply value of one input:
//
//	fplan sweep --output "Iron Ingot=10" --vary "Iron Ore=0:300:30"
//
// products - list product names the catalog knows:
//
//	fplan products --alternates
//
// recipes - list catalog recipes, optionally filtered:
//
//	fplan recipes --match "iron"
//
// import - convert a game data export into a catalog document:
//
//	fplan import --source data.json --out catalog.yaml
//
// # Global Flags
//
//	--log-level   debug, info, warn or error (env LOG_LEVEL)
//
// # Common Flags
//
//	--catalog     catalog source (env FPLAN_CATALOG, default "builtin")
//	--format      json, yaml, table or text
//	--out         file path or cm://namespace/name, stdout when empty
//	--kubeconfig  kubeconfig used for cm:// sources and destinations
//
// The text format prints a human readable summary. For a plan it lists the
// objective value, the recipes used with their scale, the remaining supply
// of each input and the net production of each product.
package cli
