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

// Package header provides the common document header for planner data.
//
// Every catalog, request, and plan document carries a Header with the
// API version, the document kind, and free-form metadata:
//
//	kind: Plan
//	apiVersion: fplan.dev/v1
//	metadata:
//	  timestamp: "2026-01-05T10:30:00Z"
//	  version: v0.3.0
//
// # Kinds
//
//   - Catalog: A set of recipes
//   - Request: Available inputs, desired outputs, and alternate selection
//   - Plan: The result of an optimization run
//
// # Usage
//
//	var p planner.Plan
//	p.Init(header.KindPlan, version)
//
// Readers call Check to reject documents of the wrong kind. A document
// without a kind is accepted.
package header
