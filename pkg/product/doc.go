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

// Package product indexes the products referenced by a recipe list and
// validates request product names against it.
//
// The Index holds every distinct product name in lexicographic order, which
// fixes the row order of the production model and the order of reported
// results. Names that pass validation become product.Name values and are
// addressed by their dense position:
//
//	ix := product.NewIndex(recipes)
//	inputs, errs := ix.Filter(product.FieldInputs, req.Inputs)
//
// Each unknown name yields one UNKNOWN_PRODUCT error. When a close match
// exists, ignoring case, the error carries it as a suggestion.
package product
