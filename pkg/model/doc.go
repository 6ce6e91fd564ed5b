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

// Package model builds the linear program for a production request.
//
// Each recipe becomes one variable, its scale, bounded to [0, RecipeMax].
// Each product in the index becomes one balance constraint:
//
//	-available(p) <= sum_r scale_r * net_r(p) <= ProductMax
//
// where available(p) is zero for products that are not supplied. The
// objective maximizes, per recipe,
//
//	sum_q score(q) * net_r(q) - RecipeCost
//
// over the scored output products. The model is solver independent; see
// package solver for backends.
package model
