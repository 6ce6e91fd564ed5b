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

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mchmarny/factoryplan/pkg/defaults"
	fperrors "github.com/mchmarny/factoryplan/pkg/errors"
	"github.com/mchmarny/factoryplan/pkg/header"
	"github.com/mchmarny/factoryplan/pkg/planner"
	"github.com/mchmarny/factoryplan/pkg/product"
	"github.com/mchmarny/factoryplan/pkg/recipe"
	"github.com/mchmarny/factoryplan/pkg/serializer"
	"github.com/mchmarny/factoryplan/pkg/server"
)

// Handler serves planning requests against one catalog.
type Handler struct {
	catalog   *recipe.Catalog
	optimizer *planner.Optimizer
}

// NewHandler returns a handler for catalog using optimizer.
func NewHandler(catalog *recipe.Catalog, optimizer *planner.Optimizer) *Handler {
	return &Handler{
		catalog:   catalog,
		optimizer: optimizer,
	}
}

// Routes returns the API routes keyed by pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/plan":     h.HandlePlan,
		"/v1/products": h.HandleProducts,
		"/v1/recipes":  h.HandleRecipes,
	}
}

// ProductsResponse lists the products referenced by the selected recipes.
type ProductsResponse struct {
	Alternates bool     `json:"alternates"`
	Count      int      `json:"count"`
	Products   []string `json:"products"`
}

// RecipesResponse lists the selected recipes in catalog order.
type RecipesResponse struct {
	Alternates bool             `json:"alternates"`
	Count      int              `json:"count"`
	Recipes    []*recipe.Recipe `json:"recipes"`
}

// HandlePlan handles POST /v1/plan with a JSON or YAML request document.
func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.PlanHandlerTimeout)
	defer cancel()

	defer func() {
		if r.Body != nil {
			_ = r.Body.Close()
		}
	}()

	req, err := ParseRequestBody(r.Body, r.Header.Get("Content-Type"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid plan request", nil)
		return
	}

	req = req.Resolve(h.catalog)

	slog.Debug("plan request",
		"requestID", server.RequestIDFromContext(ctx),
		"name", req.Name,
		"inputs", len(req.Inputs),
		"outputs", len(req.Outputs),
		"recipes", len(req.Recipes),
		"alternates", req.Alternates,
	)

	// A solve that outlives buildCtx keeps running and holds one of
	// defaults.SolverMaxConcurrent solver slots until it finishes.
	buildCtx, buildCancel := context.WithTimeout(ctx, defaults.PlanBuildTimeout)
	defer buildCancel()

	plan, err := h.optimizer.Optimize(buildCtx, req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to build plan", map[string]any{
			"backend": h.optimizer.Backend(),
		})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, plan)
}

// HandleProducts handles GET /v1/products.
func (h *Handler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	alternates, err := alternatesParam(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid query", nil)
		return
	}

	names := product.NewIndex(h.catalog.Select(alternates)).Names()
	resp := ProductsResponse{
		Alternates: alternates,
		Count:      len(names),
		Products:   make([]string, 0, len(names)),
	}
	for _, n := range names {
		resp.Products = append(resp.Products, n.String())
	}

	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// HandleRecipes handles GET /v1/recipes.
func (h *Handler) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	alternates, err := alternatesParam(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid query", nil)
		return
	}

	recipes := h.catalog.Select(alternates)

	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, RecipesResponse{
		Alternates: alternates,
		Count:      len(recipes),
		Recipes:    recipes,
	})
}

// ParseRequestBody decodes a request document. YAML is used for YAML
// content types and JSON otherwise. A missing kind is treated as a request.
func ParseRequestBody(body io.Reader, contentType string) (*planner.Request, error) {
	if body == nil {
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, "request body is required")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, "request body is empty")
	}

	var req planner.Request
	if isYAML(contentType) {
		err = yaml.Unmarshal(data, &req)
	} else {
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, "failed to decode request body", err)
	}

	if req.Kind == "" {
		req.Kind = header.KindRequest
	}
	if req.APIVersion == "" {
		req.APIVersion = header.APIVersion
	}
	return &req, nil
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	default:
		return false
	}
}

func alternatesParam(r *http.Request) (bool, error) {
	v := r.URL.Query().Get("alternates")
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fperrors.NewWithContext(fperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid alternates value %q", v), map[string]any{"alternates": v})
	}
	return b, nil
}

func setCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(defaults.CatalogCacheTTL.Seconds())))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	server.WriteError(w, r, http.StatusMethodNotAllowed, fperrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": []string{allowed},
		})
}
