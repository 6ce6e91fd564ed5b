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
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mchmarny/factoryplan/pkg/logging"
	"github.com/mchmarny/factoryplan/pkg/planner"
	"github.com/mchmarny/factoryplan/pkg/recipe"
	"github.com/mchmarny/factoryplan/pkg/server"
)

const (
	name           = "fpland"
	versionDefault = "dev"

	// CatalogEnv selects the catalog source served by the API.
	CatalogEnv = "FPLAN_CATALOG"
)

var (
	// overridden during build with ldflags, e.g.
	// -X "github.com/mchmarny/factoryplan/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads the catalog, starts the API server and blocks until SIGINT
// or SIGTERM.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.SetDefaultStructuredLoggerWithLevel(name, version, os.Getenv("LOG_LEVEL"))
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	source := os.Getenv(CatalogEnv)
	catalog, err := recipe.Load(source, "")
	if err != nil {
		slog.Error("failed to load catalog", "source", source, "error", err)
		return err
	}
	slog.Info("catalog loaded", "source", source, "recipes", catalog.Len())

	h := NewHandler(catalog, planner.New(planner.WithVersion(version)))

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
