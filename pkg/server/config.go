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

package server

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/mchmarny/factoryplan/pkg/defaults"
)

// Config holds server configuration.
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers are served behind the middleware chain, keyed by pattern.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	RateLimit      rate.Limit // requests per second
	RateLimitBurst int

	// MaxBodyBytes caps request bodies; plan requests are small documents.
	MaxBodyBytes int64

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns the default configuration with environment overrides
// applied.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              8080,
		RateLimit:         100,
		RateLimitBurst:    200,
		MaxBodyBytes:      1 << 20,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 && port < 65536 {
			cfg.Port = port
		} else {
			slog.Warn("ignoring invalid PORT", "value", v)
		}
	}

	// Match the Kubernetes termination grace period.
	if v := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		} else {
			slog.Warn("ignoring invalid SHUTDOWN_TIMEOUT_SECONDS", "value", v)
		}
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if limit, err := strconv.ParseFloat(v, 64); err == nil && limit > 0 {
			cfg.RateLimit = rate.Limit(limit)
		} else {
			slog.Warn("ignoring invalid RATE_LIMIT", "value", v)
		}
	}

	return cfg
}
