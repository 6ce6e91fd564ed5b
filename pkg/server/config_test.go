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
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/mchmarny/factoryplan/pkg/defaults"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		wantPort     int
		wantShutdown time.Duration
		wantRate     rate.Limit
	}{
		{
			name:         "defaults",
			wantPort:     8080,
			wantShutdown: defaults.ServerShutdownTimeout,
			wantRate:     100,
		},
		{
			name:         "overrides",
			env:          map[string]string{"PORT": "9090", "SHUTDOWN_TIMEOUT_SECONDS": "5", "RATE_LIMIT": "2.5"},
			wantPort:     9090,
			wantShutdown: 5 * time.Second,
			wantRate:     2.5,
		},
		{
			name:         "invalid values ignored",
			env:          map[string]string{"PORT": "abc", "SHUTDOWN_TIMEOUT_SECONDS": "-1", "RATE_LIMIT": "0"},
			wantPort:     8080,
			wantShutdown: defaults.ServerShutdownTimeout,
			wantRate:     100,
		},
		{
			name:         "port out of range",
			env:          map[string]string{"PORT": "70000"},
			wantPort:     8080,
			wantShutdown: defaults.ServerShutdownTimeout,
			wantRate:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"PORT", "SHUTDOWN_TIMEOUT_SECONDS", "RATE_LIMIT"} {
				t.Setenv(k, tt.env[k])
			}

			cfg := parseConfig()
			if cfg.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", cfg.Port, tt.wantPort)
			}
			if cfg.ShutdownTimeout != tt.wantShutdown {
				t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, tt.wantShutdown)
			}
			if cfg.RateLimit != tt.wantRate {
				t.Errorf("RateLimit = %v, want %v", cfg.RateLimit, tt.wantRate)
			}
		})
	}
}
