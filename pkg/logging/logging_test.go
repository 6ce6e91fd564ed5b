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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" Error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "fplan", "v1.2.3", slog.LevelInfo)
	logger.Info("plan solved", "objective", 299.99)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["module"] != "fplan" {
		t.Errorf("module = %v, want fplan", rec["module"])
	}
	if rec["version"] != "v1.2.3" {
		t.Errorf("version = %v, want v1.2.3", rec["version"])
	}
	if rec["msg"] != "plan solved" {
		t.Errorf("msg = %v, want plan solved", rec["msg"])
	}
	if _, ok := rec["source"]; ok {
		t.Error("source should only be attached at debug level")
	}
}

func TestNewLogger_DebugSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "fplan", "dev", slog.LevelDebug)
	logger.Debug("building model")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if _, ok := rec["source"]; !ok {
		t.Error("expected source location at debug level")
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "fplan", "dev", slog.LevelWarn)
	logger.Info("ignored")

	if buf.Len() != 0 {
		t.Errorf("expected no output below level, got %q", buf.String())
	}
}
