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

package serializer

import (
	"log/slog"
	"strings"
)

// Format is a serialization format.
type Format string

const (
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML with two space indentation.
	FormatYAML Format = "yaml"
	// FormatTable is a two column table of flattened keys and values.
	FormatTable Format = "table"
	// FormatText is a human readable summary for values implementing
	// Summarizer. Other values fall back to FormatTable.
	FormatText Format = "text"
)

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable, FormatText:
		return false
	default:
		return true
	}
}

// Readable reports whether documents in f can be deserialized.
func (f Format) Readable() bool {
	return f == FormatJSON || f == FormatYAML
}

// extension is the file extension used for f in ConfigMap data keys.
func (f Format) extension() string {
	switch f {
	case FormatTable, FormatText:
		return "txt"
	default:
		return string(f)
	}
}

// SupportedFormats returns the names of all supported output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
		string(FormatText),
	}
}

// FormatFromPath determines the format from a file extension, ignoring
// case. Unknown extensions default to JSON.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"):
		return FormatTable
	case strings.HasSuffix(lowerPath, ".txt"):
		return FormatText
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}
