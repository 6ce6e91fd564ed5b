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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/factoryplan/pkg/header"
)

type summarized struct {
	Objective float64
	fail      bool
}

func (s *summarized) WriteSummary(w io.Writer) error {
	if s.fail {
		return errors.New("boom")
	}
	_, err := io.WriteString(w, "Objective value: 1.00\n")
	return err
}

func TestFormat(t *testing.T) {
	for _, f := range SupportedFormats() {
		assert.False(t, Format(f).IsUnknown(), f)
	}
	assert.True(t, Format("xml").IsUnknown())

	assert.True(t, FormatJSON.Readable())
	assert.True(t, FormatYAML.Readable())
	assert.False(t, FormatTable.Readable())
	assert.False(t, FormatText.Readable())

	tests := []struct {
		path string
		want Format
	}{
		{"plan.json", FormatJSON},
		{"PLAN.JSON", FormatJSON},
		{"catalog.yaml", FormatYAML},
		{"catalog.yml", FormatYAML},
		{"plan.table", FormatTable},
		{"plan.txt", FormatText},
		{"plan", FormatJSON},
		{"https://example.com/catalog.yaml", FormatYAML},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFromPath(tt.path), tt.path)
	}
}

func TestWriterFormats(t *testing.T) {
	doc := &testDoc{Name: "ingots", Inputs: map[string]float64{"Iron Ore": 30}}
	doc.Kind = header.KindRequest

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatJSON, &buf).Serialize(context.Background(), doc))
		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "Request", got["kind"])
		assert.Equal(t, "ingots", got["name"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(context.Background(), doc))
		var got testDoc
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, header.KindRequest, got.Kind)
		assert.Equal(t, 30.0, got.Inputs["Iron Ore"])
	})

	t.Run("table flattens embedded header", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), doc))
		out := buf.String()
		assert.Contains(t, out, "FIELD")
		assert.Contains(t, out, "Kind")
		assert.NotContains(t, out, "Header.Kind")
		assert.Contains(t, out, "Inputs.Iron Ore")
	})

	t.Run("text uses summary", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatText, &buf).Serialize(context.Background(), &summarized{}))
		assert.Equal(t, "Objective value: 1.00\n", buf.String())
	})

	t.Run("text falls back to table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(FormatText, &buf).Serialize(context.Background(), doc))
		assert.Contains(t, buf.String(), "FIELD")
	})

	t.Run("summary failure", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewWriter(FormatText, &buf).Serialize(context.Background(), &summarized{fail: true})
		assert.Error(t, err)
	})

	t.Run("unknown format defaults to json", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(Format("xml"), &buf)
		require.NoError(t, w.Serialize(context.Background(), map[string]int{"a": 1}))
		assert.True(t, strings.HasPrefix(buf.String(), "{"))
	})
}

func TestMarshalTableValues(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want []string
	}{
		{"nil", nil, []string{"<empty>"}},
		{"scalar", 42, []string{"value", "42"}},
		{"slice", []string{"a", "b"}, []string{"[0]", "[1]"}},
		{"nested", map[string]any{"a": map[string]int{"b": 1}}, []string{"a.b"}},
		{"nil pointer field", struct{ P *int }{}, []string{"P", "<nil>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(FormatTable, tt.v)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(out), w)
			}
		})
	}

	_, err := Marshal(Format("xml"), 1)
	assert.Error(t, err)
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path is stdout", func(t *testing.T) {
		w, ok := NewFileWriterOrStdout(FormatJSON, "  ").(*Writer)
		require.True(t, ok)
		assert.Equal(t, os.Stdout, w.output)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plan.yaml")
		s := NewFileWriterOrStdout(FormatYAML, path)
		w, ok := s.(*Writer)
		require.True(t, ok)
		require.NoError(t, w.Serialize(context.Background(), map[string]string{"status": "optimal"}))
		require.NoError(t, w.Close())
		require.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "status: optimal\n", string(data))
	})

	t.Run("uncreatable file falls back to stdout", func(t *testing.T) {
		w, ok := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "plan.json")).(*Writer)
		require.True(t, ok)
		assert.Equal(t, os.Stdout, w.output)
	})

	t.Run("bad ConfigMap URI falls back to stdout", func(t *testing.T) {
		_, ok := NewFileWriterOrStdout(FormatJSON, "cm://only-namespace").(*Writer)
		assert.True(t, ok)
	})
}
