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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reader deserializes JSON or YAML documents from an io.Reader.
// Close must be called when the reader was created with NewFileReader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader over input. Only JSON and YAML can be read.
// If input implements io.Closer it is closed by Reader.Close.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if !format.Readable() {
		return nil, fmt.Errorf("format %q does not support deserialization", format)
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReader creates a Reader for a local file or an http(s) URL.
// Remote documents are read fully into memory.
func NewFileReader(format Format, source string) (*Reader, error) {
	if !format.Readable() {
		return nil, fmt.Errorf("format %q does not support deserialization", format)
	}

	if isURL(source) {
		data, err := NewHTTPReader().Read(context.Background(), source)
		if err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		return &Reader{format: format, input: bytes.NewReader(data)}, nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Reader{
		format: format,
		input:  file,
		closer: file,
	}, nil
}

// NewFileReaderAuto is NewFileReader with the format taken from the extension.
func NewFileReaderAuto(source string) (*Reader, error) {
	return NewFileReader(FormatFromPath(source), source)
}

// Deserialize decodes the next document into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the underlying file. It is safe to call on a nil Reader
// and more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile loads a document of type T from a file path, an http(s) URL, or
// a cm://namespace/name ConfigMap URI.
//
//	catalog, err := FromFile[recipe.Catalog]("cm://factory/catalog")
func FromFile[T any](path string) (*T, error) {
	return FromFileWithKubeconfig[T](path, "")
}

// FromFileWithKubeconfig is FromFile with an explicit kubeconfig for
// ConfigMap URIs. An empty kubeconfig uses default discovery.
//
// Files and URLs are decoded by extension. ConfigMaps are decoded from
// their document.yaml or document.json key.
func FromFileWithKubeconfig[T any](path, kubeconfig string) (*T, error) {
	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, fmt.Errorf("invalid ConfigMap URI: %w", err)
		}
		return fromConfigMap[T](namespace, name, kubeconfig)
	}

	fileFormat := FormatFromPath(path)
	slog.Debug("determined file format", "path", path, "format", string(fileFormat))

	ser, err := NewFileReader(fileFormat, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if closeErr := ser.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var v T
	if err := ser.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}

	slog.Debug("loaded object from file", "path", path)
	return &v, nil
}

// ReadSource returns the raw bytes of a local file or an http(s) URL.
func ReadSource(ctx context.Context, source string) ([]byte, error) {
	if isURL(source) {
		return NewHTTPReader().Read(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
