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

package header

import (
	"time"
)

// APIVersion is the current document API version.
const APIVersion = "fplan.dev/v1"

// Kind identifies the type of a serialized planner document.
type Kind string

const (
	KindCatalog Kind = "Catalog"
	KindRequest Kind = "Request"
	KindPlan    Kind = "Plan"
)

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the known document kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindCatalog, KindRequest, KindPlan:
		return true
	default:
		return false
	}
}

// Option configures a Header.
type Option func(*Header)

// WithMetadata sets a single metadata entry.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the document kind.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion overrides the document API version.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New returns a Header stamped with the current API version and the given options.
func New(opts ...Option) *Header {
	h := &Header{
		APIVersion: APIVersion,
		Metadata:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header is embedded in every document the planner reads or writes.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs such as the generation timestamp and tool version.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init resets the header for a freshly generated document.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = make(map[string]string)

	h.Metadata["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata["version"] = version
	}
}

// DocumentHeader returns the header itself. Types that embed Header expose
// it through this method.
func (h *Header) DocumentHeader() *Header {
	return h
}

// Check verifies that the header is either empty or declares the expected kind.
// Documents without a header are accepted so that hand-written YAML stays short.
func (h *Header) Check(expected Kind) bool {
	if h == nil || h.Kind == "" {
		return true
	}
	return h.Kind == expected
}
