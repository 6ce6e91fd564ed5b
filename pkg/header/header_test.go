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
	"testing"
	"time"
)

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindCatalog, true},
		{KindRequest, true},
		{KindPlan, true},
		{Kind("Widget"), false},
		{Kind(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	h := New(WithKind(KindPlan), WithMetadata("source", "test"))
	if h.Kind != KindPlan {
		t.Errorf("Kind = %q, want %q", h.Kind, KindPlan)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("APIVersion = %q, want %q", h.APIVersion, APIVersion)
	}
	if h.Metadata["source"] != "test" {
		t.Errorf("Metadata[source] = %q, want test", h.Metadata["source"])
	}

	h = New(WithAPIVersion("fplan.dev/v2"))
	if h.APIVersion != "fplan.dev/v2" {
		t.Errorf("APIVersion = %q, want override", h.APIVersion)
	}
}

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindCatalog, "v1.2.3")

	if h.Kind != KindCatalog {
		t.Errorf("Kind = %q, want %q", h.Kind, KindCatalog)
	}
	if h.Metadata["version"] != "v1.2.3" {
		t.Errorf("version = %q, want v1.2.3", h.Metadata["version"])
	}
	if _, err := time.Parse(time.RFC3339, h.Metadata["timestamp"]); err != nil {
		t.Errorf("timestamp not RFC3339: %v", err)
	}

	h.Init(KindPlan, "")
	if _, ok := h.Metadata["version"]; ok {
		t.Error("expected no version entry when version is empty")
	}
}

func TestCheck(t *testing.T) {
	var nilHeader *Header
	if !nilHeader.Check(KindPlan) {
		t.Error("nil header should pass")
	}
	if !(&Header{}).Check(KindPlan) {
		t.Error("empty kind should pass")
	}
	if !(&Header{Kind: KindRequest}).Check(KindRequest) {
		t.Error("matching kind should pass")
	}
	if (&Header{Kind: KindCatalog}).Check(KindRequest) {
		t.Error("mismatched kind should fail")
	}
}

func TestDocumentHeader(t *testing.T) {
	type doc struct {
		Header
		Name string
	}
	d := &doc{}
	d.Init(KindRequest, "v1")

	var v any = d
	hd, ok := v.(interface{ DocumentHeader() *Header })
	if !ok {
		t.Fatal("embedding type should expose DocumentHeader")
	}
	if hd.DocumentHeader().Kind != KindRequest {
		t.Errorf("Kind = %q, want %q", hd.DocumentHeader().Kind, KindRequest)
	}
}
