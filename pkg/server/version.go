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
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is used when the client does not negotiate one.
	DefaultAPIVersion = "v1"

	vendorMediaPrefix = "application/vnd.fplan."
)

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion reads the version from a vendor media type such as
// "application/vnd.fplan.v1+json" in the Accept header.
func negotiateAPIVersion(r *http.Request) string {
	for _, accept := range strings.Split(r.Header.Get("Accept"), ",") {
		accept = strings.TrimSpace(accept)
		rest, ok := strings.CutPrefix(accept, vendorMediaPrefix)
		if !ok {
			continue
		}
		version, _, _ := strings.Cut(rest, "+")
		if supportedAPIVersions[version] {
			return version
		}
	}
	return DefaultAPIVersion
}

// SetAPIVersionHeader reports the served API version.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}
