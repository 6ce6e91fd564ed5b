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

// Package serializer reads and writes planner documents (catalogs, requests
// and plans) in multiple formats.
//
// # Formats
//
//   - json: indented JSON, readable and writable
//   - yaml: two space YAML, readable and writable
//   - table: flattened FIELD/VALUE table, write only
//   - text: the document's own summary when it implements Summarizer,
//     otherwise a table; write only
//
// The format of a file is inferred from its extension by FormatFromPath.
//
// # Destinations
//
// NewFileWriterOrStdout picks a destination from a path:
//
//	""                      stdout
//	"plan.yaml"             local file
//	"cm://factory/plan"     Kubernetes ConfigMap "plan" in namespace "factory"
//
// ConfigMaps are written with server-side apply. The document is stored
// under the data key "document.<ext>" next to "format" and "timestamp" keys.
//
// # Sources
//
// FromFile and FromFileWithKubeconfig load a typed document from a local
// file, an http(s) URL or a cm:// URI:
//
//	req, err := serializer.FromFile[planner.Request]("request.yaml")
//
// Remote documents are fetched with HTTPReader, which bounds the download
// size and honors context cancellation.
package serializer
