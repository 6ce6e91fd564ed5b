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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/mchmarny/factoryplan/pkg/defaults"
	"github.com/mchmarny/factoryplan/pkg/header"
	"github.com/mchmarny/factoryplan/pkg/k8s/client"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap sources and destinations:
	// cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// configMapDataPrefix is the data key prefix of the stored document,
	// followed by the format extension.
	configMapDataPrefix = "document."

	fieldManager = "fplan"
)

// kubeClient returns the client used for ConfigMap I/O. Tests replace it.
var kubeClient = func(kubeconfig string) (client.Interface, error) {
	var (
		c   client.Interface
		err error
	)
	if kubeconfig != "" {
		c, _, err = client.GetKubeClientWithConfig(kubeconfig)
	} else {
		c, _, err = client.GetKubeClient()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	return c, nil
}

// ConfigMapWriter writes a serialized document into a ConfigMap with
// server-side apply, creating or replacing it.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
}

// NewConfigMapWriter creates a writer for namespace/name. Unknown formats
// fall back to JSON.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalize(format),
	}
}

// WithKubeconfig sets an explicit kubeconfig path.
func (w *ConfigMapWriter) WithKubeconfig(path string) *ConfigMapWriter {
	w.kubeconfig = path
	return w
}

// Serialize stores v in the ConfigMap. The data holds the document under
// document.<ext>, the format, and the document timestamp. Documents with a
// header also label the ConfigMap with their kind and tool version.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	c, err := kubeClient(w.kubeconfig)
	if err != nil {
		return err
	}

	content, err := Marshal(w.format, v)
	if err != nil {
		return err
	}

	kind, version, timestamp := "document", "unknown", time.Now().UTC().Format(time.RFC3339)
	if hd, ok := v.(interface{ DocumentHeader() *header.Header }); ok {
		h := hd.DocumentHeader()
		if h.Kind != "" {
			kind = h.Kind.String()
		}
		if ver, ok := h.Metadata["version"]; ok && ver != "" {
			version = ver
		}
		if ts, ok := h.Metadata["timestamp"]; ok && ts != "" {
			timestamp = ts
		}
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "fplan",
			"app.kubernetes.io/component": strings.ToLower(kind),
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			configMapDataPrefix + w.format.extension(): string(content),
			"format":    string(w.format),
			"timestamp": timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"kind", kind,
		"format", w.format)

	_, err = c.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

func fromConfigMap[T any](namespace, name, kubeconfig string) (*T, error) {
	c, err := kubeClient(kubeconfig)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := c.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	var (
		content string
		format  Format
	)
	for _, f := range []Format{Format(cm.Data["format"]), FormatYAML, FormatJSON} {
		if !f.Readable() {
			continue
		}
		if data, ok := cm.Data[configMapDataPrefix+f.extension()]; ok {
			content, format = data, f
			break
		}
	}
	if format == "" {
		return nil, fmt.Errorf("ConfigMap %s/%s has no readable document", namespace, name)
	}

	slog.Debug("reading from ConfigMap",
		"namespace", namespace,
		"name", name,
		"format", format,
		"size", len(content))

	reader, err := NewReader(format, strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	var v T
	if err := reader.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize ConfigMap data: %w", err)
	}
	return &v, nil
}

// parseConfigMapURI splits cm://namespace/name into its parts.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
