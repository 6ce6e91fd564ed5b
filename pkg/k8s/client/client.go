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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// UserAgent identifies fplan to the API server.
const UserAgent = "fplan"

// Interface is the Kubernetes API surface used by the planner.
type Interface = kubernetes.Interface

type cached struct {
	client Interface
	config *rest.Config
	err    error
}

var (
	clientOnce    sync.Once
	defaultClient cached

	byPathMu sync.Mutex
	byPath   = map[string]cached{}
)

// GetKubeClient returns the shared client built from the discovered
// kubeconfig (KUBECONFIG, ~/.kube/config, then in-cluster).
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		c, cfg, err := BuildKubeClient("")
		defaultClient = cached{config: cfg, err: err}
		if c != nil {
			defaultClient.client = c
		}
	})
	return defaultClient.client, defaultClient.config, defaultClient.err
}

// GetKubeClientWithConfig returns a client for an explicit kubeconfig path.
// Clients are cached per path; an empty path is the shared client.
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	if kubeconfig == "" {
		return GetKubeClient()
	}

	byPathMu.Lock()
	defer byPathMu.Unlock()

	if c, ok := byPath[kubeconfig]; ok {
		return c.client, c.config, c.err
	}

	c, cfg, err := BuildKubeClient(kubeconfig)
	entry := cached{config: cfg, err: err}
	if c != nil {
		entry.client = c
	}
	byPath[kubeconfig] = entry
	return entry.client, entry.config, entry.err
}

// ResolveKubeconfig returns the kubeconfig path to use: the explicit path,
// KUBECONFIG, or ~/.kube/config when it exists. An empty result means
// in-cluster configuration.
func ResolveKubeconfig(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// BuildKubeClient builds a new, uncached client.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	var config *rest.Config
	var err error

	kubeconfig = ResolveKubeconfig(kubeconfig)

	// In-cluster directly when nothing is configured, which avoids the
	// "Neither --kubeconfig nor --master was specified" warning.
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
		}
	}
	config.UserAgent = UserAgent

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}
