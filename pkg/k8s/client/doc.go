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

// Package client builds Kubernetes clients for ConfigMap document storage.
//
// GetKubeClient returns a process-wide client using discovered configuration:
// the KUBECONFIG variable, then ~/.kube/config, then the in-cluster service
// account. GetKubeClientWithConfig caches one client per explicit kubeconfig
// path, which backs the --kubeconfig flag of the CLI.
//
//	c, _, err := client.GetKubeClientWithConfig(kubeconfig)
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := c.CoreV1().ConfigMaps("factory").Get(ctx, "plan", metav1.GetOptions{})
//
// Tests use k8s.io/client-go/kubernetes/fake instead of a live cluster.
package client
