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
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/mchmarny/factoryplan/pkg/defaults"
)

// RespondJSON writes a JSON response with the given status code and data.
// The body is encoded before any header is written so an encoding failure
// never produces a partial response.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

const (
	// HTTPReaderUserAgent is sent with every download.
	HTTPReaderUserAgent = "fplan/1.0"

	// HTTPReaderMaxBytes caps the size of a downloaded document. Game data
	// exports are a few megabytes.
	HTTPReaderMaxBytes = 64 << 20
)

// HTTPReaderOption configures an HTTPReader.
type HTTPReaderOption func(*HTTPReader)

// HTTPReader downloads documents over HTTP.
type HTTPReader struct {
	userAgent string
	maxBytes  int64
	client    *http.Client
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) HTTPReaderOption {
	return func(r *HTTPReader) {
		r.userAgent = userAgent
	}
}

// WithMaxBytes overrides the download size limit.
func WithMaxBytes(n int64) HTTPReaderOption {
	return func(r *HTTPReader) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// WithClient replaces the HTTP client.
func WithClient(client *http.Client) HTTPReaderOption {
	return func(r *HTTPReader) {
		if client != nil {
			r.client = client
		}
	}
}

// NewHTTPReader creates an HTTPReader with pooled connections and the
// default timeouts.
func NewHTTPReader(options ...HTTPReaderOption) *HTTPReader {
	r := &HTTPReader{
		userAgent: HTTPReaderUserAgent,
		maxBytes:  HTTPReaderMaxBytes,
		client: &http.Client{
			Timeout:   defaults.HTTPClientTimeout,
			Transport: newDefaultHTTPTransport(),
		},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// Read fetches url and returns the response body. Responses other than
// 200 OK and bodies larger than the size limit are errors.
func (r *HTTPReader) Read(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, r.maxBytes)
	}
	return data, nil
}
