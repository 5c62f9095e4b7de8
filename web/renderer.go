// Copyright 2025 Poiesic Systems
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


package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Renderer produces the rendered HTML of a page. One renderer session is
// shared by all crawl tasks; each Open call is an independent page within
// that session and is safe for concurrent use.
type Renderer interface {
	// Open fetches the rendered HTML for the given URL.
	Open(ctx context.Context, url string) (string, error)

	// Close tears down the session. The renderer must not be used afterwards.
	Close() error
}

// DefaultUserAgent identifies the crawler to documentation sites.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxContentSize = 16 << 20 // 16 MiB
	maxRedirects          = 5
)

// SessionConfig configures an HTTP render session.
type SessionConfig struct {
	// Timeout bounds each page fetch. Default: 30s.
	Timeout time.Duration

	// UserAgent is sent with every request. Default: DefaultUserAgent.
	UserAgent string

	// MaxContentSize caps the response body size in bytes. Default: 16 MiB.
	MaxContentSize int64
}

// Session implements Renderer over a shared net/http client.
// It does not execute JavaScript; documentation sites that require a headless
// browser need a Renderer implementation backed by one.
type Session struct {
	client         *http.Client
	userAgent      string
	maxContentSize int64
}

var _ Renderer = (*Session)(nil)

// NewSession creates an HTTP render session.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxContentSize <= 0 {
		cfg.MaxContentSize = defaultMaxContentSize
	}

	return &Session{
		client: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (max %d)", maxRedirects)
				}
				return nil
			},
		},
		userAgent:      cfg.UserAgent,
		maxContentSize: cfg.MaxContentSize,
	}
}

// Open fetches the page at urlStr and returns its HTML body.
func (s *Session) Open(ctx context.Context, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	// Read body with size limit
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxContentSize+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > s.maxContentSize {
		return "", fmt.Errorf("content too large (exceeds %d bytes)", s.maxContentSize)
	}

	return string(body), nil
}

// Close releases idle connections held by the session.
func (s *Session) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
