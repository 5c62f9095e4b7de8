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


package ingest

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docrawl/web"
)

// DefaultConcurrency is the default ceiling on URLs processed in parallel.
const DefaultConcurrency = 5

// Coordinator crawls a batch of URLs: each URL is rendered, converted to
// text, and handed to the ingestor. At most the configured number of URLs
// are in flight at once; a failure on one URL never affects its siblings.
type Coordinator struct {
	renderer  web.Renderer
	converter *web.Converter
	ingestor  *Ingestor
	pool      *ants.Pool
	logger    *slog.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator) error

// WithConcurrency sets the maximum number of URLs processed in parallel.
// Default is DefaultConcurrency.
func WithConcurrency(limit int) CoordinatorOption {
	return func(c *Coordinator) error {
		if limit < 1 {
			limit = DefaultConcurrency
		}
		if c.pool != nil {
			c.pool.Release()
		}
		pool, err := ants.NewPool(limit)
		if err != nil {
			return err
		}
		c.pool = pool
		return nil
	}
}

// WithCoordinatorLogger sets a custom logger. Default is slog.Default().
func WithCoordinatorLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCoordinator creates a crawl coordinator.
func NewCoordinator(renderer web.Renderer, converter *web.Converter, ingestor *Ingestor, opts ...CoordinatorOption) (*Coordinator, error) {
	if renderer == nil {
		return nil, ErrRendererRequired
	}
	if converter == nil {
		return nil, ErrConverterRequired
	}
	if ingestor == nil {
		return nil, ErrIngestorRequired
	}

	pool, err := ants.NewPool(DefaultConcurrency)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		renderer:  renderer,
		converter: converter,
		ingestor:  ingestor,
		pool:      pool,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(c); optErr != nil {
			c.pool.Release()
			return nil, optErr
		}
	}

	return c, nil
}

// CrawlAll processes every URL in the batch and returns once all of them
// have completed. Submit blocks when the pool is saturated, which is what
// holds the in-flight count at the concurrency ceiling.
func (c *Coordinator) CrawlAll(ctx context.Context, urls []string) {
	var wg sync.WaitGroup
	for _, url := range urls {
		wg.Add(1)
		err := c.pool.Submit(func() {
			defer wg.Done()
			c.processURL(ctx, url)
		})
		if err != nil {
			wg.Done()
			c.logger.Error("error submitting crawl task", "url", url, "err", err)
		}
	}
	wg.Wait()
	c.logger.Info("crawl complete", "urls", len(urls))
}

// processURL runs the render -> convert -> ingest pipeline for one URL.
// Errors are logged and the URL is abandoned; siblings are unaffected.
func (c *Coordinator) processURL(ctx context.Context, url string) {
	c.logger.Info("crawling", "url", url)

	html, err := c.renderer.Open(ctx, url)
	if err != nil {
		c.logger.Error("error rendering page", "url", url, "err", err)
		return
	}

	text, err := c.converter.Convert(html)
	if err != nil {
		c.logger.Error("error converting page", "url", url, "err", err)
		return
	}

	if strings.TrimSpace(text) == "" {
		c.logger.Warn("page produced no text, skipping", "url", url)
		return
	}

	c.ingestor.Ingest(ctx, url, text)
}

// Release tears down the worker pool and closes the render session. The
// ingestor is not released; its owner is responsible for that.
func (c *Coordinator) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
	if err := c.renderer.Close(); err != nil {
		c.logger.Error("error closing renderer", "err", err)
	}
}
