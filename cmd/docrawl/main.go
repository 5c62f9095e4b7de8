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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/docrawl/ai"
	"github.com/poiesic/docrawl/ai/openai"
	"github.com/poiesic/docrawl/ingest"
	"github.com/poiesic/docrawl/storage"
	"github.com/poiesic/docrawl/storage/badger"
	"github.com/poiesic/docrawl/storage/postgres"
	"github.com/poiesic/docrawl/web"
	"github.com/urfave/cli/v2"
)

const defaultSitemap = "https://docs.astral.sh/uv/sitemap.xml"

func main() {
	app := &cli.App{
		Name:  "docrawl",
		Usage: "Documentation crawler with chunk-level AI enrichment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "crawl",
				Usage:     "Crawl a documentation sitemap and ingest every page",
				ArgsUsage: "<table>",
				Action:    crawlCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sitemap",
						Usage: "Sitemap URL to discover pages from",
						Value: defaultSitemap,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
					},
					&cli.StringFlag{
						Name:    "postgres-dsn",
						Usage:   "Postgres connection string (overrides --db)",
						EnvVars: []string{"DOCRAWL_POSTGRES_DSN"},
					},
					&cli.IntFlag{
						Name:    "concurrency",
						Aliases: []string{"c"},
						Usage:   "Maximum number of pages processed in parallel",
						Value:   ingest.DefaultConcurrency,
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Target chunk size in characters",
						Value: 5000,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.IntFlag{
						Name:  "embedding-dims",
						Usage: "Embedding dimensionality (used for zero-vector fallback)",
						Value: 1536,
					},
					&cli.StringFlag{
						Name:  "summary-host",
						Usage: "Summarizer service host URL",
					},
					&cli.StringFlag{
						Name:  "summary-model",
						Usage: "Summarizer model name",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "API key for the AI services",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Source tag recorded in chunk metadata",
						Value: "python_uv_docs",
					},
				},
			},
			{
				Name:      "chunks",
				Usage:     "List stored chunks for a URL",
				ArgsUsage: "<table> <url>",
				Action:    chunksCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
					},
					&cli.StringFlag{
						Name:    "postgres-dsn",
						Usage:   "Postgres connection string (overrides --db)",
						EnvVars: []string{"DOCRAWL_POSTGRES_DSN"},
					},
					&cli.BoolFlag{
						Name:  "content",
						Usage: "Print full chunk content instead of a preview",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func crawlCommand(c *cli.Context) error {
	ctx := context.Background()

	table := c.Args().First()
	if table == "" {
		cli.ShowSubcommandHelp(c)
		return cli.Exit("table name is required", 1)
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	aiConfig := buildAIConfig(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	enricher, err := ingest.NewEnricher(
		provider.Summarizer(), provider.Embedder(),
		aiConfig.EmbeddingDims, c.String("source"))
	if err != nil {
		return fmt.Errorf("failed to create enricher: %w", err)
	}

	ingestor, err := ingest.NewIngestor(enricher, store, table,
		ingest.WithChunkSize(c.Int("chunk-size")))
	if err != nil {
		return fmt.Errorf("failed to create ingestor: %w", err)
	}
	defer ingestor.Release()

	session := web.NewSession(web.SessionConfig{})
	coordinator, err := ingest.NewCoordinator(session, web.NewConverter(), ingestor,
		ingest.WithConcurrency(c.Int("concurrency")))
	if err != nil {
		session.Close()
		return fmt.Errorf("failed to create coordinator: %w", err)
	}
	defer coordinator.Release()

	urls, err := web.FetchSitemap(ctx, nil, c.String("sitemap"))
	if err != nil {
		return fmt.Errorf("failed to fetch sitemap: %w", err)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in sitemap %s", c.String("sitemap"))
	}

	slog.Info("discovered URLs", "sitemap", c.String("sitemap"), "count", len(urls))
	coordinator.CrawlAll(ctx, urls)

	return nil
}

func chunksCommand(c *cli.Context) error {
	ctx := context.Background()

	table := c.Args().Get(0)
	url := c.Args().Get(1)
	if table == "" || url == "" {
		cli.ShowSubcommandHelp(c)
		return cli.Exit("table name and URL are required", 1)
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	chunks, err := store.GetChunksByURL(ctx, table, url)
	if err != nil {
		return fmt.Errorf("failed to load chunks: %w", err)
	}

	for _, chunk := range chunks {
		fmt.Printf("chunk %d: %s\n", chunk.ChunkNumber, chunk.Title)
		fmt.Printf("  summary: %s\n", chunk.Summary)
		if c.Bool("content") {
			fmt.Println(chunk.Content)
		} else {
			fmt.Printf("  content: %d chars, embedding: %d dims\n",
				len(chunk.Content), len(chunk.Embedding))
		}
	}
	fmt.Printf("%d chunks for %s\n", len(chunks), url)

	return nil
}

// openStore selects the storage backend from flags: Postgres when a DSN is
// given, BadgerDB otherwise.
func openStore(c *cli.Context) (storage.ChunkStore, error) {
	if dsn := c.String("postgres-dsn"); dsn != "" {
		store, err := postgres.NewChunkStore(postgres.Config{DSN: dsn})
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return store, nil
	}

	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("either --db or --postgres-dsn is required")
	}

	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := badger.NewChunkStore(backend)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to create chunk store: %w", err)
	}
	return store, nil
}

func buildAIConfig(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("summary-host"); host != "" {
		opts = append(opts, ai.WithSummaryHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("summary-model"); model != "" {
		opts = append(opts, ai.WithSummaryModel(model))
	}
	if key := c.String("api-key"); key != "" {
		opts = append(opts, ai.WithAPIKey(key))
	}
	if dims := c.Int("embedding-dims"); dims > 0 {
		opts = append(opts, ai.WithEmbeddingDims(dims))
	}
	return ai.NewConfig(opts...)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
