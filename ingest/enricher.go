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
	"strconv"
	"time"

	"github.com/poiesic/docrawl/ai"
	"github.com/poiesic/docrawl/core"
)

// Placeholder values substituted when title/summary derivation fails.
const (
	TitlePlaceholder   = "Error processing title"
	SummaryPlaceholder = "Error processing summary"
)

// summaryInputLimit bounds how much chunk content is sent to the summarizer.
const summaryInputLimit = 1000

// Enricher derives a title, summary, and embedding vector for one chunk.
//
// Enrichment never fails: a failed derivation is logged and replaced by a
// placeholder (error strings for title/summary, a zero vector for the
// embedding), so a single bad network call cannot stall the pipeline. The
// two derivations are independent; failure of one never blocks the other.
type Enricher struct {
	summarizer ai.Summarizer
	embedder   ai.Embedder
	dims       int
	source     string
	logger     *slog.Logger
}

// NewEnricher creates an enricher. dims is the embedding dimensionality used
// for the zero-vector fallback; source is the ingestion-source tag attached
// to every chunk's metadata.
func NewEnricher(summarizer ai.Summarizer, embedder ai.Embedder, dims int, source string) (*Enricher, error) {
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if dims < 1 {
		dims = 1536
	}

	return &Enricher{
		summarizer: summarizer,
		embedder:   embedder,
		dims:       dims,
		source:     source,
		logger:     slog.Default().With("component", "enricher"),
	}, nil
}

// Enrich processes a single chunk of text. It always returns a populated
// chunk; errors are absorbed into placeholder values.
func (e *Enricher) Enrich(ctx context.Context, content string, chunkNumber int, url string) *core.Chunk {
	ts, err := e.summarizer.Summarize(ctx, url, head(content, summaryInputLimit))
	if err != nil {
		e.logger.Error("error deriving title and summary",
			"url", url, "chunk_number", chunkNumber, "err", err)
		ts = ai.TitleSummary{Title: TitlePlaceholder, Summary: SummaryPlaceholder}
	}

	embedding, err := e.embedder.EmbedText(ctx, content)
	if err != nil || len(embedding) == 0 {
		if err != nil {
			e.logger.Error("error generating embedding",
				"url", url, "chunk_number", chunkNumber, "err", err)
		}
		embedding = make([]float32, e.dims)
	}

	return &core.Chunk{
		URL:         url,
		ChunkNumber: chunkNumber,
		Title:       ts.Title,
		Summary:     ts.Summary,
		Content:     content,
		Metadata: map[string]string{
			core.MetaSource:      e.source,
			core.MetaURL:         url,
			core.MetaChunkNumber: strconv.Itoa(chunkNumber),
			core.MetaTimestamp:   time.Now().UTC().Format(time.RFC3339),
		},
		Embedding: embedding,
	}
}

// head returns at most limit bytes of s.
func head(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
