package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/docrawl/ai"
	"github.com/poiesic/docrawl/ai/mock"
	"github.com/poiesic/docrawl/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnricherRequiresServices(t *testing.T) {
	_, err := NewEnricher(nil, mock.NewMockEmbedder(), 1536, "src")
	assert.ErrorIs(t, err, ErrSummarizerRequired)

	_, err = NewEnricher(mock.NewMockSummarizer(), nil, 1536, "src")
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestEnrichHappyPath(t *testing.T) {
	summarizer := mock.NewMockSummarizer()
	summarizer.SummarizeFunc = func(ctx context.Context, url, content string) (ai.TitleSummary, error) {
		return ai.TitleSummary{Title: "Install Guide", Summary: "How to install."}, nil
	}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{0.1, 0.2, 0.3}, nil
	}

	enricher, err := NewEnricher(summarizer, embedder, 3, "python_uv_docs")
	require.NoError(t, err)

	before := time.Now().UTC()
	chunk := enricher.Enrich(context.Background(), "chunk content", 2, "https://example.com/page")

	assert.Equal(t, "https://example.com/page", chunk.URL)
	assert.Equal(t, 2, chunk.ChunkNumber)
	assert.Equal(t, "Install Guide", chunk.Title)
	assert.Equal(t, "How to install.", chunk.Summary)
	assert.Equal(t, "chunk content", chunk.Content)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, chunk.Embedding)

	assert.Equal(t, "python_uv_docs", chunk.Metadata[core.MetaSource])
	assert.Equal(t, "https://example.com/page", chunk.Metadata[core.MetaURL])
	assert.Equal(t, "2", chunk.Metadata[core.MetaChunkNumber])

	ts, err := time.Parse(time.RFC3339, chunk.Metadata[core.MetaTimestamp])
	require.NoError(t, err)
	assert.WithinDuration(t, before, ts, 5*time.Second)
}

func TestEnrichSummarizerFailureUsesPlaceholders(t *testing.T) {
	summarizer := mock.NewMockSummarizer()
	summarizer.SummarizeFunc = func(ctx context.Context, url, content string) (ai.TitleSummary, error) {
		return ai.TitleSummary{}, errors.New("model unavailable")
	}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 2}, nil
	}

	enricher, err := NewEnricher(summarizer, embedder, 2, "src")
	require.NoError(t, err)

	chunk := enricher.Enrich(context.Background(), "content", 0, "https://example.com")

	assert.Equal(t, TitlePlaceholder, chunk.Title)
	assert.Equal(t, SummaryPlaceholder, chunk.Summary)
	// Embedding derivation is independent of the summarizer failure.
	assert.Equal(t, []float32{1, 2}, chunk.Embedding)
}

func TestEnrichEmbedderFailureUsesZeroVector(t *testing.T) {
	summarizer := mock.NewMockSummarizer()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	enricher, err := NewEnricher(summarizer, embedder, 8, "src")
	require.NoError(t, err)

	chunk := enricher.Enrich(context.Background(), "content", 0, "https://example.com")

	require.Len(t, chunk.Embedding, 8)
	for _, v := range chunk.Embedding {
		assert.Zero(t, v)
	}
	// Title and summary still come from the summarizer.
	assert.NotEqual(t, TitlePlaceholder, chunk.Title)
}

func TestEnrichEmptyEmbeddingTreatedAsFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{}, nil
	}

	enricher, err := NewEnricher(mock.NewMockSummarizer(), embedder, 4, "src")
	require.NoError(t, err)

	chunk := enricher.Enrich(context.Background(), "content", 0, "https://example.com")
	assert.Len(t, chunk.Embedding, 4)
}

func TestEnrichBothFailuresStillProduceChunk(t *testing.T) {
	summarizer := mock.NewMockSummarizer()
	summarizer.SummarizeFunc = func(ctx context.Context, url, content string) (ai.TitleSummary, error) {
		return ai.TitleSummary{}, errors.New("down")
	}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("down")
	}

	enricher, err := NewEnricher(summarizer, embedder, 1536, "src")
	require.NoError(t, err)

	chunk := enricher.Enrich(context.Background(), "content", 5, "https://example.com")

	require.NotNil(t, chunk)
	assert.Equal(t, TitlePlaceholder, chunk.Title)
	assert.Equal(t, SummaryPlaceholder, chunk.Summary)
	assert.Len(t, chunk.Embedding, 1536)
	assert.NoError(t, core.ValidateChunk(chunk))
}

func TestEnrichTruncatesSummaryInput(t *testing.T) {
	var seen string
	summarizer := mock.NewMockSummarizer()
	summarizer.SummarizeFunc = func(ctx context.Context, url, content string) (ai.TitleSummary, error) {
		seen = content
		return ai.TitleSummary{Title: "t", Summary: "s"}, nil
	}

	enricher, err := NewEnricher(summarizer, mock.NewMockEmbedder(), 4, "src")
	require.NoError(t, err)

	content := strings.Repeat("x", 2500)
	chunk := enricher.Enrich(context.Background(), content, 0, "https://example.com")

	// The summarizer sees only the head of the chunk; the embedding and
	// the stored content cover all of it.
	assert.Len(t, seen, 1000)
	assert.Equal(t, content, chunk.Content)
}

func TestEnricherDefaultsDims(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("down")
	}

	enricher, err := NewEnricher(mock.NewMockSummarizer(), embedder, 0, "src")
	require.NoError(t, err)

	chunk := enricher.Enrich(context.Background(), "content", 0, "https://example.com")
	assert.Len(t, chunk.Embedding, 1536)
}
