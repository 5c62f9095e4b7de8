package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/docrawl/core"
	"github.com/poiesic/docrawl/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.ChunkStore {
	t.Helper()
	store, err := NewMemoryChunkStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testChunk(url string, number int) *core.Chunk {
	return &core.Chunk{
		URL:         url,
		ChunkNumber: number,
		Title:       fmt.Sprintf("Title %d", number),
		Summary:     fmt.Sprintf("Summary %d", number),
		Content:     fmt.Sprintf("Content of chunk %d", number),
		Metadata: map[string]string{
			core.MetaSource:      "python_uv_docs",
			core.MetaURL:         url,
			core.MetaChunkNumber: fmt.Sprintf("%d", number),
		},
		Embedding: []float32{float32(number), 0.5, -0.5},
	}
}

func TestInsertAndGetChunk(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	url := "https://docs.astral.sh/uv/guides/"

	require.NoError(t, store.InsertChunk(ctx, "docs", testChunk(url, 0)))

	chunk, err := store.GetChunk(ctx, "docs", url, 0)
	require.NoError(t, err)
	assert.Equal(t, url, chunk.URL)
	assert.Equal(t, 0, chunk.ChunkNumber)
	assert.Equal(t, "Title 0", chunk.Title)
	assert.Equal(t, "Summary 0", chunk.Summary)
	assert.Equal(t, "Content of chunk 0", chunk.Content)
	assert.Equal(t, []float32{0, 0.5, -0.5}, chunk.Embedding)
	assert.Equal(t, "python_uv_docs", chunk.Metadata[core.MetaSource])
	assert.False(t, chunk.CreatedAt.IsZero())
}

func TestGetChunkNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetChunk(context.Background(), "docs", "https://example.com/missing", 0)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInsertChunkOverwritesSameIdentity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	url := "https://example.com/page"

	first := testChunk(url, 0)
	first.Title = "old title"
	require.NoError(t, store.InsertChunk(ctx, "docs", first))

	second := testChunk(url, 0)
	second.Title = "new title"
	require.NoError(t, store.InsertChunk(ctx, "docs", second))

	chunk, err := store.GetChunk(ctx, "docs", url, 0)
	require.NoError(t, err)
	assert.Equal(t, "new title", chunk.Title)

	chunks, err := store.GetChunksByURL(ctx, "docs", url)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestGetChunksByURLOrdered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	url := "https://example.com/long-page"

	// Insert out of order; iteration must come back in chunk-number order.
	for _, n := range []int{3, 0, 2, 1} {
		require.NoError(t, store.InsertChunk(ctx, "docs", testChunk(url, n)))
	}

	chunks, err := store.GetChunksByURL(ctx, "docs", url)
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ChunkNumber)
		assert.Equal(t, url, chunk.URL)
	}
}

func TestGetChunksByURLIsolatesURLs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertChunk(ctx, "docs", testChunk("https://example.com/a", 0)))
	require.NoError(t, store.InsertChunk(ctx, "docs", testChunk("https://example.com/b", 0)))
	require.NoError(t, store.InsertChunk(ctx, "docs", testChunk("https://example.com/b", 1)))

	chunks, err := store.GetChunksByURL(ctx, "docs", "https://example.com/b")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestTablesAreIndependentNamespaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	url := "https://example.com/page"

	require.NoError(t, store.InsertChunk(ctx, "alpha", testChunk(url, 0)))

	_, err := store.GetChunk(ctx, "beta", url, 0)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInvalidTableRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.InsertChunk(ctx, "", testChunk("https://example.com", 0))
	assert.ErrorIs(t, err, storage.ErrInvalidTable)

	err = store.InsertChunk(ctx, "bad:name", testChunk("https://example.com", 0))
	assert.ErrorIs(t, err, storage.ErrInvalidTable)

	_, err = store.GetChunksByURL(ctx, "bad:name", "https://example.com")
	assert.ErrorIs(t, err, storage.ErrInvalidTable)
}

func TestInsertInvalidChunkRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.InsertChunk(ctx, "docs", &core.Chunk{URL: "", Content: "x"})
	assert.ErrorIs(t, err, core.ErrInvalidChunk)

	err = store.InsertChunk(ctx, "docs", &core.Chunk{URL: "https://example.com", Content: ""})
	assert.ErrorIs(t, err, core.ErrEmptyContent)
}
