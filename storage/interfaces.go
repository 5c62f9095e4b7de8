package storage

import (
	"context"

	"github.com/poiesic/docrawl/core"
)

// ChunkStore provides durable persistence of enriched chunks keyed by
// (url, chunk_number) within a named table. The table selects a logical
// destination: a key-prefix namespace for the badger backend, a SQL table
// for the postgres backend.
//
// Implementations must be thread-safe; the pipeline issues concurrent
// independent writes. Uniqueness of (url, chunk_number) is the store's
// responsibility.
type ChunkStore interface {
	// InsertChunk writes one enriched chunk. The chunk's CreatedAt is set
	// by the store at write time.
	InsertChunk(ctx context.Context, table string, chunk *core.Chunk) error

	// GetChunk retrieves a single chunk by its (url, chunk_number) identity.
	// Returns ErrNotFound if no such chunk exists.
	GetChunk(ctx context.Context, table, url string, chunkNumber int) (*core.Chunk, error)

	// GetChunksByURL retrieves all chunks stored for a source URL,
	// ordered by chunk number.
	GetChunksByURL(ctx context.Context, table, url string) ([]*core.Chunk, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
