package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docrawl/core"
	"github.com/poiesic/docrawl/storage"
)

// ChunkStore implements storage.ChunkStore for BadgerDB.
type ChunkStore struct {
	backend *Backend
}

var _ storage.ChunkStore = (*ChunkStore)(nil)

// NewChunkStore creates a ChunkStore over the given backend.
// The store owns the backend; Close closes it.
//
// Returns storage.ChunkStore interface to enforce abstraction.
func NewChunkStore(backend *Backend) (storage.ChunkStore, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &ChunkStore{backend: backend}, nil
}

// Close closes the underlying database.
func (s *ChunkStore) Close() error {
	return s.backend.Close()
}

// InsertChunk writes one enriched chunk keyed by (table, url hash, chunk number).
// A later write with the same identity overwrites the earlier one, which keeps
// re-crawls idempotent per chunk.
func (s *ChunkStore) InsertChunk(ctx context.Context, table string, chunk *core.Chunk) error {
	if !validTable(table) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidTable, table)
	}
	if err := core.ValidateChunk(chunk); err != nil {
		return err
	}

	chunk.CreatedAt = time.Now().UTC()

	return s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChunkKey(table, chunk.URLID(), chunk.ChunkNumber)
		if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetChunk retrieves a single chunk by its (url, chunk_number) identity.
func (s *ChunkStore) GetChunk(ctx context.Context, table, url string, chunkNumber int) (*core.Chunk, error) {
	if !validTable(table) {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidTable, table)
	}

	var chunk *core.Chunk
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChunkKey(table, core.IDFromContent(url), chunkNumber)
		item, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			chunk, err = storage.UnmarshalChunk(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// GetChunksByURL retrieves all chunks stored for a source URL, ordered by
// chunk number. Returns an empty slice when none exist.
func (s *ChunkStore) GetChunksByURL(ctx context.Context, table, url string) ([]*core.Chunk, error) {
	if !validTable(table) {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidTable, table)
	}

	var chunks []*core.Chunk
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeChunkURLPrefix(table, core.IDFromContent(url))

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				chunk, err := storage.UnmarshalChunk(val)
				if err != nil {
					return err
				}
				chunks = append(chunks, chunk)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}
