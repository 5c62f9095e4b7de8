package ingest

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docrawl/chunker"
	"github.com/poiesic/docrawl/storage"
)

// defaultStorePoolSize bounds the storage write fan-out shared by all
// documents in a batch.
const defaultStorePoolSize = 8

// Ingestor processes one document: split into chunks, enrich each chunk in
// order, and persist the results.
//
// Enrichment is sequential per chunk, which keeps chunk numbering strictly
// tied to split order; the resulting storage writes are fanned out on a
// worker pool and joined before Ingest returns. A failed write is logged and
// isolated — the remaining chunks of the document are unaffected.
type Ingestor struct {
	enricher  *Enricher
	store     storage.ChunkStore
	table     string
	chunkSize int
	storePool *ants.Pool
	logger    *slog.Logger
}

// IngestorOption configures an Ingestor.
type IngestorOption func(*Ingestor) error

// WithChunkSize sets the target chunk size in characters.
// Default is chunker.DefaultTargetSize.
func WithChunkSize(size int) IngestorOption {
	return func(ing *Ingestor) error {
		if size > 0 {
			ing.chunkSize = size
		}
		return nil
	}
}

// WithStorePoolSize sets the worker pool size for storage writes.
func WithStorePoolSize(size int) IngestorOption {
	return func(ing *Ingestor) error {
		if size < 1 {
			size = 1
		}
		if ing.storePool != nil {
			ing.storePool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ing.storePool = pool
		return nil
	}
}

// WithIngestorLogger sets a custom logger. Default is slog.Default().
func WithIngestorLogger(logger *slog.Logger) IngestorOption {
	return func(ing *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		ing.logger = logger
		return nil
	}
}

// NewIngestor creates a document ingestor writing to the given table.
func NewIngestor(enricher *Enricher, store storage.ChunkStore, table string, opts ...IngestorOption) (*Ingestor, error) {
	if enricher == nil {
		return nil, ErrEnricherRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	storePool, err := ants.NewPool(defaultStorePoolSize)
	if err != nil {
		return nil, err
	}

	ing := &Ingestor{
		enricher:  enricher,
		store:     store,
		table:     table,
		chunkSize: chunker.DefaultTargetSize,
		storePool: storePool,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(ing); optErr != nil {
			ing.Release()
			return nil, optErr
		}
	}

	return ing, nil
}

// Ingest chunks, enriches, and stores one document. Per-chunk failures are
// logged and isolated; nothing propagates to the caller.
func (ing *Ingestor) Ingest(ctx context.Context, url, text string) {
	chunks := chunker.Split(text, ing.chunkSize)
	if len(chunks) == 0 {
		ing.logger.Warn("document produced no chunks", "url", url)
		return
	}

	var wg sync.WaitGroup
	for i, content := range chunks {
		chunk := ing.enricher.Enrich(ctx, content, i, url)

		wg.Add(1)
		err := ing.storePool.Submit(func() {
			defer wg.Done()
			if err := ing.store.InsertChunk(ctx, ing.table, chunk); err != nil {
				ing.logger.Error("error storing chunk",
					"url", url, "chunk_number", chunk.ChunkNumber, "err", err)
				return
			}
			ing.logger.Info("stored chunk", "url", url, "chunk_number", chunk.ChunkNumber)
		})
		if err != nil {
			wg.Done()
			ing.logger.Error("error submitting store task",
				"url", url, "chunk_number", i, "err", err)
		}
	}

	// All writes for this document are joined before moving on.
	wg.Wait()
	ing.logger.Info("processed document", "url", url, "chunks", len(chunks))
}

// Release releases the storage worker pool.
// The ingestor should not be used after calling Release.
func (ing *Ingestor) Release() {
	if ing.storePool != nil {
		ing.storePool.Release()
	}
}
