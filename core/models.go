package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. It is used to derive
// stable storage keys from source URLs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Metadata keys attached to every processed chunk.
const (
	MetaSource      = "source"
	MetaURL         = "url"
	MetaChunkNumber = "chunk_number"
	MetaTimestamp   = "timestamp"
)

// Chunk represents one bounded slice of a document's text, numbered sequentially
// within its source document. It is created by the chunker and enriched in place
// before storage.
type Chunk struct {
	URL         string
	ChunkNumber int               // 0-based position within the source document
	Title       string            // Derived by the summarizer (populated by the enricher)
	Summary     string            // Derived by the summarizer (populated by the enricher)
	Content     string            // Raw chunk text
	Metadata    map[string]string // source, url, chunk_number, timestamp
	Embedding   []float32         // Embedding vector (populated by the enricher)
	CreatedAt   time.Time         // When the chunk record was written
}

// URLID returns the hashed identity of the chunk's source URL.
// Together with ChunkNumber it addresses exactly one stored record.
func (c *Chunk) URLID() ID {
	return IDFromContent(c.URL)
}
