package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validChunk() *Chunk {
	return &Chunk{
		URL:         "https://example.com/page",
		ChunkNumber: 0,
		Content:     "some content",
	}
}

func TestValidateChunkValid(t *testing.T) {
	assert.NoError(t, ValidateChunk(validChunk()))
}

func TestValidateChunkNil(t *testing.T) {
	err := ValidateChunk(nil)
	assert.ErrorIs(t, err, ErrInvalidChunk)
}

func TestValidateChunkEmptyURL(t *testing.T) {
	chunk := validChunk()
	chunk.URL = ""
	err := ValidateChunk(chunk)
	assert.ErrorIs(t, err, ErrInvalidChunk)
	assert.ErrorIs(t, err, ErrEmptyURL)
}

func TestValidateChunkNegativeChunkNumber(t *testing.T) {
	chunk := validChunk()
	chunk.ChunkNumber = -1
	err := ValidateChunk(chunk)
	assert.ErrorIs(t, err, ErrNegativeChunkNumber)
}

func TestValidateChunkEmptyContent(t *testing.T) {
	chunk := validChunk()
	chunk.Content = ""
	err := ValidateChunk(chunk)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestValidateChunkAllowsPlaceholderEnrichment(t *testing.T) {
	// Title, summary, embedding, and metadata are enricher-owned; their
	// absence or placeholder values never fail validation.
	chunk := validChunk()
	chunk.Title = ""
	chunk.Summary = ""
	chunk.Embedding = nil
	chunk.Metadata = nil
	assert.NoError(t, ValidateChunk(chunk))
}
