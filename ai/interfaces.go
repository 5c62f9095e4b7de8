package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Summarizer derives a title and summary for a documentation chunk.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize derives a concise title and summary for the given chunk content.
	// The source URL is provided as context; for a chunk from the middle of a
	// document the title is descriptive rather than the document's own.
	// Returns an error if the derivation fails; callers decide the fallback.
	Summarize(ctx context.Context, url, content string) (TitleSummary, error)
}

// TitleSummary is the structured result of summarizing a chunk.
type TitleSummary struct {
	// Title is a short heading for the chunk.
	Title string

	// Summary is a concise summary of the chunk's main points.
	Summary string
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and Summarizer instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Summarizer returns the title/summary derivation service.
	// The returned Summarizer is safe for concurrent use.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
