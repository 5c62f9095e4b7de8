// Package ingest provides pipeline orchestration for crawling documentation.
//
// The Coordinator type manages the crawl workflow for a batch of URLs,
// including:
//   - Rendering each page and converting it to plain text
//   - Splitting the text into bounded-size chunks
//   - Enriching each chunk with a title, summary, and embedding
//   - Persisting enriched chunks to storage
//
// URLs are processed concurrently under a fixed ceiling using worker pools.
// Errors on individual URLs or chunks are logged but never fail the batch.
package ingest
