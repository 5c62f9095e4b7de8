// Package postgres implements storage.ChunkStore against a Postgres database
// with a pgvector embedding column, matching the reference deployment's
// destination schema:
//
//	CREATE TABLE <table> (
//	    url          text        NOT NULL,
//	    chunk_number integer     NOT NULL,
//	    title        text        NOT NULL,
//	    summary      text        NOT NULL,
//	    content      text        NOT NULL,
//	    metadata     jsonb       NOT NULL,
//	    embedding    vector(1536),
//	    created_at   timestamptz NOT NULL,
//	    PRIMARY KEY (url, chunk_number)
//	);
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/poiesic/docrawl/core"
	"github.com/poiesic/docrawl/storage"
)

// identifierRe matches table names that are safe to interpolate as quoted
// SQL identifiers.
var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config holds Postgres connection settings.
type Config struct {
	// DSN is the lib/pq connection string.
	DSN string

	// MaxOpenConns bounds the connection pool. Default: 10.
	MaxOpenConns int
}

// ChunkStore implements storage.ChunkStore for Postgres.
type ChunkStore struct {
	db *sql.DB
}

var _ storage.ChunkStore = (*ChunkStore)(nil)

// NewChunkStore opens a Postgres connection pool and verifies connectivity.
//
// Returns storage.ChunkStore interface to enforce abstraction.
func NewChunkStore(cfg Config) (storage.ChunkStore, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &ChunkStore{db: db}, nil
}

// Close closes the connection pool.
func (s *ChunkStore) Close() error {
	return s.db.Close()
}

// InsertChunk writes one enriched chunk. The table's (url, chunk_number)
// primary key enforces identity uniqueness.
func (s *ChunkStore) InsertChunk(ctx context.Context, table string, chunk *core.Chunk) error {
	if !identifierRe.MatchString(table) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidTable, table)
	}
	if err := core.ValidateChunk(chunk); err != nil {
		return err
	}

	chunk.CreatedAt = time.Now().UTC()

	metadata, err := json.Marshal(chunk.Metadata)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (url, chunk_number, title, summary, content, metadata, embedding, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		pq.QuoteIdentifier(table))

	_, err = s.db.ExecContext(ctx, query,
		chunk.URL,
		chunk.ChunkNumber,
		chunk.Title,
		chunk.Summary,
		chunk.Content,
		metadata,
		vectorLiteral(chunk.Embedding),
		chunk.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting chunk: %w", err)
	}
	return nil
}

// GetChunk retrieves a single chunk by its (url, chunk_number) identity.
func (s *ChunkStore) GetChunk(ctx context.Context, table, url string, chunkNumber int) (*core.Chunk, error) {
	if !identifierRe.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidTable, table)
	}

	query := fmt.Sprintf(
		`SELECT url, chunk_number, title, summary, content, metadata, embedding::text, created_at
		 FROM %s WHERE url = $1 AND chunk_number = $2`,
		pq.QuoteIdentifier(table))

	chunk, err := scanChunk(s.db.QueryRowContext(ctx, query, url, chunkNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	return chunk, err
}

// GetChunksByURL retrieves all chunks stored for a source URL, ordered by
// chunk number.
func (s *ChunkStore) GetChunksByURL(ctx context.Context, table, url string) ([]*core.Chunk, error) {
	if !identifierRe.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidTable, table)
	}

	query := fmt.Sprintf(
		`SELECT url, chunk_number, title, summary, content, metadata, embedding::text, created_at
		 FROM %s WHERE url = $1 ORDER BY chunk_number`,
		pq.QuoteIdentifier(table))

	rows, err := s.db.QueryContext(ctx, query, url)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []*core.Chunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanChunk(row scanner) (*core.Chunk, error) {
	var (
		chunk     core.Chunk
		metadata  []byte
		embedding string
	)
	err := row.Scan(
		&chunk.URL,
		&chunk.ChunkNumber,
		&chunk.Title,
		&chunk.Summary,
		&chunk.Content,
		&metadata,
		&embedding,
		&chunk.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(metadata, &chunk.Metadata); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	if chunk.Embedding, err = parseVector(embedding); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return &chunk, nil
}

// vectorLiteral renders an embedding as a pgvector input literal: "[1,2,3]".
func vectorLiteral(vector []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}

// parseVector parses a pgvector text literal back into a float slice.
func parseVector(literal string) ([]float32, error) {
	literal = strings.TrimSpace(literal)
	literal = strings.TrimPrefix(literal, "[")
	literal = strings.TrimSuffix(literal, "]")
	if literal == "" {
		return []float32{}, nil
	}

	parts := strings.Split(literal, ",")
	vector := make([]float32, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, err
		}
		vector[i] = float32(v)
	}
	return vector, nil
}
