// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - URL must not be empty
//   - ChunkNumber must not be negative
//   - Content must not be empty
//
// NOT validated (populated by the enricher):
//   - Title/Summary (placeholder strings are legal values)
//   - Embedding (a zero vector is a legal value)
//   - Metadata and CreatedAt (set at enrichment/storage time)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyURL)
	}

	if chunk.ChunkNumber < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeChunkNumber)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	return nil
}
