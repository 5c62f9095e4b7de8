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


// Package chunker splits document text into bounded-size chunks, preferring
// to break at code-block, paragraph, or sentence boundaries.
package chunker

import "strings"

// DefaultTargetSize is the default chunk size in characters.
const DefaultTargetSize = 5000

// breakThreshold is the fraction of targetSize a boundary must be past for the
// break to be accepted. Breaking earlier would produce pathologically tiny chunks.
const breakThreshold = 0.3

const codeFence = "```"

// Split divides text into ordered chunks of roughly targetSize characters.
//
// For each chunk it scans the window [start, start+targetSize) for the best
// break position, in priority order: the last code-fence marker, the last
// paragraph break (blank line), then the last sentence end (". ", cut placed
// after the period). A boundary is only accepted when it lies past 30% of
// targetSize into the window; if none qualifies the chunk is cut at targetSize.
//
// Emitted chunks are trimmed of surrounding whitespace; whitespace-only chunks
// are dropped. Empty text or a non-positive targetSize yields no chunks.
// Split is pure and deterministic.
func Split(text string, targetSize int) []string {
	if targetSize <= 0 {
		return nil
	}

	var chunks []string
	start := 0
	length := len(text)

	for start < length {
		end := start + targetSize

		// Remainder fits in one chunk.
		if end >= length {
			if chunk := strings.TrimSpace(text[start:]); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		window := text[start:end]
		if pos, ok := findBreak(window, targetSize); ok {
			end = start + pos
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Guarantees forward progress even if end computed equal to start.
		start = max(start+1, end)
	}

	return chunks
}

// findBreak locates the preferred break position within the window.
// Returns the cut offset relative to the window start and whether a
// qualifying boundary was found.
func findBreak(window string, targetSize int) (int, bool) {
	threshold := float64(targetSize) * breakThreshold

	if pos := strings.LastIndex(window, codeFence); pos != -1 && float64(pos) > threshold {
		return pos, true
	}

	if pos := strings.LastIndex(window, "\n\n"); pos != -1 && float64(pos) > threshold {
		return pos, true
	}

	// The period stays with the preceding sentence.
	if pos := strings.LastIndex(window, ". "); pos != -1 && float64(pos) > threshold {
		return pos + 1, true
	}

	return 0, false
}
