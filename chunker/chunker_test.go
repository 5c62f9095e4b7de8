package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyText(t *testing.T) {
	assert.Empty(t, Split("", 100))
}

func TestSplitWhitespaceOnly(t *testing.T) {
	assert.Empty(t, Split("   \n\n\t  ", 100))
}

func TestSplitNonPositiveTargetSize(t *testing.T) {
	assert.Nil(t, Split("some text", 0))
	assert.Nil(t, Split("some text", -5))
}

func TestSplitShortText(t *testing.T) {
	chunks := Split("hello", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello", chunks[0])
}

func TestSplitTrimsSingleChunk(t *testing.T) {
	chunks := Split("  hello world \n", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplitParagraphBreak(t *testing.T) {
	first := strings.Repeat("a", 60)
	second := strings.Repeat("b", 50)
	chunks := Split(first+"\n\n"+second, 100)

	require.Len(t, chunks, 2)
	assert.Equal(t, first, chunks[0])
	assert.Equal(t, second, chunks[1])
}

func TestSplitSentenceBreak(t *testing.T) {
	first := strings.Repeat("a", 50) + "."
	second := strings.Repeat("b", 80)
	chunks := Split(first+" "+second, 100)

	require.Len(t, chunks, 2)
	// The period stays with the sentence it terminates.
	assert.Equal(t, first, chunks[0])
	assert.Equal(t, second, chunks[1])
}

func TestSplitCodeFencePreferredOverParagraph(t *testing.T) {
	// Both a paragraph break and a code fence qualify inside the window;
	// the fence wins even though the paragraph break is earlier.
	text := strings.Repeat("a", 40) + "\n\n" + strings.Repeat("b", 20) +
		"```" + strings.Repeat("c", 60)
	chunks := Split(text, 100)

	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("a", 40)+"\n\n"+strings.Repeat("b", 20), chunks[0])
	assert.Equal(t, "```"+strings.Repeat("c", 60), chunks[1])
}

func TestSplitRejectsEarlyBoundary(t *testing.T) {
	// The only paragraph break sits at 10% of the window, below the 30%
	// threshold, so the chunk is hard-cut at targetSize.
	text := strings.Repeat("a", 10) + "\n\n" + strings.Repeat("b", 200)
	chunks := Split(text, 100)

	require.NotEmpty(t, chunks)
	assert.Len(t, chunks[0], 100)
}

func TestSplitForwardProgress(t *testing.T) {
	// A fence at offset 0 never qualifies as a break; the scan must still
	// advance and terminate.
	chunks := Split("```"+strings.Repeat("x", 4999), 100)
	require.NotEmpty(t, chunks)

	var total int
	for _, chunk := range chunks {
		total += len(chunk)
	}
	assert.Equal(t, 5002, total)
}

func TestSplitHardCutWithoutBoundaries(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := Split(text, 100)

	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("x", 100), chunks[0])
	assert.Equal(t, strings.Repeat("x", 100), chunks[1])
	assert.Equal(t, strings.Repeat("x", 50), chunks[2])
}

func TestSplitCoversAllContent(t *testing.T) {
	text := strings.Repeat("x", 997)
	chunks := Split(text, 100)

	var total int
	for _, chunk := range chunks {
		total += len(chunk)
	}
	assert.Equal(t, len(text), total)
}

func TestSplitOrderMatchesDocument(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString(strings.Repeat(string(rune('a'+i)), 40))
		sb.WriteString("\n\n")
	}
	chunks := Split(sb.String(), 100)

	require.NotEmpty(t, chunks)
	// Chunk order follows document order.
	prev := byte(0)
	for _, chunk := range chunks {
		require.GreaterOrEqual(t, chunk[0], prev)
		prev = chunk[0]
	}
}

func TestSplitDefaultTargetSize(t *testing.T) {
	assert.Equal(t, 5000, DefaultTargetSize)
}
