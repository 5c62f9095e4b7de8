package mock

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/poiesic/docrawl/ai"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default deterministic behavior.
	SummarizeFunc func(ctx context.Context, url, content string) (ai.TitleSummary, error)

	// Pipeline tests call the mock from concurrent workers.
	callCount atomic.Int64
}

// NewMockSummarizer creates a mock summarizer with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns a deterministic title/summary derived from the inputs.
func (m *MockSummarizer) Summarize(ctx context.Context, url, content string) (ai.TitleSummary, error) {
	m.callCount.Add(1)

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, url, content)
	}

	preview := content
	if len(preview) > 24 {
		preview = preview[:24]
	}
	return ai.TitleSummary{
		Title:   fmt.Sprintf("Title for %s", url),
		Summary: fmt.Sprintf("Summary of %q", preview),
	}, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockSummarizer) Reset() {
	m.callCount.Store(0)
	m.SummarizeFunc = nil
}
