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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/docrawl/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client llms.Model
	logger *slog.Logger
}

// titleSummary is an internal type used for JSON unmarshaling.
// It matches the structure requested from the LLM.
type titleSummary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.SummaryHost),
		openai.WithToken(config.Token()),
		openai.WithModel(config.SummaryModel),
	)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client: client,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize derives a title and summary for a chunk using a JSON-mode chat
// completion. It makes a single attempt; failures are returned to the caller,
// which substitutes placeholder values.
func (s *Summarizer) Summarize(ctx context.Context, url, content string) (ai.TitleSummary, error) {
	prompt := fmt.Sprintf("URL: %s\n\nContent:\n%s...", url, content)

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(summaryPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, messages, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		s.logger.Error("failed to generate title and summary", "url", url, "err", err)
		return ai.TitleSummary{}, err
	}

	if len(response.Choices) < 1 {
		s.logger.Debug("no choices returned from model", "url", url)
		return ai.TitleSummary{}, fmt.Errorf("summarizer: empty response")
	}

	choice := response.Choices[0]

	// Strip markdown code fences if present
	responseText := strings.TrimSpace(choice.Content)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	// Try to repair common JSON issues
	responseText = repairJSON(responseText)

	var result titleSummary
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		s.logger.Warn("error parsing summarizer response",
			"url", url,
			"response", responseText,
			"err", err)
		return ai.TitleSummary{}, err
	}

	return ai.TitleSummary{Title: result.Title, Summary: result.Summary}, nil
}
