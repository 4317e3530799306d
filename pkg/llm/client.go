package llm

import (
	"context"
	"fmt"
	"time"
)

const (
	// NoAIResponse is returned when the provider cannot be asked at all.
	NoAIResponse = "No AI response"
	// NoAnswer is returned when the provider's reply has no content field.
	// An empty content string is returned as is.
	NoAnswer = "No answer"

	DefaultTimeout = 15 * time.Second
	maxTokens      = 512
	temperature    = 0.7
)

// Summarizer turns a free-text prompt into a short news summary. It never
// fails: provider errors come back as a descriptive string.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) string
	Name() string
}

type Recorder interface {
	RecordUpstream(provider, operation, outcome string, seconds float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordUpstream(string, string, string, float64) {}

func userPrompt(prompt string) string {
	return fmt.Sprintf("Give me the latest news and summary for: %s", prompt)
}
