package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultGrokURL   = "https://api.x.ai/v1/chat/completions"
	DefaultGrokModel = "grok-beta"
)

type GrokOptions struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
	Metrics Recorder
}

// GrokClient talks to the xAI chat completions API, which speaks the OpenAI
// wire format.
type GrokClient struct {
	client  *openai.Client
	model   openai.ChatModel
	apiKey  string
	timeout time.Duration
	metrics Recorder
}

func NewGrokClient(opts GrokOptions) *GrokClient {
	if opts.URL == "" {
		opts.URL = DefaultGrokURL
	}
	if opts.Model == "" {
		opts.Model = DefaultGrokModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Metrics == nil {
		opts.Metrics = nopRecorder{}
	}

	client := openai.NewClient(
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(baseURLFromEndpoint(opts.URL)),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(opts.Timeout),
	)
	return &GrokClient{
		client:  &client,
		model:   openai.ChatModel(opts.Model),
		apiKey:  opts.APIKey,
		timeout: opts.Timeout,
		metrics: opts.Metrics,
	}
}

func (c *GrokClient) Name() string {
	return "Grok"
}

func (c *GrokClient) Summarize(ctx context.Context, prompt string) string {
	if c.apiKey == "" {
		slog.Warn("GROK_API_KEY is not set, skipping AI summary")
		return NoAIResponse
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(userPrompt(prompt)),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	elapsed := time.Since(start).Seconds()

	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			c.metrics.RecordUpstream("grok", "chat_completions", "status_"+strconv.Itoa(apiErr.StatusCode), elapsed)
			slog.Error("grok API error", "status", apiErr.StatusCode)
			return fmt.Sprintf("Grok API error: %d", apiErr.StatusCode)
		}
		c.metrics.RecordUpstream("grok", "chat_completions", "transport_error", elapsed)
		slog.Error("error calling grok", "error", err)
		return fmt.Sprintf("Error calling Grok: %v", err)
	}
	c.metrics.RecordUpstream("grok", "chat_completions", "ok", elapsed)

	// Only a missing or null content falls back to NoAnswer; an empty
	// string is a real answer and is returned as is.
	if len(resp.Choices) == 0 || !resp.Choices[0].Message.JSON.Content.Valid() {
		slog.Warn("grok response without content", "choices", len(resp.Choices))
		return NoAnswer
	}
	return resp.Choices[0].Message.Content
}

// baseURLFromEndpoint turns a full chat completions URL into the SDK base,
// e.g. https://api.x.ai/v1/chat/completions -> https://api.x.ai/v1/
func baseURLFromEndpoint(endpoint string) string {
	base := strings.TrimSuffix(endpoint, "/")
	base = strings.TrimSuffix(base, "chat/completions")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}
