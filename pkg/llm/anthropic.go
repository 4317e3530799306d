package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicOptions struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Metrics Recorder
}

type AnthropicClient struct {
	client  *anthropic.Client
	model   anthropic.Model
	apiKey  string
	timeout time.Duration
	metrics Recorder
}

func NewAnthropicClient(opts AnthropicOptions) *AnthropicClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Metrics == nil {
		opts.Metrics = nopRecorder{}
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(opts.Timeout),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := anthropic.NewClient(reqOpts...)
	return &AnthropicClient{
		client:  &client,
		model:   anthropic.ModelClaudeHaiku4_5,
		apiKey:  opts.APIKey,
		timeout: opts.Timeout,
		metrics: opts.Metrics,
	}
}

func (c *AnthropicClient) Name() string {
	return "Anthropic"
}

func (c *AnthropicClient) Summarize(ctx context.Context, prompt string) string {
	if c.apiKey == "" {
		slog.Warn("ANTHROPIC_API_KEY is not set, skipping AI summary")
		return NoAIResponse
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(prompt))),
		},
	})
	elapsed := time.Since(start).Seconds()

	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			c.metrics.RecordUpstream("anthropic", "messages", "status_"+strconv.Itoa(apiErr.StatusCode), elapsed)
			slog.Error("anthropic API error", "status", apiErr.StatusCode)
			return fmt.Sprintf("Anthropic API error: %d", apiErr.StatusCode)
		}
		c.metrics.RecordUpstream("anthropic", "messages", "transport_error", elapsed)
		slog.Error("error calling anthropic", "error", err)
		return fmt.Sprintf("Error calling Anthropic: %v", err)
	}
	c.metrics.RecordUpstream("anthropic", "messages", "ok", elapsed)

	var sb strings.Builder
	hasText := false
	for _, block := range resp.Content {
		if block.Type == "text" {
			hasText = true
			sb.WriteString(block.Text)
		}
	}
	if !hasText {
		slog.Warn("anthropic response without text content", "blocks", len(resp.Content))
		return NoAnswer
	}
	return sb.String()
}
