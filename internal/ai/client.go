package ai

import (
	"context"
	"fmt"
	"strings"

	"drip/internal/config"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Client wraps the Anthropic Messages API. One request per call; callers
// never retry automatically, a failed call is surfaced to the user action
// that triggered it.
type Client struct {
	client  anthropic.Client
	model   string
	enabled bool
}

func NewClient(cfg *config.Config) *Client {
	enabled := cfg.AnthropicAPIKey != ""

	var client anthropic.Client
	if enabled {
		client = anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
	}

	return &Client{
		client:  client,
		model:   cfg.AnthropicModel,
		enabled: enabled,
	}
}

func (c *Client) IsEnabled() bool {
	return c.enabled
}

// GenerateText sends a single text prompt and returns the raw response text.
func (c *Client) GenerateText(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("anthropic client is not configured")
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call anthropic: %w", err)
	}

	return collectText(message), nil
}

// GenerateFromImage sends a base64-encoded image followed by a text prompt
// and returns the raw response text.
func (c *Client) GenerateFromImage(ctx context.Context, prompt, imageB64, mediaType string, maxTokens int64) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("anthropic client is not configured")
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mediaType, imageB64),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call anthropic: %w", err)
	}

	return collectText(message), nil
}

func collectText(message *anthropic.Message) string {
	var builder strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(builder.String())
}
