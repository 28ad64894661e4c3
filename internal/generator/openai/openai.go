package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkoukk/tiktoken-go"
)

// Client generates answers with an OpenAI-compatible chat completion model.
// Decoding is deterministic: temperature 0, bounded output length.
type Client struct {
	api   openai.Client
	model string
	enc   *tiktoken.Tiktoken
}

// Config configures the chat completion client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a chat completion client.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	api := openai.NewClient(
		option.WithAPIKey(key),
		option.WithBaseURL(base),
		option.WithHTTPClient(&http.Client{Timeout: t}),
		option.WithMaxRetries(0),
	)
	enc, err := encodingFor(cfg.Model)
	if err != nil {
		return nil, err
	}
	return &Client{api: api, model: cfg.Model, enc: enc}, nil
}

func (c *Client) Name() string { return "openai:" + c.model }

// CountTokens counts tokens with the model's tiktoken encoding.
func (c *Client) CountTokens(text string) int { return len(c.enc.EncodeOrdinary(text)) }

// Generate sends the prompt as a single user message.
func (c *Client) Generate(ctx context.Context, prompt string, maxNewTokens int) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(0),
	}
	if maxNewTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxNewTokens))
	}
	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
