package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/artem13815/hr-trainer/pkg/llm"
)

const (
	DefaultURL         = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel       = "deepseek/deepseek-chat-v3-0324:free"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// Config is the fixed client configuration. It is injected once at construction.
type Config struct {
	APIKey      string
	URL         string
	Model       string
	Temperature float32
	MaxTokens   int
	AppTitle    string
	Referer     string
}

// Client is a minimal OpenRouter (OpenAI-compatible) chat completions client.
// Each Send is exactly one HTTP attempt; retries live in llm.Retrying.
type Client struct {
	cfg    Config
	httpDo *http.Client
}

func New(cfg Config, httpClient *http.Client) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{cfg: cfg, httpDo: httpClient}
}

// Model reports the model identifier requests are sent with.
func (c *Client) Model() string { return c.cfg.Model }

type chatCompletionsRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message *struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// Send posts the messages and returns the first choice's content.
func (c *Client) Send(ctx context.Context, messages []llm.Message) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("openrouter api key is empty: %w", llm.ErrNotConfigured)
	}
	data, err := json.Marshal(chatCompletionsRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if c.cfg.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.AppTitle != "" {
		httpReq.Header.Set("X-Title", c.cfg.AppTitle)
	}

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", &llm.StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var out chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", llm.ErrInvalidResponseFormat, err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message == nil || out.Choices[0].Message.Content == nil {
		return "", llm.ErrInvalidResponseFormat
	}
	return *out.Choices[0].Message.Content, nil
}
