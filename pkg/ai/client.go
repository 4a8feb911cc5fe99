package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"job-copilot/internal/domain"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client calls an OpenAI-compatible chat-completions endpoint. One
// synchronous request per operation; failures are terminal, nothing is
// retried.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Ready reports whether the provider credential is configured. The
// pipeline calls this before composing a prompt so a misconfigured
// deployment fails fast.
func (c *Client) Ready() error {
	if c.apiKey == "" {
		return &domain.ConfigurationError{Reason: "missing GROQ_API_KEY environment variable"}
	}
	return nil
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			// Content is untyped: some providers return non-string
			// values here and that must read as "no content", not a
			// decode failure.
			Content interface{} `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the messages with temperature 0 and JSON-object output
// requested, and returns the first choice's text content. Absent or
// non-string content comes back as the empty string; the extractor
// downstream decides what that means.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{StatusCode: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var envelope completionResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", &domain.FormatError{Err: err}
	}
	if len(envelope.Choices) == 0 {
		return "", nil
	}
	content, ok := envelope.Choices[0].Message.Content.(string)
	if !ok {
		return "", nil
	}
	return content, nil
}
