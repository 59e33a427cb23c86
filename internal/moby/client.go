// Package moby forwards chat conversations to the Cloudflare Workers AI
// text-generation endpoint on behalf of the "Moby" assistant.
package moby

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChatMessage is one turn of a conversation. Callers may also pass turns of
// any other JSON shape to Chat; they are forwarded unchanged.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UpstreamError is returned when the AI endpoint answers with a non-2xx status.
// Details holds the decoded response body, or nil when it was not JSON.
type UpstreamError struct {
	StatusCode int
	Details    any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("cloudflare ai returned status %d", e.StatusCode)
}

// Config configures a Client.
type Config struct {
	BaseURL      string
	AccountID    string
	APIToken     string
	Model        string
	SystemPrompt string
	HTTPClient   *http.Client
}

// Client calls the Workers AI run endpoint.
type Client struct {
	baseURL      string
	accountID    string
	apiToken     string
	model        string
	systemPrompt string
	httpClient   *http.Client
}

// NewClient builds a Client. A nil HTTPClient gets a 60 second timeout.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		accountID:    cfg.AccountID,
		apiToken:     cfg.APIToken,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		httpClient:   httpClient,
	}
}

type runRequest struct {
	Messages []json.RawMessage `json:"messages"`
}

type runResponse struct {
	Result *struct {
		Response *string `json:"response"`
	} `json:"result"`
}

// Chat sends the conversation with the system prompt prepended and returns the
// generated reply. A reply of nil means the endpoint answered without text.
func (c *Client) Chat(ctx context.Context, messages []json.RawMessage) (*string, error) {
	system, err := json.Marshal(ChatMessage{Role: "system", Content: c.systemPrompt})
	if err != nil {
		return nil, fmt.Errorf("failed to encode system prompt: %w", err)
	}
	payload := runRequest{Messages: make([]json.RawMessage, 0, len(messages)+1)}
	payload.Messages = append(payload.Messages, system)
	payload.Messages = append(payload.Messages, messages...)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.baseURL, c.accountID, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call cloudflare ai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cloudflare ai response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var details any
		if json.Unmarshal(raw, &details) != nil {
			details = nil
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Details: details}
	}

	// A success body that is not JSON yields no reply rather than an error.
	var decoded runResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, nil
	}
	if decoded.Result == nil || decoded.Result.Response == nil || *decoded.Result.Response == "" {
		return nil, nil
	}
	return decoded.Result.Response, nil
}
