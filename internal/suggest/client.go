// Package suggest talks to the task generation proxy and keeps the
// user's selection over the returned suggestions.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GeneratePath is the proxy route the client posts to.
const GeneratePath = "/api/generate-ai-tasks"

// ErrEmptyPrompt is returned before any network call for a blank prompt.
var ErrEmptyPrompt = errors.New("prompt is empty")

type Client struct {
	baseURL string
	http    *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	UserPrompt string `json:"userPrompt"`
}

type generateResponse struct {
	Tasks   []string `json:"tasks"`
	Message string   `json:"message"`
}

// GenerateTasks asks the proxy for suggestions. A successful call
// always returns a non-nil slice.
func (c *Client) GenerateTasks(ctx context.Context, prompt string) ([]string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	body, err := json.Marshal(generateRequest{UserPrompt: prompt})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not reach the task generator at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out generateResponse
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Message
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("Backend error (%d): %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if out.Tasks == nil {
		out.Tasks = []string{}
	}
	return out.Tasks, nil
}
