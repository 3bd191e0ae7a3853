// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package llm

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

var (
	// ErrInvalidAPIKey is returned when the model provider rejects our key.
	ErrInvalidAPIKey = errors.New("llm: invalid API key")
	// ErrNoNameColumn is returned when the model cannot find a name column
	// in the sample rows.
	ErrNoNameColumn = errors.New("llm: no name column detected")
)

// ColumnMapping is the model's verdict on which spreadsheet columns hold
// guest data. Nil index means the column is absent.
type ColumnMapping struct {
	NameIndex  *int `json:"nameIndex"`
	PhoneIndex *int `json:"phoneIndex"`
	HasHeader  bool `json:"hasHeader"`
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewClient builds a client for the given endpoint. BaseURL is the API root,
// e.g. "https://api.openai.com/v1".
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Model:      model,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

const inferPrompt = `You are given the first rows of a spreadsheet of event guests.
Identify which zero-based column index contains guest names and which, if any,
contains phone numbers. Also report whether the first row is a header row.
Respond with only a JSON object of the form
{"nameIndex": <int or null>, "phoneIndex": <int or null>, "hasHeader": <bool>}.`

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// InferColumns asks the model to map sample rows to guest fields. Only the
// first few rows should be passed; the caller controls sampling.
func (c *Client) InferColumns(ctx context.Context, rows [][]string) (*ColumnMapping, error) {
	var sb strings.Builder
	sb.WriteString(inferPrompt)
	sb.WriteString("\n\nRows:\n")
	for _, row := range rows {
		line, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("llm: encode sample row: %w", err)
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: sb.String()}},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("llm: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidAPIKey
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm: provider returned %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, fmt.Errorf("llm: decode response: %w", err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("llm: provider error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("llm: empty response")
	}

	mapping, err := parseMapping(cr.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if mapping.NameIndex == nil {
		return nil, ErrNoNameColumn
	}
	return mapping, nil
}

// parseMapping extracts the mapping JSON from a model reply, tolerating
// markdown code fences and surrounding prose.
func parseMapping(content string) (*ColumnMapping, error) {
	content = strings.TrimSpace(content)
	if i := strings.Index(content, "{"); i >= 0 {
		if j := strings.LastIndex(content, "}"); j > i {
			content = content[i : j+1]
		}
	}

	var m ColumnMapping
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return nil, fmt.Errorf("llm: unparseable mapping %q: %w", truncate([]byte(content), 120), err)
	}
	return &m, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
