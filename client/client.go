// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tabletamer/server/models"
)

// APIError is a response the server delivered but marked unsuccessful.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client is a typed API client for the seating endpoints. Every call waits
// for the auth token before it goes out.
type Client struct {
	BaseURL    string
	Auth       *AuthState
	HTTPClient *http.Client
}

func New(baseURL string, auth *AuthState) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Auth:       auth,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends one authenticated JSON request and decodes the envelope. out is
// populated from the body even on {success:false}, so callers can inspect
// partial results alongside the returned *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.Auth.Token(ctx)
	if err != nil {
		return fmt.Errorf("waiting for auth: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}

// GetTables fetches the canonical seating state of an event.
func (c *Client) GetTables(ctx context.Context, eventID string) (*models.TablesResponse, error) {
	var resp models.TablesResponse
	if err := c.do(ctx, http.MethodGet, "/tables?eventId="+eventID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateTables destructively regenerates an event's table set.
func (c *Client) GenerateTables(ctx context.Context, req models.GenerateTablesRequest) ([]models.Table, error) {
	var resp models.GenerateTablesResponse
	if err := c.do(ctx, http.MethodPost, "/tables", req, &resp); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

// BatchAssign sends a change list through the batch endpoint. On partial
// failure the response is returned alongside the *APIError so the caller
// can see how many operations went through.
func (c *Client) BatchAssign(ctx context.Context, changes []models.GuestChange) (*models.BatchAssignResponse, error) {
	var resp models.BatchAssignResponse
	err := c.do(ctx, http.MethodPost, "/assignments/batch", models.BatchAssignRequest{GuestChanges: changes}, &resp)
	if err != nil {
		return &resp, err
	}
	return &resp, nil
}
