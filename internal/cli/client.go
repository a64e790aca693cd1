package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken updates the client's token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Envelope is the standard response wrapper returned by every endpoint
type Envelope struct {
	Status   int             `json:"status"`
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// DecodeData unmarshals the envelope's data payload into result
func (e *Envelope) DecodeData(result any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, result); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

// DecodeMetadata unmarshals the envelope's metadata payload into result
func (e *Envelope) DecodeMetadata(result any) error {
	if len(e.Metadata) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Metadata, result); err != nil {
		return fmt.Errorf("failed to parse response metadata: %w", err)
	}
	return nil
}

// Do performs an HTTP request and decodes the response envelope
func (c *Client) Do(method, path string, body any) (*Envelope, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if envelope.Message != "" {
			return nil, fmt.Errorf("%s (HTTP %d)", envelope.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return &envelope, nil
}

// Get performs a GET request
func (c *Client) Get(path string) (*Envelope, error) {
	return c.Do(http.MethodGet, path, nil)
}

// GetJSON performs a GET request against a non-enveloped endpoint and
// decodes the raw body into result
func (c *Client) GetJSON(path string, result any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Post performs a POST request
func (c *Client) Post(path string, body any) (*Envelope, error) {
	return c.Do(http.MethodPost, path, body)
}

// Patch performs a PATCH request
func (c *Client) Patch(path string, body any) (*Envelope, error) {
	return c.Do(http.MethodPatch, path, body)
}

// Delete performs a DELETE request
func (c *Client) Delete(path string) (*Envelope, error) {
	return c.Do(http.MethodDelete, path, nil)
}
