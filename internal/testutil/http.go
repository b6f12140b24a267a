package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// HTTPTestClient wraps http.Client with test helpers
type HTTPTestClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPTestClient creates a new test HTTP client
func NewHTTPTestClient(baseURL string) *HTTPTestClient {
	return &HTTPTestClient{
		BaseURL: baseURL,
		Client:  &http.Client{},
	}
}

// POST makes a POST request with JSON body
func (c *HTTPTestClient) POST(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()

	jsonBody, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	return resp
}

// GET makes a GET request
func (c *HTTPTestClient) GET(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := c.Client.Get(c.BaseURL + path)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	return resp
}

// DecodeJSON decodes a response body into v and closes the body
func DecodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("Failed to decode JSON %q: %v", string(body), err)
	}
}
