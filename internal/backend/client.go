package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const createPath = "/api/patients"

// Client talks to the patient service's creation endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// NewClient creates a backend client for the given base URL. A nil logger
// falls back to slog.Default().
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
		timeout:    timeout,
	}
}

// CreatePatient issues a single POST to the creation endpoint. A non-2xx
// response is returned as *RequestError; the body is only ever read as text
// in that case, since error responses carry no guaranteed shape.
func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest) (*CreatedPatient, error) {
	if c.timeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal create patient body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create patient request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	latency := time.Since(start)

	if err != nil {
		c.logger.Error("patient creation request failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return nil, fmt.Errorf("patient creation request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	c.logger.Debug("patient creation response received",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(respBytes))
		if len(message) > 800 {
			message = message[:800] + "..."
		}
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: message}
	}

	var created CreatedPatient
	if err := json.Unmarshal(respBytes, &created); err != nil {
		return nil, fmt.Errorf("decode created patient: %w", err)
	}
	if created.ID == "" {
		return nil, fmt.Errorf("created patient response missing id")
	}

	return &created, nil
}
