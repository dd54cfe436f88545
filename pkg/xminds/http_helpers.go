package xminds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aussiebroadwan/xminds/pkg/idx"
)

// url builds a complete URL by appending the path to the host.
func (c *Client) url(path string) string {
	return c.host + path
}

// send performs one HTTP request against the API. A non-2xx response is
// returned as a classified *Error; a request that got no response at all is
// returned as a *ConnectionError. On success the JSON body, if any, is decoded
// into out. A zero timeout uses the client's default.
func (c *Client) send(
	ctx context.Context,
	method, path string,
	body any,
	timeout time.Duration,
	out any,
) error {
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &ConnectionError{Method: method, URL: c.url(path), Err: err}
		}
	}

	var reader io.Reader
	if body != nil && method != http.MethodGet {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", idx.New().String())
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.creds.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{Method: method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	// Read body once for both error parsing and success decoding
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{Method: method, URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp, bodyBytes)
	}

	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
