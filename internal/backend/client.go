// Package backend is the typed client for the store's REST backend. All
// business logic (pricing, inventory, order lifecycle, authentication) lives
// behind these endpoints; this layer only shapes requests and maps failures
// onto the domain error taxonomy.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"springjewels-storefront/internal/domain"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Logger
}

// New builds a Client for the given base URL, e.g. "http://localhost:8080".
// No request timeout is set beyond the transport defaults; callers bound
// requests through ctx.
func New(baseURL string, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		logger:  logger,
	}
}

// StatusError is a non-2xx backend response. Unwrap yields the taxonomy
// sentinel for the status code so callers can use errors.Is.
type StatusError struct {
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}

func (e *StatusError) Unwrap() error { return e.Err }

// errorBody is the backend's ErrorResponse envelope.
type errorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
		return nil
	}

	return c.decodeError(resp, method, path)
}

func (c *Client) decodeError(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &StatusError{Code: resp.StatusCode, Err: domain.ErrUnauthorized}
	case http.StatusForbidden:
		return &StatusError{Code: resp.StatusCode, Err: domain.ErrForbidden}
	case http.StatusNotFound:
		return &StatusError{Code: resp.StatusCode, Message: messageFrom(raw), Err: domain.ErrNotFound}
	case http.StatusConflict:
		return &StatusError{Code: resp.StatusCode, Message: messageFrom(raw), Err: domain.ErrConflict}
	case http.StatusBadRequest:
		// Bean validation failures come back as a bare field->message map.
		var fields map[string]string
		if err := json.Unmarshal(raw, &fields); err == nil && len(fields) > 0 {
			if _, looksEnvelope := fields["status"]; !looksEnvelope {
				return &StatusError{Code: resp.StatusCode, Err: &domain.ValidationError{Fields: fields}}
			}
		}
		return &StatusError{Code: resp.StatusCode, Message: messageFrom(raw)}
	default:
		c.logger.Printf("backend %s %s failed with %d: %s", method, path, resp.StatusCode, messageFrom(raw))
		return &StatusError{Code: resp.StatusCode, Message: messageFrom(raw)}
	}
}

func messageFrom(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
