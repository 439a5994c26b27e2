// Package remote is the HTTP client for the onboarding backend. Every
// payload is normalized into internal/models values here, once, so nothing
// past this package ever sees the backend's "_id or id" ambiguity or its
// list envelopes.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

// ErrUnauthorized matches any *Error caused by a 401 from the backend.
var ErrUnauthorized = errors.New("remote: unauthorized")

// Error is a failed call to the backend.
type Error struct {
	Status   int
	Endpoint string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Client talks to the onboarding backend. The zero token sends no
// Authorization header; use WithToken for authenticated calls.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of c that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends one request and returns the raw JSON body of a successful
// response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	endpoint := path
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := sonic.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request (%s): %w", endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request (%s): %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("endpoint", endpoint).Warn("remote request failed")
		return nil, &Error{Endpoint: endpoint, Message: "Network connection failed", Err: err}
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"method":   method,
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"duration": time.Since(started),
	}).Debug("remote request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Endpoint: endpoint, Message: "Failed to read response", Err: err}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil, &Error{
			Status:   resp.StatusCode,
			Endpoint: endpoint,
			Message:  fmt.Sprintf("Server error (%d): Invalid response format", resp.StatusCode),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Endpoint: endpoint, Message: failureMessage(raw, resp.StatusCode)}
	}

	return raw, nil
}

func failureMessage(raw []byte, status int) string {
	var body errorBody
	if err := sonic.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fmt.Sprintf("Request failed (%d)", status)
}

func decodeFailure(endpoint string, err error) error {
	return &Error{Status: http.StatusOK, Endpoint: endpoint, Message: "Invalid response body", Err: err}
}
