// Package api is the single point of outbound communication with the Nomad
// Tales backend. Every request reads the credential store at call time and
// attaches the token as a bearer authorization header, so callers never
// handle credentials and rotation takes effect on the next call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nomad-tales/nomadtales/internal/credential"
	"github.com/nomad-tales/nomadtales/internal/logging"
)

const defaultTimeout = 12 * time.Second

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	creds   credential.Source
	log     logging.Logger
}

// New builds a client for the backend at baseURL. timeout bounds each JSON
// call; zero means the default.
func New(baseURL string, timeout time.Duration, creds credential.Source, log logging.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	// No transport-level timeout: each call carries its own deadline via
	// context, and uploads get a longer one than JSON calls.
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		creds:   creds,
		log:     log.With("component", "api"),
	}
}

// do performs one JSON request/response round trip. body is marshalled when
// non-nil; the response body is decoded into out when out is non-nil and the
// status is a success. Failures are mapped to the package sentinel errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return mapStatus(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// authorize attaches the bearer credential, if one is stored.
func (c *Client) authorize(req *http.Request) {
	if token, ok := c.creds.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// mapStatus converts a non-2xx response into a sentinel error, carrying the
// backend's error message when one is present in the body.
func mapStatus(resp *http.Response) error {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	msg := envelope.Error.Message
	if msg == "" {
		msg = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}
}
