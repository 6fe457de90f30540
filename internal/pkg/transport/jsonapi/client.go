// Package jsonapi provides a small JSON-over-HTTP client for REST style
// endpoints. Request bodies are JSON encoded, non-2xx responses become errors
// and response bodies are decoded through bigjson so that big integers
// encoded as "123n" strings arrive as plain decimal strings.
package jsonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabapcia/blockfeed/internal/pkg/bigjson"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrUnexpectedStatus is returned when the server answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("API error")

// StatusError carries the HTTP status of a non-2xx response. It unwraps to
// ErrUnexpectedStatus.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrUnexpectedStatus, e.Code, e.Text)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// IsStatus reports whether err carries one of the given HTTP status codes.
func IsStatus(err error, codes ...int) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	for _, code := range codes {
		if se.Code == code {
			return true
		}
	}
	return false
}

// IsClientError reports whether err is a 4xx response.
func IsClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500
}

// Client defines the operations offered by a JSON API client.
type Client interface {
	// Post sends body as JSON to path and decodes the response into out.
	Post(ctx context.Context, path string, body, out any) error

	// Get requests path and decodes the response into out.
	Get(ctx context.Context, path string, out any) error
}

// client is the default implementation of the Client interface.
type client struct {
	baseURL    string                // prefix joined with every request path
	httpClient *retryablehttp.Client // underlying HTTP client with retries
}

// Compile-time assertion that client implements the Client interface.
var _ Client = (*client)(nil)

// NewClient creates a Client rooted at baseURL. An empty baseURL lets callers
// pass absolute URLs as paths.
func NewClient(httpClient *retryablehttp.Client, baseURL string) *client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// url joins the base URL with path unless path is already absolute.
func (c *client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + path
}

// Post implements Client.
func (c *client) Post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// Get implements Client.
func (c *client) Get(ctx context.Context, path string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

// do executes req, maps non-2xx statuses to ErrUnexpectedStatus and decodes
// the body into out when out is non-nil.
func (c *client) do(req *retryablehttp.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return &StatusError{Code: res.StatusCode, Text: http.StatusText(res.StatusCode)}
	}

	if out == nil {
		return nil
	}

	return bigjson.Decode(res.Body, out)
}
