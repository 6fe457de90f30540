// Package graphql provides a minimal GraphQL-over-HTTP client. Queries are sent
// as POST requests carrying the query document and its variables; the "errors"
// array of a response is turned into a Go error.
package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonapi"
)

// ErrQueryFailed is returned when the server reports GraphQL errors.
var ErrQueryFailed = errors.New("graphql query failed")

// response is the standard GraphQL response envelope.
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Err joins every GraphQL error message into a single error wrapping ErrQueryFailed.
func (r response) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}

	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return fmt.Errorf("%w: %s", ErrQueryFailed, strings.Join(msgs, "; "))
}

// Client executes GraphQL queries.
type Client interface {
	// Query runs query with the given variables and decodes the "data" member into out.
	Query(ctx context.Context, query string, variables map[string]any, out any) error
}

// client is the default implementation of the Client interface.
type client struct {
	conn jsonapi.Client // JSON transport rooted at the GraphQL endpoint
}

// Compile-time assertion that client implements the Client interface.
var _ Client = (*client)(nil)

// NewClient creates a Client that posts to the endpoint configured on conn.
func NewClient(conn jsonapi.Client) *client {
	return &client{conn: conn}
}

// Query implements Client.
func (c *client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	var res response
	err := c.conn.Post(ctx, "", map[string]any{
		"query":     query,
		"variables": variables,
	}, &res)
	if err != nil {
		return err
	}

	if err := res.Err(); err != nil {
		return err
	}

	if out == nil || len(res.Data) == 0 {
		return nil
	}
	return json.Unmarshal(res.Data, out)
}
