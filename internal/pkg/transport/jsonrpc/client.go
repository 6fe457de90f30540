// Package jsonrpc speaks JSON-RPC 2.0 over the retrying HTTP client of
// transport/http. It is used for eth_call against EVM nodes.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gabapcia/blockfeed/internal/pkg/telemetry"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrProviderReturnedError indicates that the node answered with a JSON-RPC error object.
	ErrProviderReturnedError = errors.New("provider error")

	// ErrUnexpectedStatus is returned for non-2xx HTTP answers.
	ErrUnexpectedStatus = errors.New("unexpected rpc status")
)

type request struct {
	JsonRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	JsonRPC string `json:"jsonrpc"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Result json.RawMessage `json:"result"`
}

// Err wraps ErrProviderReturnedError with the code and message of the error
// object, if any.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	return fmt.Errorf("%w: [%d] - %s", ErrProviderReturnedError, r.Error.Code, r.Error.Message)
}

// Client sends JSON-RPC requests.
type Client interface {
	// Fetch calls method with params and returns the raw result.
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

type client struct {
	providerEndpoint string
	httpClient       *retryablehttp.Client
}

var _ Client = (*client)(nil)

func (c *client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	id := uuid.NewString()

	ctx, span := telemetry.Tracer().Start(ctx, "jsonrpc.Fetch", trace.WithAttributes(
		attribute.String("rpc.system", "jsonrpc"),
		attribute.String("rpc.method", method),
		attribute.String("rpc.jsonrpc.request_id", id),
	))
	defer span.End()

	result, err := c.do(ctx, request{JsonRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return result, nil
}

func (c *client) do(ctx context.Context, r request) (json.RawMessage, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.providerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status)
	}

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}

	if err := data.Err(); err != nil {
		return nil, err
	}
	return data.Result, nil
}

// Call runs Fetch and decodes the result into out.
func Call(ctx context.Context, c Client, out any, method string, params ...any) error {
	raw, err := c.Fetch(ctx, method, params...)
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, out)
}

// NewClient returns a Client posting to providerEndpoint.
func NewClient(httpClient *retryablehttp.Client, providerEndpoint string) *client {
	return &client{
		providerEndpoint: providerEndpoint,
		httpClient:       httpClient,
	}
}
