// Package activityapi implements feed.Source and identity.BulkResolver on top
// of the activity indexing API (POST /api/activity and POST /api/resolveAddresses).
package activityapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/feed"
	"github.com/gabapcia/blockfeed/internal/identity"
	"github.com/gabapcia/blockfeed/internal/pkg/telemetry"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonapi"
	"github.com/gabapcia/blockfeed/internal/pkg/validator"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	activityPath         = "/api/activity"
	resolveAddressesPath = "/api/resolveAddresses"
)

// ErrResolveFailed is returned when the resolve endpoint answers with success=false.
var ErrResolveFailed = errors.New("address resolution failed")

type (
	// resolveRequest is the body of POST /api/resolveAddresses.
	resolveRequest struct {
		ChainID   int      `json:"chainId" validate:"required,gt=0"`
		Addresses []string `json:"addresses" validate:"required,dive,evm_address"`
	}

	// resolveResponse is the answer of POST /api/resolveAddresses.
	resolveResponse struct {
		Success           bool                         `json:"success"`
		AddressIdentities map[string]identity.Identity `json:"addressIdentities"`
	}
)

// client talks to the activity API through a JSON transport rooted at the API base URL.
type client struct {
	conn jsonapi.Client
}

var (
	_ feed.Source           = (*client)(nil)
	_ identity.BulkResolver = (*client)(nil)
)

// NewClient creates an activity API client.
func NewClient(conn jsonapi.Client) *client {
	return &client{conn: conn}
}

// FetchActivity implements feed.Source. A non-2xx answer is returned as a
// jsonapi.StatusError ("API error: <status> <text>").
func (c *client) FetchActivity(ctx context.Context, q activity.Query) (activity.Page, error) {
	if err := validator.Validate(q); err != nil {
		return activity.Page{}, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "activityapi.FetchActivity")
	defer span.End()
	span.SetAttributes(
		attribute.Int("chain.id", q.ChainID),
		attribute.String("address", q.Address),
		attribute.Int64("to_block", int64(q.ToBlock)),
	)

	var page activity.Page
	if err := c.conn.Post(ctx, activityPath, q, &page); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return activity.Page{}, err
	}

	span.SetAttributes(attribute.Int("transactions", len(page.Data)))
	return page, nil
}

// ResolveAddresses implements identity.BulkResolver.
func (c *client) ResolveAddresses(ctx context.Context, chainID int, addresses []string) (map[string]identity.Identity, error) {
	req := resolveRequest{ChainID: chainID, Addresses: addresses}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "activityapi.ResolveAddresses")
	defer span.End()
	span.SetAttributes(attribute.Int("chain.id", chainID), attribute.Int("addresses", len(addresses)))

	var res resolveResponse
	if err := c.conn.Post(ctx, resolveAddressesPath, req, &res); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if !res.Success {
		err := fmt.Errorf("%w: chain %d", ErrResolveFailed, chainID)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	identities := make(map[string]identity.Identity, len(res.AddressIdentities))
	for addr, id := range res.AddressIdentities {
		if id.Address == "" {
			id.Address = addr
		}
		identities[addr] = id
	}

	return identities, nil
}
