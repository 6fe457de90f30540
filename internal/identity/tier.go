package identity

import (
	"context"
	"errors"
)

// ErrNoData is returned by a Tier that found nothing for an address.
var ErrNoData = errors.New("no identity data")

// BulkResolver is the primary tier: one round trip for many addresses.
type BulkResolver interface {
	// ResolveAddresses returns the identities it knows, keyed by address in
	// any casing. Unknown addresses are simply absent.
	ResolveAddresses(ctx context.Context, chainID int, addresses []string) (map[string]Identity, error)
}

// Tier is a secondary, per-address source consulted for addresses the bulk
// resolver left without a name.
type Tier interface {
	// Name identifies the tier in logs, metrics and configuration.
	Name() string

	// Resolve returns a partial identity or ErrNoData.
	Resolve(ctx context.Context, chainID int, address string) (Identity, error)
}
