package onchain

import (
	"context"
	"errors"
	"time"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/identity"
	"github.com/gabapcia/blockfeed/internal/pkg/erc725"
	"github.com/gabapcia/blockfeed/internal/pkg/resilience/retry"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonapi"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// LSP4TierName identifies the contract metadata tier.
	LSP4TierName = "lsp4"

	// CollectionTierName identifies the collection-scoped token metadata tier.
	CollectionTierName = "lsp8-collection"
)

// config holds the settings shared by both on-chain tiers.
type config struct {
	gateway     string
	retry       retry.Retry
	collections []common.Address
}

// Option configures the on-chain tiers.
type Option func(*config)

func newReader(caller Caller, docs jsonapi.Client, opts ...Option) (*reader, config) {
	cfg := config{
		retry:       retry.New(retry.WithAttempts(3), retry.WithDelay(500*time.Millisecond)),
		collections: []common.Address{activity.ForeverMomentsCollection},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &reader{
		caller:  caller,
		docs:    docs,
		retry:   cfg.retry,
		gateway: cfg.gateway,
	}, cfg
}

// lsp4Tier reads the LSP4Metadata (or LSP3Profile) document of the contract
// at the address itself, along with its LSP4 token name and symbol.
type lsp4Tier struct {
	r *reader
}

var _ identity.Tier = (*lsp4Tier)(nil)

// NewLSP4Tier creates the contract metadata tier. docs fetches the
// referenced JSON documents and must accept absolute URLs.
func NewLSP4Tier(caller Caller, docs jsonapi.Client, opts ...Option) *lsp4Tier {
	r, _ := newReader(caller, docs, opts...)
	return &lsp4Tier{r: r}
}

// Name implements identity.Tier.
func (t *lsp4Tier) Name() string { return LSP4TierName }

// Resolve implements identity.Tier.
func (t *lsp4Tier) Resolve(ctx context.Context, _ int, address string) (identity.Identity, error) {
	addr := identity.Normalize(address)
	if !common.IsHexAddress(addr) {
		return identity.Identity{}, identity.ErrNoData
	}
	contract := common.HexToAddress(addr)

	value, err := t.r.getData(ctx, contract, erc725.LSP4MetadataKey)
	if errors.Is(err, identity.ErrNoData) {
		value, err = t.r.getData(ctx, contract, erc725.LSP3ProfileKey)
	}

	id := identity.Identity{Address: addr}
	if err == nil {
		doc, docErr := t.r.fetchDocument(ctx, value)
		if docErr == nil {
			id = t.r.toIdentity(addr, doc)
		}
		err = docErr
	}

	id.LSP4TokenName = t.r.getString(ctx, contract, erc725.LSP4TokenNameKey)
	id.LSP4TokenSymbol = t.r.getString(ctx, contract, erc725.LSP4TokenSymbolKey)
	if id.Name == "" {
		id.Name = id.LSP4TokenName
	}

	if id.HasName() || len(id.Icons) > 0 || len(id.Images) > 0 || len(id.ProfileImages) > 0 {
		return id, nil
	}
	if err == nil {
		err = identity.ErrNoData
	}
	return identity.Identity{}, err
}

// collectionTier looks the address up as a token of known LSP8 collections,
// where the token id is the address left-padded to 32 bytes.
type collectionTier struct {
	r           *reader
	collections []common.Address
}

var _ identity.Tier = (*collectionTier)(nil)

// NewCollectionTier creates the collection-scoped tier. By default only the
// Forever Moments collection is consulted; see WithCollections.
func NewCollectionTier(caller Caller, docs jsonapi.Client, opts ...Option) *collectionTier {
	r, cfg := newReader(caller, docs, opts...)
	return &collectionTier{r: r, collections: cfg.collections}
}

// Name implements identity.Tier.
func (t *collectionTier) Name() string { return CollectionTierName }

// Resolve implements identity.Tier. Collections are tried in order and the
// first one holding metadata for the token wins.
func (t *collectionTier) Resolve(ctx context.Context, _ int, address string) (identity.Identity, error) {
	addr := identity.Normalize(address)
	if !common.IsHexAddress(addr) {
		return identity.Identity{}, identity.ErrNoData
	}
	tokenID := erc725.AddressTokenID(common.HexToAddress(addr))

	var errs []error
	for _, collection := range t.collections {
		value, err := t.r.getDataForTokenID(ctx, collection, tokenID, erc725.LSP4MetadataKey)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		doc, err := t.r.fetchDocument(ctx, value)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		id := t.r.toIdentity(addr, doc)
		if id.HasName() || len(id.Images) > 0 {
			return id, nil
		}
	}

	if len(errs) == 0 {
		return identity.Identity{}, identity.ErrNoData
	}
	return identity.Identity{}, errors.Join(errs...)
}

// WithGateway sets the IPFS gateway used for documents and images.
// Default: ipfs.DefaultGateway.
func WithGateway(gateway string) Option {
	return func(c *config) {
		c.gateway = gateway
	}
}

// WithRetry sets the retry policy for document fetches.
// Default: 3 attempts starting at 500ms.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithCollections sets the LSP8 collections consulted by the collection tier.
func WithCollections(collections ...common.Address) Option {
	return func(c *config) {
		c.collections = collections
	}
}
