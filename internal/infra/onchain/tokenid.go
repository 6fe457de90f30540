package onchain

import (
	"context"
	"sync"

	"github.com/gabapcia/blockfeed/internal/identity"
	"github.com/gabapcia/blockfeed/internal/pkg/erc725"
	"github.com/gabapcia/blockfeed/internal/tokenid"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// FormatReader reads and caches the LSP8TokenIdFormat of collections.
type FormatReader struct {
	r *reader

	mu    sync.Mutex
	cache map[common.Address]tokenid.Format
}

// NewFormatReader creates a FormatReader on top of caller.
func NewFormatReader(caller Caller) *FormatReader {
	return &FormatReader{
		r:     &reader{caller: caller},
		cache: make(map[common.Address]tokenid.Format),
	}
}

// TokenIDFormat returns the declared token id format of collection. Missing
// keys yield identity.ErrNoData; callers usually fall back to auto-detection.
// Only successful reads are cached.
func (f *FormatReader) TokenIDFormat(ctx context.Context, collection common.Address) (tokenid.Format, error) {
	f.mu.Lock()
	cached, ok := f.cache[collection]
	f.mu.Unlock()
	if ok {
		return cached, nil
	}

	value, err := f.r.getData(ctx, collection, erc725.LSP8TokenIdFormatKey)
	if err != nil {
		return 0, err
	}
	if len(value) > 32 {
		return 0, identity.ErrNoData
	}

	format := tokenid.Format(new(uint256.Int).SetBytes(value).Uint64())

	f.mu.Lock()
	f.cache[collection] = format
	f.mu.Unlock()

	return format, nil
}

// DecodeTokenID renders tokenID using the format declared by collection,
// auto-detecting when the collection declares none.
func (f *FormatReader) DecodeTokenID(ctx context.Context, collection common.Address, tokenID string) tokenid.Decoded {
	format, err := f.TokenIDFormat(ctx, collection)
	if err != nil {
		return tokenid.AutoDecode(tokenID)
	}
	return tokenid.Decode(tokenID, format)
}
