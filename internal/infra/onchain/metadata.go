package onchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gabapcia/blockfeed/internal/identity"
	"github.com/gabapcia/blockfeed/internal/pkg/erc725"
	"github.com/gabapcia/blockfeed/internal/pkg/ipfs"
	"github.com/gabapcia/blockfeed/internal/pkg/resilience/retry"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonapi"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonrpc"

	"github.com/ethereum/go-ethereum/common"
)

// reader reads data keys from contracts and fetches the documents they point at.
type reader struct {
	caller  Caller
	docs    jsonapi.Client
	retry   retry.Retry
	gateway string
}

// noData marks err as "nothing to read here". Reverts (EOAs, contracts
// without ERC725Y) and empty values are expected answers, not failures.
func noData(err error) error {
	if errors.Is(err, erc725.ErrEmptyValue) || errors.Is(err, jsonrpc.ErrProviderReturnedError) {
		return errors.Join(identity.ErrNoData, err)
	}
	return err
}

// getData reads key from the ERC725Y store of contract.
func (r *reader) getData(ctx context.Context, contract common.Address, key common.Hash) ([]byte, error) {
	calldata, err := erc725.GetDataCalldata(key)
	if err != nil {
		return nil, err
	}

	return r.call(ctx, contract, calldata)
}

// getDataForTokenID reads key from the token-scoped store of an LSP8 collection.
func (r *reader) getDataForTokenID(ctx context.Context, collection common.Address, tokenID, key common.Hash) ([]byte, error) {
	calldata, err := erc725.GetDataForTokenIdCalldata(tokenID, key)
	if err != nil {
		return nil, err
	}

	return r.call(ctx, collection, calldata)
}

func (r *reader) call(ctx context.Context, to common.Address, calldata string) ([]byte, error) {
	result, err := r.caller.Call(ctx, to, calldata)
	if err != nil {
		return nil, noData(err)
	}

	value, err := erc725.DecodeBytesResult(result)
	if err != nil {
		return nil, noData(err)
	}

	return value, nil
}

// getString reads key as a UTF-8 string. Failures yield "".
func (r *reader) getString(ctx context.Context, contract common.Address, key common.Hash) string {
	value, err := r.getData(ctx, contract, key)
	if err != nil || !utf8.Valid(value) {
		return ""
	}
	return strings.TrimRight(string(value), "\x00")
}

// fetchDocument follows the URI stored in value and parses the metadata
// document it points at. Gateway failures are retried; 4xx answers and
// malformed documents are not.
func (r *reader) fetchDocument(ctx context.Context, value []byte) (erc725.Document, error) {
	uri, err := erc725.DecodeURI(value)
	if err != nil {
		return erc725.Document{}, errors.Join(identity.ErrNoData, err)
	}

	if data, ok := erc725.InlineJSON(uri.URL); ok {
		return erc725.ParseDocument(data)
	}

	url := ipfs.Resolve(uri.URL, r.gateway)

	var doc erc725.Document
	err = r.retry.Execute(ctx, func() error {
		var raw json.RawMessage
		if err := r.docs.Get(ctx, url, &raw); err != nil {
			if jsonapi.IsClientError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		}

		parsed, err := erc725.ParseDocument(raw)
		if err != nil {
			return retry.Unrecoverable(err)
		}

		doc = parsed
		return nil
	})
	if err != nil {
		return erc725.Document{}, fmt.Errorf("failed to fetch metadata %s: %w", url, err)
	}

	return doc, nil
}

// toImages converts document images, rewriting ipfs:// URLs.
func (r *reader) toImages(images []erc725.Image) []identity.Image {
	var out []identity.Image
	for _, img := range images {
		if img.URL == "" {
			continue
		}
		out = append(out, identity.Image{
			Width:  img.Width,
			Height: img.Height,
			Src:    ipfs.Resolve(img.URL, r.gateway),
		})
	}
	return out
}

// toIdentity maps a metadata document onto an identity patch.
func (r *reader) toIdentity(address string, doc erc725.Document) identity.Identity {
	id := identity.Identity{Address: address}

	if p := doc.LSP3Profile; p != nil {
		id.Name = p.Name
		id.Description = p.Description
		id.Tags = p.Tags
		id.ProfileImages = r.toImages(p.ProfileImage)
		id.BackgroundImages = r.toImages(p.BackgroundImage)
	}

	if m := doc.LSP4Metadata; m != nil {
		id.Name = m.Name
		id.Description = m.Description
		id.Icons = r.toImages(m.Icon)

		// One entry per image set: the first usable size.
		var images []erc725.Image
		for _, set := range m.Images {
			if img, ok := erc725.FirstImage(set); ok {
				images = append(images, img)
			}
		}
		id.Images = r.toImages(images)
	}

	return id
}
