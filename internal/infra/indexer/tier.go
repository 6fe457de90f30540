// Package indexer implements an identity.Tier backed by the LUKSO GraphQL
// indexer. One query looks the address up as a profile, as an asset, as a
// token of a collection and as a holder of the LIKES token.
package indexer

import (
	"context"
	"strings"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/identity"
	"github.com/gabapcia/blockfeed/internal/pkg/erc725"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/graphql"
	"github.com/gabapcia/blockfeed/internal/pkg/types"

	"github.com/ethereum/go-ethereum/common"
)

// TierName identifies the indexer tier in configuration and logs.
const TierName = "indexer"

const identityQuery = `query Identity($id: String!, $tokenId: String!, $likes: String!) {
  Profile(where: {id: {_eq: $id}}, limit: 1) {
    name
    fullName
    description
    tags
    standard
    profileImages { width height src verified }
    backgroundImages { width height src verified }
  }
  Asset(where: {id: {_eq: $id}}, limit: 1) {
    lsp4TokenName
    lsp4TokenSymbol
    lsp4TokenType
    decimals
    isLSP7
    isCollection
    isUnknown
    standard
    description
    icons { width height src verified }
    images { width height src verified }
  }
  Token(where: {tokenId: {_eq: $tokenId}}, limit: 1) {
    name
    lsp4TokenName
    description
    icons { width height src verified }
    images { width height src verified }
  }
  Hold(where: {profile_id: {_eq: $id}, asset_id: {_eq: $likes}}, limit: 1) {
    balance
  }
}`

type (
	profileRow struct {
		Name             string           `json:"name"`
		FullName         string           `json:"fullName"`
		Description      string           `json:"description"`
		Tags             []string         `json:"tags"`
		Standard         string           `json:"standard"`
		ProfileImages    []identity.Image `json:"profileImages"`
		BackgroundImages []identity.Image `json:"backgroundImages"`
	}

	assetRow struct {
		LSP4TokenName   string           `json:"lsp4TokenName"`
		LSP4TokenSymbol string           `json:"lsp4TokenSymbol"`
		LSP4TokenType   *int             `json:"lsp4TokenType"`
		Decimals        *int             `json:"decimals"`
		IsLSP7          *bool            `json:"isLSP7"`
		IsCollection    *bool            `json:"isCollection"`
		IsUnknown       *bool            `json:"isUnknown"`
		Standard        string           `json:"standard"`
		Description     string           `json:"description"`
		Icons           []identity.Image `json:"icons"`
		Images          []identity.Image `json:"images"`
	}

	tokenRow struct {
		Name          string           `json:"name"`
		LSP4TokenName string           `json:"lsp4TokenName"`
		Description   string           `json:"description"`
		Icons         []identity.Image `json:"icons"`
		Images        []identity.Image `json:"images"`
	}

	holdRow struct {
		Balance types.BigInt `json:"balance"`
	}

	identityResult struct {
		Profile []profileRow `json:"Profile"`
		Asset   []assetRow   `json:"Asset"`
		Token   []tokenRow   `json:"Token"`
		Hold    []holdRow    `json:"Hold"`
	}
)

// toIdentity folds the rows into one identity. Profile data wins over asset
// data, which wins over token data.
func (r identityResult) toIdentity(address string) (identity.Identity, bool) {
	id := identity.Identity{Address: address}
	found := false

	if len(r.Profile) > 0 {
		p := r.Profile[0]
		found = true
		id = id.Fill(identity.Identity{
			GQLType:          "Profile",
			Name:             p.Name,
			FullName:         p.FullName,
			Description:      p.Description,
			Tags:             p.Tags,
			Standard:         p.Standard,
			ProfileImages:    p.ProfileImages,
			BackgroundImages: p.BackgroundImages,
		})
	}

	if len(r.Asset) > 0 {
		a := r.Asset[0]
		found = true
		id = id.Fill(identity.Identity{
			GQLType:         "Asset",
			Name:            a.LSP4TokenName,
			Standard:        a.Standard,
			Description:     a.Description,
			Icons:           a.Icons,
			Images:          a.Images,
			Decimals:        a.Decimals,
			LSP4TokenName:   a.LSP4TokenName,
			LSP4TokenSymbol: a.LSP4TokenSymbol,
			LSP4TokenType:   a.LSP4TokenType,
			IsLSP7:          a.IsLSP7,
			IsCollection:    a.IsCollection,
			IsUnknown:       a.IsUnknown,
		})
	}

	if len(r.Token) > 0 {
		t := r.Token[0]
		found = true
		name := t.Name
		if name == "" {
			name = t.LSP4TokenName
		}
		id = id.Fill(identity.Identity{
			GQLType:       "Token",
			Name:          name,
			LSP4TokenName: t.LSP4TokenName,
			Description:   t.Description,
			Icons:         t.Icons,
			Images:        t.Images,
		})
	}

	if len(r.Hold) > 0 && !r.Hold[0].Balance.IsZero() {
		balance := r.Hold[0].Balance
		id.LikesBalance = &balance
	}

	return id, found
}

// tier queries the indexer through a GraphQL client.
type tier struct {
	conn  graphql.Client
	likes string
}

var _ identity.Tier = (*tier)(nil)

// New creates the indexer tier. The LIKES token balance is looked up on the
// well-known LIKES contract.
func New(conn graphql.Client) *tier {
	return &tier{
		conn:  conn,
		likes: strings.ToLower(activity.LikesToken.Hex()),
	}
}

// Name implements identity.Tier.
func (t *tier) Name() string { return TierName }

// Resolve implements identity.Tier. It returns identity.ErrNoData when the
// indexer knows nothing about the address.
func (t *tier) Resolve(ctx context.Context, _ int, address string) (identity.Identity, error) {
	id := identity.Normalize(address)
	tokenID := erc725.AddressTokenID(common.HexToAddress(id)).Hex()

	var result identityResult
	err := t.conn.Query(ctx, identityQuery, map[string]any{
		"id":      id,
		"tokenId": strings.ToLower(tokenID),
		"likes":   t.likes,
	}, &result)
	if err != nil {
		return identity.Identity{}, err
	}

	out, found := result.toIdentity(id)
	if !found {
		return identity.Identity{}, identity.ErrNoData
	}

	return out, nil
}
