// Package moments implements an identity.Tier backed by the Forever Moments
// metadata API, a REST service describing moment tokens by address.
package moments

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gabapcia/blockfeed/internal/identity"
	"github.com/gabapcia/blockfeed/internal/pkg/ipfs"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonapi"
)

// TierName identifies the moments tier in configuration and logs.
const TierName = "moments"

// momentResponse is the answer of GET /moments/{address}.
type momentResponse struct {
	Title       string `json:"title"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageURL    string `json:"imageUrl"`
}

func (m momentResponse) toIdentity(address, gateway string) (identity.Identity, bool) {
	name := m.Title
	if name == "" {
		name = m.Name
	}

	image := m.Image
	if image == "" {
		image = m.ImageURL
	}

	id := identity.Identity{
		Address:     address,
		Name:        name,
		Description: m.Description,
	}
	if image != "" {
		id.Images = []identity.Image{{Src: ipfs.Resolve(image, gateway)}}
	}

	return id, name != "" || m.Description != "" || image != ""
}

// tier queries the metadata API through a JSON client rooted at its base URL.
type tier struct {
	conn    jsonapi.Client
	gateway string
}

var _ identity.Tier = (*tier)(nil)

// New creates the moments tier. Image URLs using the ipfs:// scheme are
// rewritten through gateway; an empty gateway selects ipfs.DefaultGateway.
func New(conn jsonapi.Client, gateway string) *tier {
	return &tier{conn: conn, gateway: gateway}
}

// Name implements identity.Tier.
func (t *tier) Name() string { return TierName }

// Resolve implements identity.Tier. Unknown addresses (404) and empty
// documents are reported as identity.ErrNoData.
func (t *tier) Resolve(ctx context.Context, _ int, address string) (identity.Identity, error) {
	addr := identity.Normalize(address)

	var res momentResponse
	if err := t.conn.Get(ctx, "/moments/"+url.PathEscape(addr), &res); err != nil {
		if jsonapi.IsStatus(err, http.StatusNotFound) {
			return identity.Identity{}, errors.Join(identity.ErrNoData, err)
		}
		return identity.Identity{}, err
	}

	id, ok := res.toIdentity(addr, t.gateway)
	if !ok {
		return identity.Identity{}, identity.ErrNoData
	}

	return id, nil
}
