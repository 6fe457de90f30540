// Package identity resolves blockchain addresses into human-readable
// identities (profile or asset names and images).
//
// Resolution is cheap-to-expensive: a bulk resolver answers batches of
// addresses collected over a short debounce window, and addresses still
// missing a name afterwards go through an ordered list of secondary Tiers.
// Every tier contributes a partial Identity that only fills fields that are
// still empty, so a later tier never erases what an earlier one found.
package identity

import (
	"slices"
	"strings"

	"github.com/gabapcia/blockfeed/internal/pkg/types"
)

// Image is one rendition of a profile image, background, icon or asset image.
type Image struct {
	Width    types.Uint64 `json:"width"`
	Height   types.Uint64 `json:"height"`
	Src      string       `json:"src"`
	Verified string       `json:"verified,omitempty"`
}

// Identity is the resolved metadata of an address. Every field is optional.
type Identity struct {
	Address          string   `json:"address"`
	GQLType          string   `json:"__gqltype,omitempty"`
	Name             string   `json:"name,omitempty"`
	FullName         string   `json:"fullName,omitempty"`
	Standard         string   `json:"standard,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Description      string   `json:"description,omitempty"`
	ProfileImages    []Image  `json:"profileImages,omitempty"`
	BackgroundImages []Image  `json:"backgroundImages,omitempty"`

	Icons           []Image `json:"icons,omitempty"`
	Images          []Image `json:"images,omitempty"`
	Decimals        *int    `json:"decimals,omitempty"`
	LSP4TokenName   string  `json:"lsp4TokenName,omitempty"`
	LSP4TokenSymbol string  `json:"lsp4TokenSymbol,omitempty"`
	LSP4TokenType   *int    `json:"lsp4TokenType,omitempty"`

	IsLSP7       *bool `json:"isLSP7,omitempty"`
	IsCollection *bool `json:"isCollection,omitempty"`
	IsUnknown    *bool `json:"isUnknown,omitempty"`

	// LikesBalance is the LIKES token balance held by the address, when known.
	LikesBalance *types.BigInt `json:"likesBalance,omitempty"`
}

// Normalize lowercases a hex address for use as a cache key.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// HasName reports whether the identity carries anything displayable as a name.
func (i Identity) HasName() bool {
	return i.Name != "" || i.LSP4TokenName != ""
}

// DisplayName picks the best available name.
func (i Identity) DisplayName() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.LSP4TokenName != "":
		return i.LSP4TokenName
	default:
		return i.FullName
	}
}

// Fill returns i with every empty field taken from patch. Fields already set
// on i are never changed.
func (i Identity) Fill(patch Identity) Identity {
	out := i

	fillString(&out.Address, patch.Address)
	fillString(&out.GQLType, patch.GQLType)
	fillString(&out.Name, patch.Name)
	fillString(&out.FullName, patch.FullName)
	fillString(&out.Standard, patch.Standard)
	fillString(&out.Description, patch.Description)
	fillString(&out.LSP4TokenName, patch.LSP4TokenName)
	fillString(&out.LSP4TokenSymbol, patch.LSP4TokenSymbol)

	fillSlice(&out.Tags, patch.Tags)
	fillSlice(&out.ProfileImages, patch.ProfileImages)
	fillSlice(&out.BackgroundImages, patch.BackgroundImages)
	fillSlice(&out.Icons, patch.Icons)
	fillSlice(&out.Images, patch.Images)

	fillPtr(&out.Decimals, patch.Decimals)
	fillPtr(&out.LSP4TokenType, patch.LSP4TokenType)
	fillPtr(&out.IsLSP7, patch.IsLSP7)
	fillPtr(&out.IsCollection, patch.IsCollection)
	fillPtr(&out.IsUnknown, patch.IsUnknown)
	fillPtr(&out.LikesBalance, patch.LikesBalance)

	return out
}

func fillString(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

func fillSlice[T any](dst *[]T, src []T) {
	if len(*dst) == 0 && len(src) > 0 {
		*dst = slices.Clone(src)
	}
}

func fillPtr[T any](dst **T, src *T) {
	if *dst == nil && src != nil {
		v := *src
		*dst = &v
	}
}

// IsEOA guesses whether the address behind id is an externally owned account
// rather than a Universal Profile. A missing identity counts as an EOA.
func IsEOA(id *Identity) bool {
	if id == nil {
		return true
	}
	if id.GQLType == "Profile" {
		return false
	}
	return len(id.ProfileImages) == 0
}
