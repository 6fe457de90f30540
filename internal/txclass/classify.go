// Package txclass sorts feed transactions into the categories shown to
// people: follows, mints, transfers, metadata and permission updates, and
// so on.
package txclass

import (
	"strings"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/format"
	"github.com/gabapcia/blockfeed/internal/pkg/erc725"

	"github.com/ethereum/go-ethereum/common"
)

// Type is the category of a transaction.
type Type string

const (
	Follow              Type = "follow"
	Unfollow            Type = "unfollow"
	NFTMint             Type = "nft_mint"
	TokenMint           Type = "token_mint"
	TokenMetadataUpdate Type = "token_metadata_update"
	TokenTransfer       Type = "token_transfer"
	NFTTransfer         Type = "nft_transfer"
	ProfileUpdate       Type = "profile_update"
	PermissionChange    Type = "permission_change"
	ValueTransfer       Type = "value_transfer"
	CreateMoment        Type = "create_moment"
	ContractExecution   Type = "contract_execution"
	Unknown             Type = "unknown"
)

// Classification is the result of Classify. Color is a presentation hint.
type Classification struct {
	Type  Type   `json:"type"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var presets = map[Type]Classification{
	Follow:              {Follow, "Followed", "👤", "text-blue-500"},
	Unfollow:            {Unfollow, "Unfollowed", "👋", "text-orange-500"},
	NFTMint:             {NFTMint, "Minted NFT", "✨", "text-emerald-500"},
	TokenMint:           {TokenMint, "Minted", "✨", "text-emerald-500"},
	TokenMetadataUpdate: {TokenMetadataUpdate, "Token Metadata Update", "🪙", "text-amber-500"},
	TokenTransfer:       {TokenTransfer, "Token Transfer", "🪙", "text-yellow-500"},
	NFTTransfer:         {NFTTransfer, "NFT Transfer", "🖼️", "text-purple-500"},
	ProfileUpdate:       {ProfileUpdate, "Profile Update", "✏️", "text-green-500"},
	PermissionChange:    {PermissionChange, "Permission Change", "🔐", "text-red-500"},
	ValueTransfer:       {ValueTransfer, "LYX Transfer", "💎", "text-lukso-pink"},
	CreateMoment:        {CreateMoment, "Created Moment", "📸", "text-pink-500"},
	ContractExecution:   {ContractExecution, "Execute", "⚡", "text-indigo-500"},
}

// Of returns the preset classification of t. Unknown has no preset label.
func Of(t Type) Classification {
	if c, ok := presets[t]; ok {
		return c
	}
	return Classification{Type: Unknown, Label: format.FunctionName(""), Icon: "📄", Color: "text-gray-500"}
}

// dataKeyArgs are the argument names under which setData variants carry keys.
var dataKeyArgs = []string{"dataKey", "dataKeys", "key"}

// facts are the lowercased inputs the decision chain looks at.
type facts struct {
	fn       string
	standard string
	input    string
	hasValue bool
}

func (f facts) isLSP7() bool {
	return strings.Contains(f.standard, "lsp7") ||
		(strings.Contains(f.standard, "digitalasset") && !strings.Contains(f.standard, "identifiable"))
}

func (f facts) isLSP8() bool {
	return strings.Contains(f.standard, "lsp8") || strings.Contains(f.standard, "identifiabledigitalasset")
}

func (f facts) isTokenContract() bool {
	return strings.Contains(f.standard, "lsp7") || strings.Contains(f.standard, "digitalasset") || f.isLSP8()
}

func (f facts) isSetData() bool {
	return strings.Contains(f.fn, "setdata")
}

// Classify assigns tx to a category. The first matching rule wins:
//
//  1. follow or unfollow (LSP26 standard or function name)
//  2. mint (a Transfer from the zero address, decoded or raw)
//  3. setDataForTokenId
//  4. setData on a token contract
//  5. LSP7 or LSP8 transfer, by standard
//  6. other setData: token metadata if the LSP4Metadata key is written, else profile update
//  7. permission change (LSP6 standard, setAllowedCalls, setPermissions)
//  8. value with no or near-empty calldata
//  9. createMoment on the Forever Moments collection
//  10. execute or executeBatch
//  11. any value, else unknown labelled with the function name
func Classify(tx activity.Transaction) Classification {
	f := facts{
		fn:       strings.ToLower(tx.FunctionName),
		standard: strings.ToLower(tx.Standard),
		input:    strings.ToLower(tx.Input),
		hasValue: !tx.Value.IsZero(),
	}
	if f.input == "" {
		f.input = "0x"
	}

	if strings.Contains(f.standard, "lsp26") || strings.Contains(f.fn, "follow") {
		if strings.Contains(f.fn, "unfollow") {
			return Of(Unfollow)
		}
		return Of(Follow)
	}

	if isMint, isNFT := findMint(tx.Logs); isMint {
		if isNFT || f.isLSP8() {
			return Of(NFTMint)
		}
		return Of(TokenMint)
	}

	if strings.Contains(f.fn, "setdatafortokenid") {
		return Of(TokenMetadataUpdate)
	}

	if f.isSetData() && f.isTokenContract() {
		return Of(TokenMetadataUpdate)
	}

	if f.isLSP7() {
		return Of(TokenTransfer)
	}
	if f.isLSP8() {
		return Of(NFTTransfer)
	}

	if f.isSetData() {
		if writesKey(tx, erc725.LSP4MetadataKey) {
			return Of(TokenMetadataUpdate)
		}
		return Of(ProfileUpdate)
	}

	if strings.Contains(f.standard, "lsp6") || strings.Contains(f.fn, "setallowedcalls") || strings.Contains(f.fn, "setpermissions") {
		return Of(PermissionChange)
	}

	if f.hasValue && len(f.input) <= 10 {
		return Of(ValueTransfer)
	}

	if strings.EqualFold(tx.Sig, activity.CreateMomentSelector) && activity.SameAddress(tx.To, activity.ForeverMomentsCollection.Hex()) {
		return Of(CreateMoment)
	}

	if f.fn == "execute" || f.fn == "executebatch" {
		if f.hasValue {
			return Of(ValueTransfer)
		}
		return Of(ContractExecution)
	}

	if f.hasValue {
		return Of(ValueTransfer)
	}

	c := Of(Unknown)
	c.Label = format.FunctionName(tx.FunctionName)
	return c
}

// findMint looks for a Transfer out of the zero address. Decoded logs are
// read by argument name; undecoded ones by their LSP7 or LSP8 topics.
func findMint(logs []activity.Log) (isMint, isNFT bool) {
	for _, l := range logs {
		if l.EventName == "Transfer" {
			from, ok := l.Arg("from")
			if !ok {
				continue
			}
			if v, ok := from.String(); ok && activity.SameAddress(v, activity.ZeroAddress) {
				_, hasTokenID := l.Arg("tokenId")
				return true, hasTokenID
			}
			continue
		}

		if l.EventName != "" {
			continue
		}

		// LSP7 indexes operator, from and to; LSP8 indexes from, to and tokenId.
		switch {
		case l.Is(activity.LSP7TransferEvent) && len(l.Topics) > 2:
			if isZeroTopic(l.Topics[2]) {
				return true, false
			}
		case l.Is(activity.LSP8TransferEvent) && len(l.Topics) > 1:
			if isZeroTopic(l.Topics[1]) {
				return true, true
			}
		}
	}

	return false, false
}

func isZeroTopic(topic string) bool {
	return common.HexToHash(topic) == (common.Hash{})
}

// writesKey reports whether any data-key argument of tx holds key.
func writesKey(tx activity.Transaction, key common.Hash) bool {
	want := key.Hex()
	for _, name := range dataKeyArgs {
		arg, ok := tx.Arg(name)
		if !ok {
			continue
		}
		for _, v := range arg.Strings() {
			if strings.EqualFold(v, want) {
				return true
			}
		}
	}
	return false
}
