// Package erc725 reads ERC725Y key/value metadata as used by LUKSO Universal
// Profiles and LSP7/LSP8 digital assets: well-known data keys, eth_call
// calldata for getData/getDataForTokenId, ABI decoding of the returned
// bytes, VerifiableURI decoding and the LSP3/LSP4 JSON documents the URIs
// point to.
package erc725

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Singleton data keys are keccak256 of the key name.
var (
	LSP3ProfileKey       = singletonKey("LSP3Profile")
	LSP4MetadataKey      = singletonKey("LSP4Metadata")
	LSP4TokenNameKey     = singletonKey("LSP4TokenName")
	LSP4TokenSymbolKey   = singletonKey("LSP4TokenSymbol")
	LSP4TokenTypeKey     = singletonKey("LSP4TokenType")
	LSP8TokenIdFormatKey = singletonKey("LSP8TokenIdFormat")
)

func singletonKey(name string) common.Hash {
	return crypto.Keccak256Hash([]byte(name))
}

// Function selectors of the ERC725Y / LSP8 read methods.
var (
	GetDataSelector           = selector("getData(bytes32)")
	GetDataForTokenIdSelector = selector("getDataForTokenId(bytes32,bytes32)")
)

func selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

// AddressTokenID left-pads a 20-byte address into a bytes32 token id, the
// layout LSP8 collections use for address-formatted token ids.
func AddressTokenID(address common.Address) common.Hash {
	return common.BytesToHash(address.Bytes())
}
