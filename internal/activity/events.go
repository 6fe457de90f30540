package activity

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Event topics (topic0) used to recognise logs the API did not decode.
var (
	FollowEvent              = crypto.Keccak256Hash([]byte("Follow(address,address)"))
	UnfollowEvent            = crypto.Keccak256Hash([]byte("Unfollow(address,address)"))
	LSP7TransferEvent        = crypto.Keccak256Hash([]byte("Transfer(address,address,address,uint256,bool,bytes)"))
	LSP8TransferEvent        = crypto.Keccak256Hash([]byte("Transfer(address,address,address,bytes32,bool,bytes)"))
	ExecutedEvent            = crypto.Keccak256Hash([]byte("Executed(uint256,address,uint256,bytes4)"))
	PermissionsVerifiedEvent = crypto.Keccak256Hash([]byte("PermissionsVerified(address,uint256,bytes4)"))
	DataChangedEvent         = crypto.Keccak256Hash([]byte("DataChanged(bytes32,bytes)"))
	UniversalReceiverEvent   = crypto.Keccak256Hash([]byte("UniversalReceiver(address,uint256,bytes32,bytes,bytes)"))
)

// LSP26FollowTypeID is the UniversalReceiver type id notifying a followed profile.
var LSP26FollowTypeID = common.HexToHash("0x71e02f9f05bcd5816ec4f3134aa2e5a916669537ec6c77fe66ea595fabc2d51a")

// Well-known contracts on LUKSO mainnet.
var (
	LSP26FollowerRegistry    = common.HexToAddress("0xf01103E5a9909Fc0DBe8166dA7085e0285daDDcA")
	LikesToken               = common.HexToAddress("0x403bfd53617555295347e0f7725cfda480ab801e")
	ForeverMomentsCollection = common.HexToAddress("0xef54710b5a78b4926104a65594539521eb440d37")
)

// CreateMomentSelector is the selector of the moment-minting call on the
// Forever Moments collection.
const CreateMomentSelector = "0x74ee4f68"

// ZeroAddress is the "from" of a mint.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Topic0 returns the first topic of the log, if any.
func (l Log) Topic0() (common.Hash, bool) {
	if len(l.Topics) == 0 {
		return common.Hash{}, false
	}
	return common.HexToHash(l.Topics[0]), true
}

// Is reports whether the log's topic0 is event.
func (l Log) Is(event common.Hash) bool {
	topic, ok := l.Topic0()
	return ok && topic == event
}

// FindLogByEvent returns the first log whose topic0 is event.
func FindLogByEvent(logs []Log, event common.Hash) (Log, bool) {
	for _, l := range logs {
		if l.Is(event) {
			return l, true
		}
	}
	return Log{}, false
}

// FindAllLogsByEvent returns every log whose topic0 is event.
func FindAllLogsByEvent(logs []Log, event common.Hash) []Log {
	var out []Log
	for _, l := range logs {
		if l.Is(event) {
			out = append(out, l)
		}
	}
	return out
}

// DecodeAddressPair reads two non-indexed addresses (two 32-byte words) from
// log data, as emitted by Follow and Unfollow.
func DecodeAddressPair(data string) (common.Address, common.Address, bool) {
	if len(data) < 130 || !strings.HasPrefix(data, "0x") {
		return common.Address{}, common.Address{}, false
	}

	first, second := data[26:66], data[90:130]
	if !common.IsHexAddress(first) || !common.IsHexAddress(second) {
		return common.Address{}, common.Address{}, false
	}

	return common.HexToAddress(first), common.HexToAddress(second), true
}

// SameAddress compares two hex addresses case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}
