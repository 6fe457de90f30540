package erc725

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrEmptyValue is returned when a key holds no data.
var ErrEmptyValue = errors.New("empty value")

var (
	bytesType   = mustType("bytes")
	bytes32Type = mustType("bytes32")

	bytesArgs       = abi.Arguments{{Type: bytesType}}
	getDataArgs     = abi.Arguments{{Type: bytes32Type}}
	tokenIdDataArgs = abi.Arguments{{Type: bytes32Type}, {Type: bytes32Type}}
)

func mustType(name string) abi.Type {
	t, err := abi.NewType(name, "", nil)
	if err != nil {
		panic(err)
	}
	return t
}

// GetDataCalldata returns the hex calldata for getData(key).
func GetDataCalldata(key common.Hash) (string, error) {
	packed, err := getDataArgs.Pack([32]byte(key))
	if err != nil {
		return "", fmt.Errorf("failed to pack getData arguments: %w", err)
	}

	return hexutil.Encode(append(GetDataSelector[:], packed...)), nil
}

// GetDataForTokenIdCalldata returns the hex calldata for getDataForTokenId(tokenID, key).
func GetDataForTokenIdCalldata(tokenID, key common.Hash) (string, error) {
	packed, err := tokenIdDataArgs.Pack([32]byte(tokenID), [32]byte(key))
	if err != nil {
		return "", fmt.Errorf("failed to pack getDataForTokenId arguments: %w", err)
	}

	return hexutil.Encode(append(GetDataForTokenIdSelector[:], packed...)), nil
}

// DecodeBytesResult unpacks the ABI-encoded `bytes` returned by getData.
// An empty call result or an empty byte string yields ErrEmptyValue.
func DecodeBytesResult(result string) ([]byte, error) {
	raw, err := hexutil.Decode(result)
	if err != nil {
		return nil, fmt.Errorf("invalid call result: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyValue
	}

	values, err := bytesArgs.Unpack(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack bytes: %w", err)
	}

	value, ok := values[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected abi value %T", values[0])
	}
	if len(value) == 0 {
		return nil, ErrEmptyValue
	}

	return value, nil
}
