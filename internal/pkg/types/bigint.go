package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// BigInt is an arbitrary-precision unsigned integer (up to 256 bits, the EVM
// word size) carried as a decimal string on the wire. Parsing and printing are
// exact; the zero value is 0.
type BigInt struct {
	v uint256.Int
}

// NewBigInt returns a BigInt holding n.
func NewBigInt(n uint64) BigInt {
	var b BigInt
	b.v.SetUint64(n)
	return b
}

// ParseBigInt parses a decimal or 0x-prefixed hexadecimal string. An empty
// string parses as zero.
func ParseBigInt(s string) (BigInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BigInt{}, nil
	}

	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		// uint256 rejects leading zeros, which padded ABI words always carry.
		digits := strings.TrimLeft(s[2:], "0")
		switch {
		case s[2:] == "":
			err = fmt.Errorf("empty hex string")
		case digits == "":
			v = new(uint256.Int)
		default:
			v, err = uint256.FromHex("0x" + digits)
		}
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return BigInt{}, fmt.Errorf("invalid big integer %q: %w", s, err)
	}

	return BigInt{v: *v}, nil
}

// MustParseBigInt is like ParseBigInt but panics on error. Intended for constants and tests.
func MustParseBigInt(s string) BigInt {
	b, err := ParseBigInt(s)
	if err != nil {
		panic(err)
	}
	return b
}

// IsZero reports whether the value is zero.
func (b BigInt) IsZero() bool {
	return b.v.IsZero()
}

// Cmp compares b and other and returns -1, 0 or +1.
func (b BigInt) Cmp(other BigInt) int {
	return b.v.Cmp(&other.v)
}

// Uint256 returns a copy of the underlying value.
func (b BigInt) Uint256() *uint256.Int {
	return new(uint256.Int).Set(&b.v)
}

// String returns the decimal representation.
func (b BigInt) String() string {
	return b.v.Dec()
}

// MarshalJSON encodes the value as a quoted decimal string.
func (b BigInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.v.Dec())
}

// UnmarshalJSON accepts null, quoted decimal or hex strings and bare JSON numbers.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = BigInt{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	v, err := ParseBigInt(raw)
	if err != nil {
		return err
	}
	*b = v
	return nil
}
