package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Uint64 is a block number or index as found in upstream payloads, where the
// same field may arrive as a JSON number, a decimal string or a 0x-prefixed
// hexadecimal string. It always marshals as a JSON number.
type Uint64 uint64

// ParseUint64 parses a decimal or 0x-prefixed hexadecimal string.
func ParseUint64(s string) (Uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid hexadecimal value: %w", err)
		}
		return Uint64(v), nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal value: %w", err)
	}
	return Uint64(v), nil
}

// MarshalJSON encodes the value as a JSON number.
func (u Uint64) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(u), 10), nil
}

// UnmarshalJSON accepts null, JSON numbers, decimal strings and hex strings.
func (u *Uint64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseUint64(s)
		if err != nil {
			return err
		}
		*u = v
		return nil
	}

	v, err := ParseUint64(string(data))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// Hex returns the 0x-prefixed hexadecimal representation used by JSON-RPC.
func (u Uint64) Hex() string {
	return "0x" + strconv.FormatUint(uint64(u), 16)
}
