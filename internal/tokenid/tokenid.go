// Package tokenid renders LSP8 token ids. A collection declares how its
// bytes32 ids are to be read through the LSP8TokenIdFormat data key.
package tokenid

import (
	"strings"
	"unicode/utf8"

	"github.com/gabapcia/blockfeed/internal/format"
	"github.com/gabapcia/blockfeed/internal/pkg/types"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Format is the value of the LSP8TokenIdFormat data key.
type Format int

const (
	FormatNumber   Format = 0
	FormatString   Format = 1
	FormatAddress  Format = 2
	FormatUniqueID Format = 3
	FormatHash     Format = 4
)

// Kind is how a token id ended up being read.
type Kind string

const (
	KindNumber   Kind = "number"
	KindString   Kind = "string"
	KindAddress  Kind = "address"
	KindUniqueID Kind = "unique_id"
	KindHash     Kind = "hash"
	KindUnknown  Kind = "unknown"
)

// Decoded is a token id ready for display. Raw is the normalized id, or the
// embedded address for KindAddress.
type Decoded struct {
	Display string `json:"display"`
	Kind    Kind   `json:"type"`
	Raw     string `json:"raw"`
}

// smallNumber is the largest id auto-detection reads as a sequence number.
var smallNumber = types.NewBigInt(999_999)

// zeroPadding is the 12 zero bytes before an address in a bytes32.
const zeroPadding = "000000000000000000000000"

func normalize(raw string) string {
	if strings.HasPrefix(strings.ToLower(raw), "0x") {
		return raw
	}
	return "0x" + raw
}

func truncated(id string) string {
	if len(id) <= 10 {
		return id + "..."
	}
	return id[:10] + "..."
}

func shortHash(id string) string {
	if len(id) <= 14 {
		return id
	}
	return id[:10] + "..." + id[len(id)-4:]
}

// trimmedBytes drops trailing zero bytes of the hex id and decodes the rest.
func trimmedBytes(id string) ([]byte, string, error) {
	hex := id[2:]
	for strings.HasSuffix(hex, "00") {
		hex = hex[:len(hex)-2]
	}
	if hex == "" {
		return nil, "", nil
	}

	b, err := hexutil.Decode("0x" + hex)
	return b, hex, err
}

// Decode reads raw (a bytes32 hex string) according to f. Unknown formats
// fall back to AutoDecode.
func Decode(raw string, f Format) Decoded {
	if raw == "" || raw == "0x" {
		return Decoded{Display: "???", Kind: KindUnknown, Raw: raw}
	}

	id := normalize(raw)

	switch f {
	case FormatNumber:
		n, err := types.ParseBigInt(id)
		if err != nil {
			return Decoded{Display: truncated(id), Kind: KindNumber, Raw: id}
		}
		return Decoded{Display: "#" + n.String(), Kind: KindNumber, Raw: id}

	case FormatString:
		b, _, err := trimmedBytes(id)
		if err != nil {
			return Decoded{Display: truncated(id), Kind: KindString, Raw: id}
		}
		if len(b) == 0 {
			return Decoded{Display: "(empty)", Kind: KindString, Raw: id}
		}
		return Decoded{Display: strings.ToValidUTF8(string(b), string(utf8.RuneError)), Kind: KindString, Raw: id}

	case FormatAddress:
		hex := id[2:]
		if len(hex) < 64 {
			return Decoded{Display: truncated(id), Kind: KindAddress, Raw: id}
		}
		addr := "0x" + hex[24:64]
		return Decoded{Display: format.ShortenAddress(addr), Kind: KindAddress, Raw: addr}

	case FormatUniqueID:
		return Decoded{Display: shortHash(id), Kind: KindUniqueID, Raw: id}

	case FormatHash:
		return Decoded{Display: shortHash(id), Kind: KindHash, Raw: id}
	}

	return AutoDecode(id)
}

// AutoDecode guesses how to read raw: a small number, a padded address,
// printable text, a large number, or finally an opaque hash.
func AutoDecode(raw string) Decoded {
	id := normalize(raw)
	hex := id[2:]

	n, numErr := types.ParseBigInt(id)
	if numErr == nil && n.Cmp(smallNumber) <= 0 {
		return Decoded{Display: "#" + n.String(), Kind: KindNumber, Raw: id}
	}

	if len(hex) == 64 && strings.HasPrefix(hex, zeroPadding) {
		addr := "0x" + hex[24:]
		if addr != "0x0000000000000000000000000000000000000000" {
			return Decoded{Display: format.ShortenAddress(addr), Kind: KindAddress, Raw: addr}
		}
	}

	if b, trimmed, err := trimmedBytes(id); err == nil && trimmed != "" && len(trimmed) < 64 && isPrintableASCII(b) {
		return Decoded{Display: string(b), Kind: KindString, Raw: id}
	}

	if numErr == nil {
		return Decoded{Display: "#" + n.String(), Kind: KindNumber, Raw: id}
	}
	return Decoded{Display: shortHash(id), Kind: KindHash, Raw: id}
}

func isPrintableASCII(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
