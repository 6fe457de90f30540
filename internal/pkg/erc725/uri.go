package erc725

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrMalformedURI is returned when a stored URI cannot be decoded.
var ErrMalformedURI = errors.New("malformed uri")

// Hash functions declared in VerifiableURI and JSONURL values.
var (
	HashKeccak256UTF8  = [4]byte{0x6f, 0x35, 0x7c, 0x6a} // keccak256(utf8)
	HashKeccak256Bytes = [4]byte{0x80, 0x19, 0xf9, 0xb1} // keccak256(bytes)
)

// VerifiableURI is a decoded URI value together with the content hash the
// document is expected to match. Hash is empty for raw URLs.
type VerifiableURI struct {
	HashFunction [4]byte
	Hash         []byte
	URL          string
}

const (
	verifiableURITag    = 0x0000
	verifiableURIHeader = 2 + 4 + 2 // tag, hash function, hash length
	jsonURLHeader       = 4 + 32    // hash function, keccak256 hash
)

// DecodeURI interprets value as one of, in order:
//
//   - VerifiableURI: 0x0000 | hash function (4) | hash length (2) | hash | url
//   - legacy JSONURL: hash function (4) | hash (32) | url
//   - a bare UTF-8 URL
func DecodeURI(value []byte) (VerifiableURI, error) {
	if len(value) == 0 {
		return VerifiableURI{}, ErrEmptyValue
	}

	var out VerifiableURI
	switch {
	case len(value) >= verifiableURIHeader && binary.BigEndian.Uint16(value[:2]) == verifiableURITag:
		copy(out.HashFunction[:], value[2:6])
		hashLen := int(binary.BigEndian.Uint16(value[6:8]))
		if len(value) < verifiableURIHeader+hashLen {
			return VerifiableURI{}, ErrMalformedURI
		}
		out.Hash = value[verifiableURIHeader : verifiableURIHeader+hashLen]
		out.URL = string(value[verifiableURIHeader+hashLen:])

	case len(value) > jsonURLHeader && isKnownHashFunction(value[:4]):
		copy(out.HashFunction[:], value[:4])
		out.Hash = value[4:jsonURLHeader]
		out.URL = string(value[jsonURLHeader:])

	default:
		out.URL = string(value)
	}

	out.URL = strings.TrimRight(strings.TrimSpace(out.URL), "\x00")
	if out.URL == "" || !utf8.ValidString(out.URL) {
		return VerifiableURI{}, ErrMalformedURI
	}

	return out, nil
}

func isKnownHashFunction(b []byte) bool {
	return bytes.Equal(b, HashKeccak256UTF8[:]) || bytes.Equal(b, HashKeccak256Bytes[:])
}

const jsonDataURLPrefix = "data:application/json;base64,"

// InlineJSON returns the embedded document of a base64 JSON data URL.
func InlineJSON(url string) ([]byte, bool) {
	if !strings.HasPrefix(url, jsonDataURLPrefix) {
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(url[len(jsonDataURLPrefix):])
	if err != nil {
		return nil, false
	}
	return data, true
}
