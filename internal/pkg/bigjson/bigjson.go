// Package bigjson handles the upstream convention of encoding arbitrarily large
// integers as decimal-digit strings suffixed with "n" (for example "12345n").
//
// Responses are decoded into a generic tree with json.Number so that no value
// takes a floating-point detour, the marker is stripped recursively, and the
// cleaned tree is decoded into the caller's typed value.
package bigjson

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
)

// bigIntPattern matches a decimal digit string carrying the "n" marker.
var bigIntPattern = regexp.MustCompile(`^\d+n$`)

// StripSuffix walks v and removes the "n" marker from every string made only
// of digits followed by "n". Maps and slices are rewritten in place and
// returned; any other value is returned unchanged.
func StripSuffix(v any) any {
	switch t := v.(type) {
	case string:
		if bigIntPattern.MatchString(t) {
			return t[:len(t)-1]
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = StripSuffix(item)
		}
		return t
	case map[string]any:
		for k, item := range t {
			t[k] = StripSuffix(item)
		}
		return t
	default:
		return v
	}
}

// Decode reads a JSON document from r, strips the big-integer marker and
// decodes the result into out.
func Decode(r io.Reader, out any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return err
	}

	cleaned, err := json.Marshal(StripSuffix(tree))
	if err != nil {
		return err
	}

	return json.Unmarshal(cleaned, out)
}

// Unmarshal is the byte-slice counterpart of Decode.
func Unmarshal(data []byte, out any) error {
	return Decode(bytes.NewReader(data), out)
}
