// Package activity defines the transaction records served by the activity
// API together with the ordering and de-duplication rules every feed
// collection maintains.
package activity

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/gabapcia/blockfeed/internal/pkg/types"
)

// Arg is a decoded function or event argument. Value keeps whatever shape the
// decoder produced: strings for addresses, bytes and big integers, booleans,
// numbers or nested arrays.
type Arg struct {
	Name         string `json:"name"`
	InternalType string `json:"internalType,omitempty"`
	Type         string `json:"type,omitempty"`
	Value        any    `json:"value"`
	Indexed      bool   `json:"indexed,omitempty"`
}

// String returns Value when it is a string.
func (a Arg) String() (string, bool) {
	s, ok := a.Value.(string)
	return s, ok
}

// Strings flattens Value into a list of strings. A single string yields a
// one-element list; arrays keep only their string members.
func (a Arg) Strings() []string {
	switch v := a.Value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Log is an emitted event, decoded when the API recognised its ABI.
type Log struct {
	Address   string   `json:"address"`
	Topics    []string `json:"topics"`
	Data      string   `json:"data"`
	EventName string   `json:"eventName,omitempty"`
	Args      []Arg    `json:"args,omitempty"`
}

// Arg returns the argument called name.
func (l Log) Arg(name string) (Arg, bool) {
	return findArg(l.Args, name)
}

// Transaction is immutable once fetched. TransactionHash is its identity.
type Transaction struct {
	BlockHash        string       `json:"blockHash"`
	BlockNumber      types.Uint64 `json:"blockNumber"`
	BlockTimestamp   int64        `json:"blockTimestamp"`
	TransactionIndex int          `json:"transactionIndex"`
	TransactionHash  string       `json:"transactionHash"`
	Status           int          `json:"status"`
	GasUsed          types.BigInt `json:"gasUsed"`
	GasPrice         types.BigInt `json:"gasPrice"`
	From             string       `json:"from"`
	To               string       `json:"to"`
	Value            types.BigInt `json:"value"`
	Input            string       `json:"input"`

	IsDecoded    bool   `json:"isDecoded,omitempty"`
	ResultType   string `json:"resultType,omitempty"`
	FunctionName string `json:"functionName,omitempty"`
	Sig          string `json:"sig,omitempty"`
	Decoder      string `json:"__decoder,omitempty"`
	Standard     string `json:"standard,omitempty"`
	Phase        string `json:"phase,omitempty"`
	Args         []Arg  `json:"args,omitempty"`
	Logs         []Log  `json:"logs"`

	// Batched or internal calls wrapped by this transaction.
	Children []Transaction `json:"children,omitempty"`
	Wrappers []Transaction `json:"wrappers,omitempty"`
}

// UnmarshalJSON normalises a decoder result. Numeric fields may arrive as
// numbers or strings, status may be "success"/"reverted", the hash may be
// under "hash", named arguments are appended to Args when missing there, and
// Children prefers wrappers. A missing status means success.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	var raw struct {
		plain
		BlockTimestamp   types.Uint64    `json:"blockTimestamp"`
		TransactionIndex types.Uint64    `json:"transactionIndex"`
		Status           json.RawMessage `json:"status"`
		Hash             string          `json:"hash"`
		NamedArgs        map[string]Arg  `json:"namedArgs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Transaction(raw.plain)
	t.BlockTimestamp = int64(raw.BlockTimestamp)
	t.TransactionIndex = int(raw.TransactionIndex)
	t.Status = parseStatus(raw.Status)

	if t.TransactionHash == "" {
		t.TransactionHash = raw.Hash
	}

	for _, name := range slices.Sorted(maps.Keys(raw.NamedArgs)) {
		if _, ok := findArg(t.Args, name); ok {
			continue
		}
		arg := raw.NamedArgs[name]
		arg.Name = name
		t.Args = append(t.Args, arg)
	}
	for i := range t.Args {
		if t.Args[i].InternalType == "" {
			t.Args[i].InternalType = t.Args[i].Type
		}
	}

	if t.Wrappers != nil {
		t.Children = t.Wrappers
	}

	return nil
}

func parseStatus(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 1
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		if s == "success" {
			return 1
		}
		// Suffixed big integers arrive as numeric strings.
		if v, err := types.ParseUint64(s); err == nil {
			return int(v)
		}
		return 0
	}

	var v types.Uint64
	if err := v.UnmarshalJSON(raw); err != nil {
		return 0
	}
	return int(v)
}

// Arg returns the decoded function argument called name.
func (t Transaction) Arg(name string) (Arg, bool) {
	return findArg(t.Args, name)
}

// Key is the case-normalised transaction hash used for de-duplication.
func (t Transaction) Key() string {
	return strings.ToLower(t.TransactionHash)
}

func findArg(args []Arg, name string) (Arg, bool) {
	for _, arg := range args {
		if arg.Name == name {
			return arg, true
		}
	}
	return Arg{}, false
}

// Pagination is the cursor returned with each page. NextToBlock is the
// exclusive upper bound of the next older page, nil when there is none.
type Pagination struct {
	NextToBlock *types.Uint64 `json:"nextToBlock"`
	HasMore     bool          `json:"hasMore"`
}

// Page is one response of the activity endpoint.
type Page struct {
	Data       []Transaction `json:"data"`
	TotalCount *int          `json:"totalCount,omitempty"`
	Pagination Pagination    `json:"pagination"`
}

// Query selects a page. An empty Address requests the chain-wide feed. Zero
// block bounds are omitted.
type Query struct {
	ChainID   int    `json:"chainId" validate:"required,gt=0"`
	Address   string `json:"address,omitempty" validate:"omitempty,evm_address"`
	ToBlock   uint64 `json:"toBlock,omitempty"`
	FromBlock uint64 `json:"fromBlock,omitempty"`
}
