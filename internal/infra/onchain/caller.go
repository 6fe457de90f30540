// Package onchain implements identity tiers that read ERC725Y metadata
// straight from contracts through eth_call, the last resort when no indexer
// knows the address.
package onchain

import (
	"context"

	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonrpc"

	"github.com/ethereum/go-ethereum/common"
)

// Caller executes read-only contract calls against the latest block.
type Caller interface {
	// Call runs eth_call with the given hex calldata and returns the hex result.
	Call(ctx context.Context, to common.Address, data string) (string, error)
}

// callRequest is the transaction object of eth_call.
type callRequest struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

// rpcCaller sends eth_call requests through a JSON-RPC connection.
type rpcCaller struct {
	conn jsonrpc.Client
}

var _ Caller = (*rpcCaller)(nil)

// NewRPCCaller creates a Caller for an EVM node reachable through conn.
func NewRPCCaller(conn jsonrpc.Client) *rpcCaller {
	return &rpcCaller{conn: conn}
}

// Call implements Caller.
func (c *rpcCaller) Call(ctx context.Context, to common.Address, data string) (string, error) {
	var result string
	err := jsonrpc.Call(ctx, c.conn, &result, "eth_call", callRequest{To: to.Hex(), Data: data}, "latest")
	return result, err
}
