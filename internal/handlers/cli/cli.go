package cli

import (
	"context"
	"io"
	"os"

	"github.com/gabapcia/blockfeed/internal/clock"
	"github.com/gabapcia/blockfeed/internal/feed"
	"github.com/gabapcia/blockfeed/internal/identity"
	"github.com/gabapcia/blockfeed/internal/media"
	"github.com/gabapcia/blockfeed/internal/tokenid"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v3"
)

// DefaultChainID is LUKSO mainnet.
const DefaultChainID = 42

// FeedFactory builds the feed controller of address on chainID. An empty
// address selects the chain-wide feed.
type FeedFactory func(chainID int, address string) feed.Controller

// TokenIDDecoder renders LSP8 token ids using the format declared by their
// collection.
type TokenIDDecoder interface {
	DecodeTokenID(ctx context.Context, collection common.Address, tokenID string) tokenid.Decoded
}

// Services groups what the commands run against. TokenIDs and Media are
// optional.
type Services struct {
	Feeds      FeedFactory
	Identities identity.Service
	Clock      clock.Clock
	TokenIDs   TokenIDDecoder
	Media      media.Detector
}

// Run initializes and executes the blockfeed CLI application.
//
// It registers all available commands:
//
//   - `feed`: Prints the activity feed of an address or a whole chain.
//   - `watch`: Follows the feed and prints new transactions as they appear.
//   - `resolve`: Resolves addresses into identities.
func Run(ctx context.Context, s Services, args []string) error {
	return newApp(s, os.Stdout).Run(ctx, args)
}

func newApp(s Services, out io.Writer) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "blockfeed",
		Description:           "Command-line client for blockchain activity feeds with resolved identities.",
		Usage:                 "blockfeed [command] [flags]",
		Writer:                out,
		Commands: []*cli.Command{
			feedCommand(s),
			watchCommand(s),
			resolveCommand(s),
		},
	}
}

func chainFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "chain",
		Usage: "Chain id (42 mainnet, 4201 testnet)",
		Value: DefaultChainID,
	}
}

func addressFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "address",
		Usage: "Address whose activity is shown. Omit for the chain-wide feed",
	}
}

func typesFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:  "type",
		Usage: "Only show transactions of these types (e.g. follow,nft_transfer)",
	}
}
