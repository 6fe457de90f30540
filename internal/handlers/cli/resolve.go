package cli

import (
	"context"
	"errors"

	"github.com/gabapcia/blockfeed/internal/pkg/validator"

	"github.com/urfave/cli/v3"
)

var ErrNoAddresses = errors.New("at least one address is required")

// resolveCommand returns a CLI command that resolves addresses into
// identities through every configured tier.
//
// Usage example:
//
//	blockfeed resolve --chain 42 0xABC123... 0xDEF456...
func resolveCommand(s Services) *cli.Command {
	return &cli.Command{
		Name:        "resolve",
		Description: "Resolve addresses into profile or asset identities.",
		Usage:       "Prints the name, standard and image of each address.",
		ArgsUsage:   "ADDRESS...",
		Flags: []cli.Flag{
			chainFlag(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			addresses := c.Args().Slice()
			if len(addresses) == 0 {
				return ErrNoAddresses
			}

			for _, address := range addresses {
				if err := validator.Var(address, "evm_address"); err != nil {
					return err
				}
			}

			s.Identities.QueueResolve(int(c.Int("chain")), addresses...)
			s.Identities.Flush(ctx)
			s.Identities.Wait()

			renderer{s: s, out: c.Root().Writer}.identities(ctx, addresses)
			return nil
		},
	}
}
