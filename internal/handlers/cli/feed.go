package cli

import (
	"context"
	"slices"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/feed"
	"github.com/gabapcia/blockfeed/internal/pkg/validator"
	"github.com/gabapcia/blockfeed/internal/txclass"

	"github.com/urfave/cli/v3"
)

// typeFilter keeps transactions whose classification is one of types.
// No types means no filtering.
func typeFilter(types []string) feed.Filter {
	if len(types) == 0 {
		return nil
	}

	return func(tx activity.Transaction) bool {
		return slices.Contains(types, string(txclass.Classify(tx).Type))
	}
}

// openFeed validates the address flag and returns a filtered controller.
func openFeed(s Services, c *cli.Command) (feed.Controller, int, error) {
	var (
		chainID = int(c.Int("chain"))
		address = c.String("address")
	)

	if err := validator.Var(address, "omitempty,evm_address"); err != nil {
		return nil, 0, err
	}

	ctrl := s.Feeds(chainID, address)
	ctrl.SetFilter(typeFilter(c.StringSlice("type")))

	return ctrl, chainID, nil
}

// visible returns the transactions of state that pass the type filter.
func visible(txs []activity.Transaction, types []string) []activity.Transaction {
	keep := typeFilter(types)
	if keep == nil {
		return txs
	}
	return slices.DeleteFunc(slices.Clone(txs), func(tx activity.Transaction) bool { return !keep(tx) })
}

// resolveParties resolves both parties of every transaction and waits for
// every tier to answer.
func resolveParties(ctx context.Context, s Services, chainID int, txs []activity.Transaction) {
	for _, tx := range txs {
		s.Identities.ResolveFromTransaction(chainID, tx.From, tx.To)
	}
	s.Identities.Flush(ctx)
	s.Identities.Wait()
}

// feedCommand returns a CLI command that prints the activity feed of an
// address, or of the whole chain when no address is given.
//
// Usage example:
//
//	blockfeed feed --chain 42 --address 0xABC123... --pages 3 --type follow
func feedCommand(s Services) *cli.Command {
	return &cli.Command{
		Name:        "feed",
		Description: "Print the activity feed of an address with classified transactions and resolved identities.",
		Usage:       "Loads the newest transactions. Use --pages to load older ones too.",
		Flags: []cli.Flag{
			chainFlag(),
			addressFlag(),
			typesFlag(),
			&cli.IntFlag{
				Name:  "pages",
				Usage: "Number of pages to load",
				Value: 1,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctrl, chainID, err := openFeed(s, c)
			if err != nil {
				return err
			}

			if err := ctrl.Load(ctx); err != nil {
				return err
			}

			for range int(c.Int("pages")) - 1 {
				if !ctrl.State().HasMore {
					break
				}
				if err := ctrl.LoadMore(ctx); err != nil {
					return err
				}
			}

			txs := visible(ctrl.State().Transactions, c.StringSlice("type"))
			resolveParties(ctx, s, chainID, txs)

			r := renderer{s: s, out: c.Root().Writer}
			r.transactions(ctx, "", txs, s.Clock.Now())
			return nil
		},
	}
}
