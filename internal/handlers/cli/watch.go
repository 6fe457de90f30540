package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gabapcia/blockfeed/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// watchCommand returns a CLI command that loads a feed and keeps it live:
// new transactions are revealed and printed as polling finds them, and the
// feed is reprinted on every clock tick so relative times stay accurate.
//
// Usage example:
//
//	blockfeed watch --chain 42 --address 0xABC123...
//
// The process runs until it receives an interrupt (SIGINT or SIGTERM).
func watchCommand(s Services) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Follow the activity feed of an address and print new transactions as they appear.",
		Usage:       "Loads the feed, then polls for new transactions. Terminates gracefully on Ctrl+C or termination signals.",
		Flags: []cli.Flag{
			chainFlag(),
			addressFlag(),
			typesFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Rows shown when the feed is reprinted",
				Value: 20,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctrl, chainID, err := openFeed(s, c)
			if err != nil {
				return err
			}

			if err := ctrl.Load(ctx); err != nil {
				return err
			}

			var (
				types = c.StringSlice("type")
				limit = int(c.Int("limit"))
				r     = renderer{s: s, out: c.Root().Writer}
			)

			printFeed := func(title string) {
				txs := visible(ctrl.State().Transactions, types)
				if limit > 0 && len(txs) > limit {
					txs = txs[:limit]
				}
				resolveParties(ctx, s, chainID, txs)
				r.transactions(ctx, title, txs, s.Clock.Now())
			}
			printFeed("")

			queued, err := ctrl.Start(ctx)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			ticks, unsubscribe := s.Clock.Subscribe()
			defer unsubscribe()

			for {
				select {
				case <-ctx.Done():
					return nil
				case txs, ok := <-queued:
					if !ok {
						return nil
					}

					fresh := visible(txs, types)
					ctrl.ShowNew()
					logger.Debug(ctx, "revealed new transactions", "chain.id", chainID, "feed.new_count", len(txs))

					if len(fresh) == 0 {
						continue
					}
					resolveParties(ctx, s, chainID, fresh)
					r.transactions(ctx, fmt.Sprintf("%d new transaction(s)", len(fresh)), fresh, s.Clock.Now())
				case <-ticks:
					printFeed("")
				}
			}
		},
	}
}
