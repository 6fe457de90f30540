// Package feed maintains the activity feed of one address (or of a whole
// chain) on top of a paged activity Source.
//
// The Controller keeps an ordered, de-duplicated transaction set and offers
// four ways of growing it:
//
//   - Load replaces the set with the newest page
//   - LoadMore appends the next older page
//   - PollNew queues transactions newer than the watermark without showing them
//   - ShowNew (and PollNow) merge the queue into the visible set
//
// When a Filter is installed, Load and LoadMore keep fetching older pages
// until enough transactions pass it, bounded by a cap on automatic fetches.
package feed

import (
	"context"
	"errors"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/pkg/types"
)

var ErrServiceAlreadyStarted = errors.New("service already started")

// Source serves activity pages.
type Source interface {
	// FetchActivity returns the page selected by q. Pages are not required
	// to be sorted.
	FetchActivity(ctx context.Context, q activity.Query) (activity.Page, error)
}

// Filter decides whether a transaction is visible. It may change between
// calls, so visibility is always recomputed from scratch.
type Filter func(activity.Transaction) bool

// Notifier is told about transactions queued by polling. Notification is
// best-effort: failures are logged and never affect the feed.
type Notifier interface {
	NotifyQueued(ctx context.Context, chainID int, address string, txs []activity.Transaction) error
}

// State is a snapshot of the controller. Slices are copies.
type State struct {
	Transactions      []activity.Transaction
	Queued            []activity.Transaction
	NewTxCount        int
	Loading           bool
	LoadingMore       bool
	Err               error
	HasMore           bool
	NextToBlock       *types.Uint64
	LatestBlockNumber *types.Uint64
}

// Controller is the activity feed of one (chain, address) pair.
type Controller interface {
	Load(ctx context.Context) error
	LoadMore(ctx context.Context) error
	PollNew(ctx context.Context)
	ShowNew()
	PollNow(ctx context.Context)

	SetFilter(f Filter)
	State() State

	// Start polls for new transactions every poll interval until ctx is
	// done or Close is called. Every batch of newly queued transactions is
	// sent on the returned channel, which is closed by Close.
	Start(ctx context.Context) (<-chan []activity.Transaction, error)
	Close()
}
