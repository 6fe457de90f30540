package feed

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/pkg/logger"
	"github.com/gabapcia/blockfeed/internal/pkg/telemetry"
	"github.com/gabapcia/blockfeed/internal/pkg/types"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultMinVisibleInitial = 25
	DefaultMinVisibleMore    = 10
	DefaultMaxAutoFetches    = 20
	DefaultPollInterval      = 15 * time.Second
)

type controller struct {
	mu sync.Mutex

	chainID int
	address string
	source  Source

	filter            Filter
	notifier          Notifier
	minVisibleInitial int
	minVisibleMore    int
	maxAutoFetches    int
	pollInterval      time.Duration
	metrics           *metrics

	transactions []activity.Transaction
	queued       []activity.Transaction
	newTxCount   int
	loading      bool
	loadingMore  bool
	err          error
	hasMore      bool
	nextToBlock  *types.Uint64
	latestBlock  *types.Uint64

	isStarted bool
	closeFunc func()
}

var _ Controller = (*controller)(nil)

func (c *controller) query() activity.Query {
	return activity.Query{ChainID: c.chainID, Address: c.address}
}

func (c *controller) fetch(ctx context.Context, q activity.Query, kind string) (activity.Page, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "feed.fetch", trace.WithAttributes(
		attribute.Int("chain.id", q.ChainID),
		attribute.String("feed.address", q.Address),
		attribute.String("feed.fetch_kind", kind),
		attribute.Int64("feed.to_block", int64(q.ToBlock)),
		attribute.Int64("feed.from_block", int64(q.FromBlock)),
	))
	defer span.End()

	page, err := c.source.FetchActivity(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return activity.Page{}, err
	}

	c.metrics.pageFetched(ctx, kind, len(page.Data))
	return page, nil
}

// countVisible must be called with mu held.
func (c *controller) countVisible() int {
	return activity.Count(c.transactions, c.filter)
}

// applyPage merges an older page and moves the cursor. Must be called with mu held.
func (c *controller) applyPage(page activity.Page) {
	c.transactions = activity.Merge(c.transactions, page.Data)
	c.hasMore = page.Pagination.HasMore
	c.nextToBlock = page.Pagination.NextToBlock
}

// ensureVisible fetches older pages until target transactions pass the
// filter. It stops when the source runs out, returns an empty page or the
// automatic fetch cap is reached, and does nothing without a filter.
func (c *controller) ensureVisible(ctx context.Context, target int) error {
	for fetches := 0; ; fetches++ {
		c.mu.Lock()
		if c.filter == nil ||
			c.countVisible() >= target ||
			!c.hasMore ||
			c.nextToBlock == nil ||
			fetches >= c.maxAutoFetches {
			c.mu.Unlock()
			return nil
		}
		q := c.query()
		q.ToBlock = uint64(*c.nextToBlock)
		c.mu.Unlock()

		page, err := c.fetch(ctx, q, "auto")
		if err != nil {
			return err
		}

		c.mu.Lock()
		c.applyPage(page)
		c.mu.Unlock()

		if len(page.Data) == 0 {
			return nil
		}
	}
}

func (c *controller) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Load replaces the transaction set with the newest page, then fills up to
// the initial visible minimum. The error is stored in the state and returned;
// previously loaded transactions survive a failed load.
func (c *controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.err = nil
	c.loading = true
	q := c.query()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	page, err := c.fetch(ctx, q, "initial")
	if err != nil {
		logger.Warn(ctx, "failed to load activity", "chain.id", q.ChainID, "feed.address", q.Address, "error", err)
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	c.transactions = activity.SortAndDedupe(page.Data)
	c.hasMore = page.Pagination.HasMore
	c.nextToBlock = page.Pagination.NextToBlock
	if len(c.transactions) > 0 {
		latest := highestBlock(c.transactions)
		c.latestBlock = &latest
	}
	c.mu.Unlock()

	if err := c.ensureVisible(ctx, c.minVisibleInitial); err != nil {
		logger.Warn(ctx, "failed to fill visible activity", "chain.id", q.ChainID, "feed.address", q.Address, "error", err)
		c.setErr(err)
		return err
	}

	return nil
}

// LoadMore appends the next older page and then fills until minVisibleMore
// additional transactions are visible. It is a no-op when there is no older
// page or when a load is already running.
func (c *controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || c.loadingMore || !c.hasMore || c.nextToBlock == nil {
		c.mu.Unlock()
		return nil
	}
	c.loadingMore = true
	visibleBefore := c.countVisible()
	q := c.query()
	q.ToBlock = uint64(*c.nextToBlock)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loadingMore = false
		c.mu.Unlock()
	}()

	page, err := c.fetch(ctx, q, "more")
	if err != nil {
		logger.Warn(ctx, "failed to load more activity", "chain.id", q.ChainID, "feed.address", q.Address, "error", err)
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	c.applyPage(page)
	c.mu.Unlock()

	if err := c.ensureVisible(ctx, visibleBefore+c.minVisibleMore); err != nil {
		logger.Warn(ctx, "failed to fill visible activity", "chain.id", q.ChainID, "feed.address", q.Address, "error", err)
		c.setErr(err)
		return err
	}

	return nil
}

// PollNew queues transactions newer than the watermark. Failures are logged
// and otherwise ignored.
func (c *controller) PollNew(ctx context.Context) {
	c.pollNew(ctx)
}

func (c *controller) pollNew(ctx context.Context) []activity.Transaction {
	c.mu.Lock()
	if c.latestBlock == nil {
		c.mu.Unlock()
		return nil
	}
	q := c.query()
	q.FromBlock = uint64(*c.latestBlock) + 1
	c.mu.Unlock()

	page, err := c.fetch(ctx, q, "poll")
	if err != nil {
		logger.Debug(ctx, "activity poll failed", "chain.id", q.ChainID, "feed.address", q.Address, "error", err)
		return nil
	}
	if len(page.Data) == 0 {
		return nil
	}

	incoming := activity.SortAndDedupe(page.Data)

	c.mu.Lock()
	known := activity.Hashes(c.transactions)
	for _, tx := range c.queued {
		known.Add(tx.Key())
	}
	unique := slices.DeleteFunc(incoming, func(tx activity.Transaction) bool {
		return known.Has(tx.Key())
	})

	if len(unique) > 0 {
		c.queued = activity.Merge(unique, c.queued)
		c.newTxCount = activity.Count(c.queued, c.filter)
	}

	if latest := highestBlock(page.Data); c.latestBlock == nil || latest > *c.latestBlock {
		c.latestBlock = &latest
	}

	chainID, address, notifier := c.chainID, c.address, c.notifier
	c.mu.Unlock()

	if len(unique) == 0 {
		return nil
	}

	c.metrics.transactionsQueued(ctx, len(unique))
	if notifier != nil {
		if err := notifier.NotifyQueued(ctx, chainID, address, unique); err != nil {
			logger.Warn(ctx, "failed to publish queued transactions", "chain.id", chainID, "feed.address", address, "error", err)
		}
	}

	return unique
}

// ShowNew merges the queue into the visible set and empties it.
func (c *controller) ShowNew() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queued) == 0 {
		return
	}

	c.transactions = activity.Merge(c.transactions, c.queued)
	c.queued = nil
	c.newTxCount = 0
}

// PollNow reveals what is queued, polls, and reveals again.
func (c *controller) PollNow(ctx context.Context) {
	c.ShowNew()
	c.pollNew(ctx)
	c.ShowNew()
}

// SetFilter installs f; nil disables filtering.
func (c *controller) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = f
	c.newTxCount = activity.Count(c.queued, c.filter)
}

func (c *controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Transactions:      slices.Clone(c.transactions),
		Queued:            slices.Clone(c.queued),
		NewTxCount:        c.newTxCount,
		Loading:           c.loading,
		LoadingMore:       c.loadingMore,
		Err:               c.err,
		HasMore:           c.hasMore,
		NextToBlock:       clonePtr(c.nextToBlock),
		LatestBlockNumber: clonePtr(c.latestBlock),
	}
}

func highestBlock(txs []activity.Transaction) types.Uint64 {
	var highest types.Uint64
	for _, tx := range txs {
		highest = max(highest, tx.BlockNumber)
	}
	return highest
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

type config struct {
	filter            Filter
	notifier          Notifier
	minVisibleInitial int
	minVisibleMore    int
	maxAutoFetches    int
	pollInterval      time.Duration
}

type Option func(*config)

// New returns the feed controller of address on chainID. An empty address
// follows the whole chain.
func New(source Source, chainID int, address string, opts ...Option) *controller {
	cfg := config{
		minVisibleInitial: DefaultMinVisibleInitial,
		minVisibleMore:    DefaultMinVisibleMore,
		maxAutoFetches:    DefaultMaxAutoFetches,
		pollInterval:      DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &controller{
		chainID:           chainID,
		address:           address,
		source:            source,
		filter:            cfg.filter,
		notifier:          cfg.notifier,
		minVisibleInitial: cfg.minVisibleInitial,
		minVisibleMore:    cfg.minVisibleMore,
		maxAutoFetches:    cfg.maxAutoFetches,
		pollInterval:      cfg.pollInterval,
		metrics:           newMetrics(),
	}
}

func WithFilter(f Filter) Option {
	return func(c *config) {
		c.filter = f
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithMinVisibleInitial sets how many filter-passing transactions Load aims for. Default: 25.
func WithMinVisibleInitial(n int) Option {
	return func(c *config) {
		c.minVisibleInitial = n
	}
}

// WithMinVisibleMore sets how many extra visible transactions LoadMore aims for. Default: 10.
func WithMinVisibleMore(n int) Option {
	return func(c *config) {
		c.minVisibleMore = n
	}
}

// WithMaxAutoFetches caps the pages fetched automatically per Load or LoadMore. Default: 20.
func WithMaxAutoFetches(n int) Option {
	return func(c *config) {
		c.maxAutoFetches = n
	}
}

// WithPollInterval sets the period used by Start. Default: 15s.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}
