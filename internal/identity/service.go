package identity

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/gabapcia/blockfeed/internal/pkg/logger"
	"github.com/gabapcia/blockfeed/internal/pkg/telemetry"
	"github.com/gabapcia/blockfeed/internal/pkg/types"
	"github.com/gabapcia/blockfeed/internal/pkg/validator"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	DefaultDebounce = 100 * time.Millisecond

	// bulkTier names the primary tier in the pending and attempted sets.
	bulkTier = "bulk"
)

// Service owns the identity cache of a session.
type Service interface {
	// Get reads the cache. Lookups are case-insensitive.
	Get(address string) (Identity, bool)

	// QueueResolve schedules addresses that are neither cached, in flight
	// nor already attempted. The batch is flushed once no new address has
	// been queued for the debounce window. Empty or malformed addresses are
	// ignored.
	QueueResolve(chainID int, addresses ...string)

	// ResolveFromTransaction queues both parties of a transaction.
	ResolveFromTransaction(chainID int, from, to string)

	// Flush resolves the pending batch right away.
	Flush(ctx context.Context)

	// Wait blocks until background tier lookups started so far are done.
	Wait()

	// Snapshot copies the cache.
	Snapshot() map[string]Identity

	// Reset forgets every cached identity and attempt.
	Reset()

	// Close stops the debounce timer and cancels background lookups.
	Close()
}

type service struct {
	mu sync.Mutex

	bulk     BulkResolver
	tiers    []Tier
	debounce time.Duration
	limiter  *rate.Limiter

	cache     map[string]Identity
	batch     map[int][]string
	pending   types.DefaultMap[string, types.Set[string]]
	attempted types.DefaultMap[string, types.Set[string]]
	timer     *time.Timer
	closed    bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	resolved metric.Int64Counter
}

var _ Service = (*service)(nil)

func newSetMap() types.DefaultMap[string, types.Set[string]] {
	return types.NewDefaultMap[string](func() types.Set[string] { return types.NewSet[string]() })
}

func (s *service) Get(address string) (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.cache[Normalize(address)]
	return id, ok
}

func (s *service) QueueResolve(chainID int, addresses ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	pending := s.pending.Get(bulkTier)
	attempted := s.attempted.Get(bulkTier)

	added := false
	for _, address := range addresses {
		key := Normalize(address)
		if key == "" {
			continue
		}
		// A single malformed address would fail the whole bulk request.
		if err := validator.Var(key, "evm_address"); err != nil {
			continue
		}
		if _, cached := s.cache[key]; cached || pending.Has(key) || attempted.Has(key) {
			continue
		}

		pending.Add(key)
		s.batch[chainID] = append(s.batch[chainID], key)
		added = true
	}

	if !added {
		return
	}

	if s.timer != nil {
		s.timer.Reset(s.debounce)
		return
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.Flush(s.ctx) })
}

func (s *service) ResolveFromTransaction(chainID int, from, to string) {
	s.QueueResolve(chainID, from, to)
}

func (s *service) Flush(ctx context.Context) {
	s.mu.Lock()
	batches := s.batch
	s.batch = make(map[int][]string)
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	for chainID, addresses := range batches {
		s.resolveBatch(ctx, chainID, addresses)
	}
}

func (s *service) resolveBatch(ctx context.Context, chainID int, addresses []string) {
	ctx, span := telemetry.Tracer().Start(ctx, "identity.bulk_resolve", trace.WithAttributes(
		attribute.Int("chain.id", chainID),
		attribute.Int("identity.batch_size", len(addresses)),
	))
	defer span.End()

	results, err := s.bulk.ResolveAddresses(ctx, chainID, addresses)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn(ctx, "bulk address resolution failed", "chain.id", chainID, "identity.batch_size", len(addresses), "error", err)
	}

	s.mu.Lock()
	for address, id := range results {
		s.mergeLocked(Normalize(address), id)
	}

	pending := s.pending.Get(bulkTier)
	attempted := s.attempted.Get(bulkTier)

	var unnamed []string
	for _, address := range addresses {
		pending.Delete(address)
		// Failed batches may be queued again.
		if err == nil {
			attempted.Add(address)
		}

		if id, ok := s.cache[address]; ok && !id.HasName() {
			unnamed = append(unnamed, address)
		}
	}
	if s.closed || len(s.tiers) == 0 {
		unnamed = nil
	}
	// Reserved under mu so Close cannot reach wg.Wait first.
	s.wg.Add(len(unnamed))
	s.mu.Unlock()

	s.countResolved(ctx, bulkTier, len(results))

	for _, address := range unnamed {
		go func() {
			defer s.wg.Done()
			s.runTiers(s.ctx, chainID, address)
		}()
	}
}

// mergeLocked fills the cached identity of key with id. Must be called with mu held.
func (s *service) mergeLocked(key string, id Identity) {
	if id.Address == "" {
		id.Address = key
	}

	if existing, ok := s.cache[key]; ok {
		s.cache[key] = existing.Fill(id)
		return
	}
	s.cache[key] = id
}

// runTiers consults the secondary tiers in order until the identity of
// address has a name. Each tier is tried at most once per address.
func (s *service) runTiers(ctx context.Context, chainID int, address string) {
	for _, tier := range s.tiers {
		if ctx.Err() != nil {
			return
		}

		name := tier.Name()

		s.mu.Lock()
		id := s.cache[address]
		pending, attempted := s.pending.Get(name), s.attempted.Get(name)
		skip := id.HasName() || pending.Has(address) || attempted.Has(address)
		if !skip {
			pending.Add(address)
		}
		s.mu.Unlock()

		if id.HasName() {
			return
		}
		if skip {
			continue
		}

		patch, err := s.resolveWithTier(ctx, tier, chainID, address)

		s.mu.Lock()
		pending.Delete(address)
		attempted.Add(address)
		if err == nil {
			s.mergeLocked(address, patch)
		}
		s.mu.Unlock()

		if err == nil {
			s.countResolved(ctx, name, 1)
		}
	}
}

func (s *service) resolveWithTier(ctx context.Context, tier Tier, chainID int, address string) (Identity, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return Identity{}, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "identity.tier_resolve", trace.WithAttributes(
		attribute.Int("chain.id", chainID),
		attribute.String("identity.tier", tier.Name()),
		attribute.String("identity.address", address),
	))
	defer span.End()

	patch, err := tier.Resolve(ctx, chainID, address)
	switch {
	case errors.Is(err, ErrNoData):
		logger.Debug(ctx, "identity tier found nothing", "identity.tier", tier.Name(), "identity.address", address)
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug(ctx, "identity tier failed", "identity.tier", tier.Name(), "identity.address", address, "error", err)
	}

	return patch, err
}

func (s *service) countResolved(ctx context.Context, tier string, n int) {
	if s.resolved == nil || n == 0 {
		return
	}
	s.resolved.Add(ctx, int64(n), metric.WithAttributes(attribute.String("identity.tier", tier)))
}

func (s *service) Wait() {
	s.wg.Wait()
}

func (s *service) Snapshot() map[string]Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.cache)
}

func (s *service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.cache)
	clear(s.batch)
	s.pending.Clear()
	s.attempted.Clear()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *service) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

type config struct {
	tiers    []Tier
	debounce time.Duration
	limiter  *rate.Limiter
}

type Option func(*config)

// New returns a Service that resolves through bulk first and then through
// the configured tiers.
func New(bulk BulkResolver, opts ...Option) *service {
	cfg := config{
		debounce: DefaultDebounce,
		limiter:  rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())

	resolved, _ := telemetry.Meter().Int64Counter("blockfeed.identity.resolved",
		metric.WithDescription("Identities (or identity patches) resolved, by tier"))

	return &service{
		bulk:      bulk,
		tiers:     cfg.tiers,
		debounce:  cfg.debounce,
		limiter:   cfg.limiter,
		cache:     make(map[string]Identity),
		batch:     make(map[int][]string),
		pending:   newSetMap(),
		attempted: newSetMap(),
		ctx:       ctx,
		cancel:    cancel,
		resolved:  resolved,
	}
}

// WithTiers sets the secondary tiers, consulted in the given order.
func WithTiers(tiers ...Tier) Option {
	return func(c *config) {
		c.tiers = tiers
	}
}

// WithDebounce sets the batching window. Default: 100ms.
func WithDebounce(d time.Duration) Option {
	return func(c *config) {
		c.debounce = d
	}
}

// WithRateLimit bounds how many secondary tier lookups start per second.
// Default: unlimited.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *config) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}
