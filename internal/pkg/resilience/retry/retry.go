// Package retry runs fallible operations with exponential backoff. It wraps
// avast/retry-go behind a small interface so callers can be tested with a
// stub that runs the operation once.
//
//	r := retry.New(retry.WithAttempts(4), retry.WithRetryIf(isTransient))
//	err := r.Execute(ctx, func() error { return fetchMetadata(ctx, url) })
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes an operation until it succeeds, the attempts run out or ctx
// is done.
type Retry interface {
	// Execute runs operation, retrying failures that the configured
	// predicate accepts. The operation must be safe to call repeatedly.
	Execute(ctx context.Context, operation func() error) error
}

type config struct {
	attempts    uint
	delay       time.Duration
	maxDelay    time.Duration
	lastErrOnly bool
	retryIf     func(error) bool
	onRetry     func(attempt uint, err error)
}

// Option configures a Retry.
type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New returns a Retry. Defaults: 3 attempts, 1s base delay capped at 5s,
// exponential backoff, only the last error returned, every error retried
// except Unrecoverable ones.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	}
	if r.cfg.retryIf != nil {
		options = append(options, retry.RetryIf(r.cfg.retryIf))
	}
	if r.cfg.onRetry != nil {
		options = append(options, retry.OnRetry(r.cfg.onRetry))
	}

	return retry.Do(operation, options...)
}

// Unrecoverable marks err so Execute returns it without further attempts.
func Unrecoverable(err error) error {
	return retry.Unrecoverable(err)
}

// WithAttempts sets the total number of attempts, the first one included.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base backoff delay.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly chooses between the last error (true) and all joined errors (false).
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}

// WithRetryIf restricts retries to errors for which fn returns true.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		c.retryIf = fn
	}
}

// WithOnRetry registers a hook invoked after each failed attempt that will be retried.
func WithOnRetry(fn func(attempt uint, err error)) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}
