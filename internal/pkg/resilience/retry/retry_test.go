package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast(opts ...Option) Retry {
	return New(append([]Option{WithDelay(time.Millisecond), WithMaxDelay(2 * time.Millisecond)}, opts...)...)
}

func TestRetry_Execute(t *testing.T) {
	t.Run("should call a successful operation once", func(t *testing.T) {
		calls := 0
		err := fast().Execute(t.Context(), func() error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("should retry until success", func(t *testing.T) {
		calls := 0
		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			calls++
			if calls < 2 {
				return errors.New("temporary error")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("should return the last error once attempts are exhausted", func(t *testing.T) {
		persistent := errors.New("persistent error")
		calls := 0

		err := fast(WithAttempts(3)).Execute(t.Context(), func() error {
			calls++
			return persistent
		})

		assert.ErrorIs(t, err, persistent)
		assert.Equal(t, 3, calls)
	})

	t.Run("should stop on unrecoverable errors", func(t *testing.T) {
		notFound := errors.New("404")
		calls := 0

		err := fast(WithAttempts(5)).Execute(t.Context(), func() error {
			calls++
			return Unrecoverable(notFound)
		})

		assert.ErrorIs(t, err, notFound)
		assert.Equal(t, 1, calls)
	})

	t.Run("should honour the retry predicate", func(t *testing.T) {
		permanent := errors.New("permanent")
		calls := 0

		err := fast(WithAttempts(5), WithRetryIf(func(err error) bool {
			return !errors.Is(err, permanent)
		})).Execute(t.Context(), func() error {
			calls++
			return permanent
		})

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("should invoke the retry hook", func(t *testing.T) {
		var attempts []uint

		_ = fast(WithAttempts(3), WithOnRetry(func(n uint, _ error) {
			attempts = append(attempts, n)
		})).Execute(t.Context(), func() error {
			return errors.New("boom")
		})

		assert.Equal(t, []uint{0, 1, 2}, attempts)
	})

	t.Run("should stop when the context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		calls := 0

		err := New(WithAttempts(5), WithDelay(time.Second)).Execute(ctx, func() error {
			calls++
			cancel()
			return errors.New("boom")
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestNew(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		r, ok := New().(*retrier)
		require.True(t, ok)

		assert.Equal(t, uint(3), r.cfg.attempts)
		assert.Equal(t, time.Second, r.cfg.delay)
		assert.Equal(t, 5*time.Second, r.cfg.maxDelay)
		assert.True(t, r.cfg.lastErrOnly)
	})
}
