package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_Subscribe(t *testing.T) {
	t.Run("should start on the first subscriber and stop on the last", func(t *testing.T) {
		c := New(WithInterval(time.Hour))
		assert.False(t, c.running())

		_, unsubA := c.Subscribe()
		_, unsubB := c.Subscribe()
		assert.True(t, c.running())
		assert.Equal(t, 2, c.Subscribers())

		unsubA()
		assert.True(t, c.running())

		unsubB()
		assert.False(t, c.running())
		assert.Equal(t, 0, c.Subscribers())
	})

	t.Run("should tolerate repeated unsubscribes", func(t *testing.T) {
		c := New(WithInterval(time.Hour))

		_, unsubA := c.Subscribe()
		_, unsubB := c.Subscribe()

		unsubA()
		unsubA()
		assert.Equal(t, 1, c.Subscribers())
		assert.True(t, c.running())

		unsubB()
	})

	t.Run("should deliver ticks to every subscriber", func(t *testing.T) {
		c := New(WithInterval(5 * time.Millisecond))

		chA, unsubA := c.Subscribe()
		defer unsubA()
		chB, unsubB := c.Subscribe()
		defer unsubB()

		for _, ch := range []<-chan time.Time{chA, chB} {
			select {
			case tick := <-ch:
				assert.False(t, tick.IsZero())
			case <-time.After(time.Second):
				require.Fail(t, "tick not delivered")
			}
		}
	})

	t.Run("should restart after being stopped", func(t *testing.T) {
		c := New(WithInterval(5 * time.Millisecond))

		_, unsub := c.Subscribe()
		unsub()
		assert.False(t, c.running())

		ch, unsub := c.Subscribe()
		defer unsub()

		select {
		case <-ch:
		case <-time.After(time.Second):
			require.Fail(t, "tick not delivered after restart")
		}
	})
}

func TestClock_Now(t *testing.T) {
	t.Run("should return the current time before any tick", func(t *testing.T) {
		fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		c := New(WithNow(func() time.Time { return fixed }))

		assert.Equal(t, fixed, c.Now())
	})

	t.Run("should return the latest tick", func(t *testing.T) {
		fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		c := New(WithInterval(5*time.Millisecond), WithNow(func() time.Time { return fixed }))

		ch, unsub := c.Subscribe()
		defer unsub()

		select {
		case tick := <-ch:
			assert.Equal(t, fixed, tick)
			assert.Equal(t, fixed, c.Now())
		case <-time.After(time.Second):
			require.Fail(t, "tick not delivered")
		}
	})
}
