// Package chflow holds context-aware channel helpers.
package chflow

import "context"

// Receive waits for a value on ch or for ctx to be done. The boolean is false
// when ctx finished first or ch was closed.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var data T
	select {
	case <-ctx.Done():
		return data, false
	case data, ok := <-ch:
		return data, ok
	}
}

// Send delivers data on ch unless ctx is done first.
func Send[T any](ctx context.Context, ch chan<- T, data T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- data:
		return true
	}
}

// Offer delivers data on ch only if it would not block. Slow consumers of a
// buffered channel miss the value instead of stalling the producer.
func Offer[T any](ch chan<- T, data T) bool {
	select {
	case ch <- data:
		return true
	default:
		return false
	}
}
