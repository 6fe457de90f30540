// Package redis implements feed.Notifier on Redis: every batch of queued
// transactions is published on a per-feed channel and kept in a capped list
// so late subscribers can catch up.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/feed"
	"github.com/gabapcia/blockfeed/internal/infra/notify"
	"github.com/gabapcia/blockfeed/internal/pkg/telemetry"
	"github.com/gabapcia/blockfeed/internal/pkg/x/chflow"

	redis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// keyPrefix namespaces every key and channel written by the notifier.
	keyPrefix = "blockfeed"

	// defaultHistory is how many batches the recent list keeps per feed.
	defaultHistory = 100
)

// channelName returns the pub/sub channel of a feed.
//
// Format: "blockfeed:activity:{chainID}:{scope}"
func channelName(chainID int, address string) string {
	return fmt.Sprintf("%s:activity:%d:%s", keyPrefix, chainID, notify.Scope(address))
}

// recentKey returns the list holding the latest batches of a feed.
//
// Format: "blockfeed:recent:{chainID}:{scope}"
func recentKey(chainID int, address string) string {
	return fmt.Sprintf("%s:recent:%d:%s", keyPrefix, chainID, notify.Scope(address))
}

type client struct {
	conn    *redis.Client
	history int64
	now     func() time.Time
}

var _ feed.Notifier = (*client)(nil)

// NotifyQueued implements feed.Notifier. The publish and the list update run
// in one MULTI/EXEC transaction.
func (c *client) NotifyQueued(ctx context.Context, chainID int, address string, txs []activity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	ctx, span := telemetry.Tracer().Start(ctx, "notify.redis.publish", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.Int("chain.id", chainID),
		attribute.String("address", address),
		attribute.Int("transactions", len(txs)),
	)

	payload, err := notify.Encode(notify.Message{
		ChainID:      chainID,
		Address:      address,
		Transactions: txs,
		QueuedAt:     c.now().UTC(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	key := recentKey(chainID, address)
	_, err = c.conn.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Publish(ctx, channelName(chainID, address), payload)
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, c.history-1)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// Recent returns up to limit of the latest batches of a feed, newest first.
func (c *client) Recent(ctx context.Context, chainID int, address string, limit int64) ([]notify.Message, error) {
	if limit <= 0 {
		return nil, nil
	}

	payloads, err := c.conn.LRange(ctx, recentKey(chainID, address), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]notify.Message, 0, len(payloads))
	for _, payload := range payloads {
		msg, err := notify.Decode([]byte(payload))
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// Subscribe listens on the channel of a feed until ctx is done. The returned
// channel is closed when the subscription ends; undecodable payloads are
// skipped.
func (c *client) Subscribe(ctx context.Context, chainID int, address string) (<-chan notify.Message, error) {
	sub := c.conn.Subscribe(ctx, channelName(chainID, address))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan notify.Message)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			m, ok := chflow.Receive(ctx, ch)
			if !ok {
				return
			}

			msg, err := notify.Decode([]byte(m.Payload))
			if err != nil {
				continue
			}

			if !chflow.Send(ctx, out, msg) {
				return
			}
		}
	}()

	return out, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}

// NewClient connects to Redis and verifies the connection with PING.
func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &client{
		conn:    conn,
		history: defaultHistory,
		now:     time.Now,
	}, nil
}
