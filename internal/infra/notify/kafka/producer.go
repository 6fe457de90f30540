// Package kafka implements feed.Notifier on Kafka. Each queued transaction
// becomes one message on a per-chain topic, keyed by the feed scope so that
// a feed's messages stay ordered within a partition.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/feed"
	"github.com/gabapcia/blockfeed/internal/infra/notify"
	"github.com/gabapcia/blockfeed/internal/pkg/telemetry"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "blockfeed-activity"

// ErrNoBrokers is returned by NewProducer without broker addresses.
var ErrNoBrokers = errors.New("kafka brokers are required")

// Writer is the subset of *kafkago.Writer used by the producer.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// headerCarrier adapts kafka headers to the otel propagation carrier.
type headerCarrier struct {
	headers *[]kafkago.Header
}

func (c headerCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range *c.headers {
		if h.Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafkago.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, len(*c.headers))
	for i, h := range *c.headers {
		keys[i] = h.Key
	}
	return keys
}

type producer struct {
	writer Writer
	prefix string
	now    func() time.Time
}

var _ feed.Notifier = (*producer)(nil)

func (p *producer) topic(chainID int) string {
	return fmt.Sprintf("%s-%d", p.prefix, chainID)
}

// NotifyQueued implements feed.Notifier.
func (p *producer) NotifyQueued(ctx context.Context, chainID int, address string, txs []activity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	ctx, span := telemetry.Tracer().Start(ctx, "notify.kafka.publish", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.Int("chain.id", chainID),
		attribute.String("address", address),
		attribute.Int("transactions", len(txs)),
	)

	queuedAt := p.now().UTC()
	scope := notify.Scope(address)

	messages := make([]kafkago.Message, 0, len(txs))
	for _, tx := range txs {
		payload, err := notify.Encode(notify.Message{
			ChainID:      chainID,
			Address:      address,
			Transactions: []activity.Transaction{tx},
			QueuedAt:     queuedAt,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		headers := make([]kafkago.Header, 0, 2)
		otel.GetTextMapPropagator().Inject(ctx, headerCarrier{headers: &headers})

		messages = append(messages, kafkago.Message{
			Topic:   p.topic(chainID),
			Key:     []byte(scope),
			Value:   payload,
			Headers: headers,
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (p *producer) Close() error {
	return p.writer.Close()
}

// NewProducer creates a producer writing to brokers. An empty topicPrefix
// selects DefaultTopicPrefix; topics are named "{prefix}-{chainID}".
func NewProducer(brokers []string, topicPrefix string) (*producer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           500 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	return newProducer(writer, topicPrefix), nil
}

func newProducer(writer Writer, topicPrefix string) *producer {
	if strings.TrimSpace(topicPrefix) == "" {
		topicPrefix = DefaultTopicPrefix
	}

	return &producer{
		writer: writer,
		prefix: topicPrefix,
		now:    time.Now,
	}
}
