package feed

import (
	"context"

	"github.com/gabapcia/blockfeed/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type metrics struct {
	pagesFetched       metric.Int64Counter
	transactionsLoaded metric.Int64Counter
	queued             metric.Int64Counter
}

// newMetrics registers the feed instruments. An instrument that fails to
// register is left nil and skipped.
func newMetrics() *metrics {
	meter := telemetry.Meter()

	pages, _ := meter.Int64Counter("blockfeed.feed.pages_fetched",
		metric.WithDescription("Activity pages fetched, by fetch kind"))
	loaded, _ := meter.Int64Counter("blockfeed.feed.transactions_fetched",
		metric.WithDescription("Transactions received from the activity source"))
	queued, _ := meter.Int64Counter("blockfeed.feed.transactions_queued",
		metric.WithDescription("New unique transactions queued by polling"))

	return &metrics{
		pagesFetched:       pages,
		transactionsLoaded: loaded,
		queued:             queued,
	}
}

func (m *metrics) pageFetched(ctx context.Context, kind string, size int) {
	attrs := metric.WithAttributes(attribute.String("feed.fetch_kind", kind))
	if m.pagesFetched != nil {
		m.pagesFetched.Add(ctx, 1, attrs)
	}
	if m.transactionsLoaded != nil {
		m.transactionsLoaded.Add(ctx, int64(size), attrs)
	}
}

func (m *metrics) transactionsQueued(ctx context.Context, n int) {
	if m.queued != nil {
		m.queued.Add(ctx, int64(n))
	}
}
