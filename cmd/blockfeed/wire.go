package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabapcia/blockfeed/internal/clock"
	"github.com/gabapcia/blockfeed/internal/config"
	"github.com/gabapcia/blockfeed/internal/feed"
	"github.com/gabapcia/blockfeed/internal/handlers/cli"
	"github.com/gabapcia/blockfeed/internal/identity"
	"github.com/gabapcia/blockfeed/internal/infra/activityapi"
	"github.com/gabapcia/blockfeed/internal/infra/indexer"
	"github.com/gabapcia/blockfeed/internal/infra/moments"
	notifykafka "github.com/gabapcia/blockfeed/internal/infra/notify/kafka"
	notifyredis "github.com/gabapcia/blockfeed/internal/infra/notify/redis"
	"github.com/gabapcia/blockfeed/internal/infra/onchain"
	"github.com/gabapcia/blockfeed/internal/media"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/graphql"
	transporthttp "github.com/gabapcia/blockfeed/internal/pkg/transport/http"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonapi"
	"github.com/gabapcia/blockfeed/internal/pkg/transport/jsonrpc"

	"github.com/hashicorp/go-retryablehttp"
)

// notifier is a feed.Notifier owning a connection.
type notifier interface {
	feed.Notifier
	io.Closer
}

// app holds the wired services and what has to be released on exit.
type app struct {
	services cli.Services
	closers  []func() error
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buildTiers(cfg config.Config, httpClient *retryablehttp.Client, caller onchain.Caller) ([]identity.Tier, error) {
	docs := jsonapi.NewClient(httpClient, "")

	tiers := make([]identity.Tier, 0, len(cfg.IdentityTiers))
	for _, name := range cfg.IdentityTiers {
		switch name {
		case config.TierIndexer:
			tiers = append(tiers, indexer.New(graphql.NewClient(jsonapi.NewClient(httpClient, cfg.GraphQLEndpoint))))
		case config.TierMoments:
			tiers = append(tiers, moments.New(jsonapi.NewClient(httpClient, cfg.MomentsAPIURL), cfg.IPFSGateway))
		case config.TierLSP4:
			tiers = append(tiers, onchain.NewLSP4Tier(caller, docs, onchain.WithGateway(cfg.IPFSGateway)))
		case config.TierCollection:
			tiers = append(tiers, onchain.NewCollectionTier(caller, docs, onchain.WithGateway(cfg.IPFSGateway)))
		default:
			return nil, fmt.Errorf("unknown identity tier %q", name)
		}
	}

	return tiers, nil
}

func buildNotifier(ctx context.Context, cfg config.Config) (notifier, error) {
	switch cfg.Notifier {
	case config.NotifierRedis:
		return notifyredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
	case config.NotifierKafka:
		return notifykafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
	default:
		return nil, nil
	}
}

func build(ctx context.Context, cfg config.Config) (*app, error) {
	httpClient := transporthttp.NewClient(
		transporthttp.WithTimeout(cfg.HTTPTimeout),
		transporthttp.WithRetryMax(cfg.HTTPRetries),
		transporthttp.WithTracing(cfg.Telemetry),
	)

	api := activityapi.NewClient(jsonapi.NewClient(httpClient, cfg.APIBaseURL))
	caller := onchain.NewRPCCaller(jsonrpc.NewClient(httpClient, cfg.RPCEndpoint))

	tiers, err := buildTiers(cfg, httpClient, caller)
	if err != nil {
		return nil, err
	}

	n, err := buildNotifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{}
	if n != nil {
		a.closers = append(a.closers, n.Close)
	}

	ids := identity.New(api,
		identity.WithTiers(tiers...),
		identity.WithDebounce(cfg.ResolveDebounce),
		identity.WithRateLimit(cfg.TierRateLimit, cfg.TierBurst),
	)
	a.closers = append(a.closers, func() error {
		ids.Close()
		return nil
	})

	feedOpts := []feed.Option{
		feed.WithPollInterval(cfg.PollInterval),
		feed.WithMinVisibleInitial(cfg.MinVisibleInitial),
		feed.WithMinVisibleMore(cfg.MinVisibleMore),
		feed.WithMaxAutoFetches(cfg.MaxAutoFetches),
	}
	if n != nil {
		feedOpts = append(feedOpts, feed.WithNotifier(n))
	}

	a.services = cli.Services{
		Feeds: func(chainID int, address string) feed.Controller {
			return feed.New(api, chainID, address, feedOpts...)
		},
		Identities: ids,
		Clock:      clock.New(clock.WithInterval(cfg.ClockInterval)),
		TokenIDs:   onchain.NewFormatReader(caller),
		Media:      media.NewDetector(httpClient),
	}

	return a, nil
}
