package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gabapcia/blockfeed/internal/config"
	"github.com/gabapcia/blockfeed/internal/handlers/cli"
	"github.com/gabapcia/blockfeed/internal/pkg/logger"
	"github.com/gabapcia/blockfeed/internal/pkg/telemetry"
)

const serviceName = "blockfeed"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Telemetry goes first so the logger can attach its OTEL bridge.
	if cfg.Telemetry {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Warn(ctx, "failed to shutdown telemetry", "error", err)
			}
		}()
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			logger.Warn(ctx, "failed to release resources", "error", err)
		}
	}()

	return cli.Run(ctx, a.services, os.Args)
}
