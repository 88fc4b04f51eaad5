package main

import (
	"context"
	"fmt"

	"vcdesk/config"
	"vcdesk/internal/aggregator"
	"vcdesk/logger"
	"vcdesk/pkg/market"

	"go.uber.org/zap"
)

// desk is a logged-in aggregator over the configured exchange.
type desk struct {
	agg *aggregator.Aggregator
	log *zap.Logger
}

func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		return config.Load(), nil
	}
	return config.LoadFrom(*configPath)
}

// openDesk logs in and loads the assets and tickers of every base; the
// first one becomes active.
func openDesk(ctx context.Context, bases ...string) (*desk, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if len(bases) == 0 {
		bases = []string{cfg.Market.DefaultBase}
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client := market.NewRESTClient(cfg.Market.BaseURL, cfg.Market.Exchange, cfg.Market.Timeout)
	if cfg.Market.Username != "" {
		if err := client.Login(ctx, cfg.Market.Username, cfg.Market.Password); err != nil {
			return nil, fmt.Errorf("login as %s: %w", cfg.Market.Username, err)
		}
	}

	agg := aggregator.New(client,
		aggregator.WithBase(bases[0]),
		aggregator.WithLogger(logger.Named(log, "aggregator")),
		aggregator.WithMaxInFlight(cfg.Market.MaxInFlight),
	)

	for _, base := range bases {
		if err := agg.LoadAssetsByBase(ctx, base); err != nil {
			return nil, err
		}
		if err := agg.LoadTickersByBase(ctx, base); err != nil {
			return nil, err
		}
	}

	return &desk{agg: agg, log: log}, nil
}
