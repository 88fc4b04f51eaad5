package marketdata

import (
	"context"
	"time"

	"vcdesk/pkg/exchange"

	"go.uber.org/zap"
)

const defaultStatsInterval = time.Minute

// TickerStore is written by the feed and counted for the periodic stats log.
type TickerStore interface {
	TickerWriter
	CountAll() int
}

// Feed streams exchange tickers into a store.
type Feed struct {
	client        *exchange.WSClient
	store         TickerStore
	logger        *zap.Logger
	statsInterval time.Duration
}

func NewFeed(url string, symbols []string, store TickerStore, logger *zap.Logger) *Feed {
	client := exchange.NewWSClient(url, symbols, logger)
	client.SetMessageHandler(MakeMessageHandler(logger, store))

	return &Feed{
		client:        client,
		store:         store,
		logger:        logger,
		statsInterval: defaultStatsInterval,
	}
}

// Run connects and listens until ctx is cancelled. Only the first
// connection failure is returned; later drops are retried by the client.
func (f *Feed) Run(ctx context.Context) error {
	if err := f.client.Connect(ctx); err != nil {
		return err
	}

	go f.logStats(ctx)

	f.client.Listen(ctx)
	return nil
}

func (f *Feed) logStats(ctx context.Context) {
	ticker := time.NewTicker(f.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.logger.Info("current stored tickers", zap.Int("pairs", f.store.CountAll()))
		}
	}
}
