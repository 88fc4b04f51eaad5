package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"vcdesk/config"
	"vcdesk/internal/api"
	"vcdesk/internal/auth"
	"vcdesk/internal/marketdata"
	"vcdesk/internal/memorystore"
	"vcdesk/internal/session"
	"vcdesk/logger"
	"vcdesk/pkg/storage/postgres"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

type stores struct {
	accounts auth.AccountStore
	assets   api.AssetStore
	close    func() error
}

func openStores(cfg *config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		client, err := postgres.Initialize(cfg.Postgres, cfg.Log.Environment, cfg.Storage.CreateDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		log.Info("using postgres storage", zap.String("db", cfg.Postgres.DBName))
		return &stores{accounts: client, assets: client, close: client.Close}, nil

	case config.StorageMemory, "":
		log.Info("using in-memory storage")
		return &stores{
			accounts: memorystore.NewAccountStore(),
			assets:   memorystore.NewAssetStore(),
			close:    func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	st, err := openStores(cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	secret := cfg.Auth.ResolveSecret(cfg.Log.Environment)
	if secret == "" {
		log.Warn("auth secret is empty; password hashes are unsalted")
	}

	sessions := session.NewMemoryStore(cfg.Auth.SessionTTL)
	sweeper, err := session.NewSweeper(sessions, cfg.Auth.SweepSpec, logger.Named(log, "session"))
	if err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	authService := auth.NewService(
		st.accounts,
		auth.NewPBKDF2Hasher(secret, cfg.Auth.Iterations),
		sessions,
		logger.Named(log, "auth"),
	)

	tickers := memorystore.NewTickerStore()

	server := api.NewServer(cfg.Server.Addr, cfg.Market.Exchange, authService, st.assets, tickers, logger.Named(log, "api"))
	if cfg.Server.ReadHeaderTimeout > 0 {
		server.ReadHeaderTimeout = cfg.Server.ReadHeaderTimeout
	}
	if cfg.Server.ShutdownTimeout > 0 {
		server.ShutdownTimeout = cfg.Server.ShutdownTimeout
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Market.WSURL != "" {
		feed := marketdata.NewFeed(cfg.Market.WSURL, cfg.Market.Symbols, tickers, logger.Named(log, "feed"))
		g.Go(func() error {
			return feed.Run(ctx)
		})
	} else {
		log.Warn("market.ws_url not set; tickers stay empty")
	}

	g.Go(func() error {
		return server.Start(ctx)
	})

	return g.Wait()
}
