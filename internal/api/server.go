package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vcdesk/internal/auth"
	"vcdesk/pkg/market"

	"go.uber.org/zap"
)

// AssetStore persists asset records per owner, exchange and base.
type AssetStore interface {
	ListAssets(ctx context.Context, owner, exchange, base string) ([]market.Asset, error)
	CreateAsset(ctx context.Context, owner, exchange string, asset market.Asset) (*market.Asset, error)
	DeleteAsset(ctx context.Context, owner, exchange, base, vcType, id string) (*market.Asset, error)
	MergeAssets(ctx context.Context, owner, exchange, base, vcType string, ids []string) (*market.Asset, error)
}

// TickerReader serves the latest tickers of a base.
type TickerReader interface {
	ByBase(base string) map[string]market.Ticker
}

// Server exposes the public account/session routes and the private
// market routes of one exchange.
type Server struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	auth     *auth.Service
	assets   AssetStore
	tickers  TickerReader
	exchange string
	logger   *zap.Logger
}

func NewServer(addr, exchange string, authService *auth.Service, assets AssetStore, tickers TickerReader, logger *zap.Logger) *Server {
	return &Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		auth:              authService,
		assets:            assets,
		tickers:           tickers,
		exchange:          exchange,
		logger:            logger,
	}
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("POST /session", s.handleLogin)
	mux.HandleFunc("GET /session", s.handleGetSession)
	mux.HandleFunc("DELETE /session", s.handleLogout)

	mux.Handle("GET /private/markets/{exchange}/assets/{base}", s.private(s.handleListAssets))
	mux.Handle("POST /private/markets/{exchange}/assets/{base}", s.private(s.handleCreateAsset))
	mux.Handle("DELETE /private/markets/{exchange}/assets/{base}/{vcType}/{id}", s.private(s.handleDeleteAsset))
	mux.Handle("PUT /private/markets/{exchange}/assets/{base}/{vcType}", s.private(s.handleUpdateAssets))
	mux.Handle("GET /private/markets/{exchange}/tickers/{base}", s.private(s.handleListTickers))

	return s.logRequests(mux)
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", zap.String("addr", s.Addr), zap.String("exchange", s.exchange))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
