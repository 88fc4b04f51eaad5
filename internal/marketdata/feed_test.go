package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vcdesk/internal/memorystore"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// go test -v --run TestFeedRun
func TestFeedRun(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if _, _, err := conn.ReadMessage(); err != nil { // subscribe
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"channel":"ticker","data":[{"symbol":"USDT_BTC","bid":"4500.1","ask":"4501","ts":42}]}`))

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	store := memorystore.NewTickerStore()
	feed := NewFeed("ws"+strings.TrimPrefix(srv.URL, "http"), []string{"USDT_BTC"}, store, zap.NewNop())
	feed.statsInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for store.CountAll() == 0 {
		select {
		case <-deadline:
			t.Fatal("ticker never stored")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if got := store.ByBase("USDT")["BTC"]; got.Bid != 4500.1 {
		t.Errorf("unexpected ticker: %+v", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected run error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("feed did not stop")
	}
}

// go test -v --run TestFeedConnectFailure
func TestFeedConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	feed := NewFeed(url, nil, memorystore.NewTickerStore(), zap.NewNop())
	if err := feed.Run(context.Background()); err == nil {
		t.Fatal("expected connect error")
	}
}
