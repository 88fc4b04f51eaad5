package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const reconnectDelay = 3 * time.Second

// subscribeMessage asks the exchange for ticker updates of symbols.
type subscribeMessage struct {
	Event   string   `json:"event"`
	Channel []string `json:"channel"`
	Symbols []string `json:"symbols"`
}

// WSClient keeps a ticker subscription open and hands every message to
// the registered handler.
type WSClient struct {
	url     string
	symbols []string
	handler func([]byte)
	logger  *zap.Logger
	dialer  *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWSClient creates a client subscribing to the ticker channel of symbols
// (e.g., "BTC_ETH").
func NewWSClient(url string, symbols []string, logger *zap.Logger) *WSClient {
	return &WSClient{
		url:     url,
		symbols: symbols,
		logger:  logger,
		dialer:  websocket.DefaultDialer,
	}
}

// SetMessageHandler sets the function to handle incoming messages.
func (c *WSClient) SetMessageHandler(h func([]byte)) {
	c.handler = h
}

// Connect dials the exchange and subscribes. It does not start the listener.
func (c *WSClient) Connect(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.logger.Error("failed to connect to websocket", zap.String("url", c.url), zap.Error(err))
		return err
	}

	if err := conn.WriteJSON(subscribeMessage{
		Event:   "subscribe",
		Channel: []string{"ticker"},
		Symbols: c.symbols,
	}); err != nil {
		_ = conn.Close()
		return fmt.Errorf("websocket subscribe failed: %w", err)
	}

	c.mu.Lock()
	old := c.conn
	c.conn = conn
	c.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	c.logger.Info("websocket connected", zap.String("url", c.url), zap.Strings("symbols", c.symbols))
	return nil
}

// Listen reads until ctx is cancelled, reconnecting after every read error.
func (c *WSClient) Listen(ctx context.Context) {
	go func() {
		<-ctx.Done()
		c.Close()
	}()

	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			if !c.reconnect(ctx) {
				return
			}
			continue
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("websocket read error", zap.Error(err))
			if !c.reconnect(ctx) {
				return
			}
			continue
		}

		if c.handler != nil {
			c.handler(msg)
		}
	}
}

// reconnect retries Connect until it succeeds or ctx ends.
func (c *WSClient) reconnect(ctx context.Context) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(reconnectDelay):
		}

		if err := c.Connect(ctx); err != nil {
			c.logger.Warn("retrying websocket reconnect", zap.Error(err))
			continue
		}
		c.logger.Info("websocket reconnected")
		return true
	}
}

func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}
