package marketdata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"vcdesk/pkg/market"

	"go.uber.org/zap"
)

const tickerChannel = "ticker"

// TickerWriter stores parsed quotes.
type TickerWriter interface {
	Put(t market.Ticker)
}

// MakeMessageHandler returns a function that parses ticker pushes from the
// exchange stream and writes them to store. Other channels are ignored.
func MakeMessageHandler(logger *zap.Logger, store TickerWriter) func(msg []byte) {
	return func(msg []byte) {
		var parsed TickerMessage
		if err := json.Unmarshal(msg, &parsed); err != nil {
			logger.Warn("failed to parse stream message", zap.Error(err))
			return
		}
		if parsed.Channel != tickerChannel {
			return // subscription acks, pongs
		}

		for _, d := range parsed.Data {
			t, err := toTicker(d)
			if err != nil {
				logger.Warn("skipping malformed ticker", zap.String("symbol", d.Symbol), zap.Error(err))
				continue
			}
			store.Put(t)
		}
	}
}

func toTicker(d TickerData) (market.Ticker, error) {
	base, vcType, err := splitSymbol(d.Symbol)
	if err != nil {
		return market.Ticker{}, err
	}
	bid, err := strconv.ParseFloat(d.Bid, 64)
	if err != nil {
		return market.Ticker{}, fmt.Errorf("bid: %w", err)
	}
	ask, err := strconv.ParseFloat(d.Ask, 64)
	if err != nil {
		return market.Ticker{}, fmt.Errorf("ask: %w", err)
	}

	return market.Ticker{
		Base:      base,
		VCType:    vcType,
		Bid:       bid,
		Ask:       ask,
		Timestamp: d.Ts,
	}, nil
}

// splitSymbol parses "BTC_ETH" into base "BTC" and vcType "ETH".
func splitSymbol(symbol string) (base, vcType string, err error) {
	parts := strings.Split(symbol, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid symbol %q", symbol)
	}
	return parts[0], parts[1], nil
}
