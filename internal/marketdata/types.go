package marketdata

// TickerMessage is a ticker channel push from the exchange stream.
type TickerMessage struct {
	Channel string       `json:"channel"` // "ticker" for quote updates
	Data    []TickerData `json:"data"`
}

// TickerData is one quote; prices arrive as decimal strings.
type TickerData struct {
	Symbol string `json:"symbol"` // Pair in BASE_VC form, e.g., "BTC_ETH"
	Bid    string `json:"bid"`
	Ask    string `json:"ask"`
	Ts     int64  `json:"ts"` // Quote time (in milliseconds since epoch)
}
