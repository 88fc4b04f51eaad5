package aggregator

import "vcdesk/pkg/market"

// Summary is one row of the per-currency view under the active base.
type Summary struct {
	VCType string   `json:"vcType"`
	Units  float64  `json:"units"`  // Sum of units across the group
	Rate   float64  `json:"rate"`   // Units-weighted average rate
	Change *float64 `json:"change"` // Present only when a ticker exists for VCType
}

// ChangeFunc derives a summary's change from the matching ticker.
type ChangeFunc func(s Summary, t market.Ticker) float64

// RelativeChange is the bid's fractional move against the summary rate.
// A zero rate has no reference price and yields 0.
func RelativeChange(s Summary, t market.Ticker) float64 {
	if s.Rate == 0 {
		return 0
	}
	return (t.Bid - s.Rate) / s.Rate
}

// BidPrice uses the ticker's bid unchanged.
func BidPrice(_ Summary, t market.Ticker) float64 {
	return t.Bid
}

// summarize groups assets by vcType in first-seen order.
func summarize(assets []market.Asset, tickers map[string]market.Ticker, change ChangeFunc) []Summary {
	var order []string
	groups := make(map[string][]market.Asset)
	for _, a := range assets {
		if _, ok := groups[a.VCType]; !ok {
			order = append(order, a.VCType)
		}
		groups[a.VCType] = append(groups[a.VCType], a)
	}

	out := make([]Summary, 0, len(order))
	for _, vcType := range order {
		units, rate := market.Aggregate(groups[vcType])
		s := Summary{VCType: vcType, Units: units, Rate: rate}

		if t, ok := tickers[vcType]; ok {
			c := change(s, t)
			s.Change = &c
		}
		out = append(out, s)
	}
	return out
}
