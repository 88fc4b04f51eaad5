package memorystore

import (
	"sync"

	"vcdesk/pkg/market"
)

// TickerStore holds the latest ticker per base and vcType, fed by the
// exchange stream and read by the private tickers route.
type TickerStore struct {
	globalMu sync.RWMutex
	data     map[string]*baseTickerStore
}

type baseTickerStore struct {
	mu      sync.RWMutex
	tickers map[string]market.Ticker
}

func NewTickerStore() *TickerStore {
	return &TickerStore{
		data: make(map[string]*baseTickerStore),
	}
}

// Put records t unless a newer quote for the same pair is already stored.
func (s *TickerStore) Put(t market.Ticker) {
	// Fast path: lock the per-base store only
	s.globalMu.RLock()
	store, ok := s.data[t.Base]
	s.globalMu.RUnlock()

	if !ok {
		s.globalMu.Lock()
		if store, ok = s.data[t.Base]; !ok {
			store = &baseTickerStore{tickers: make(map[string]market.Ticker)}
			s.data[t.Base] = store
		}
		s.globalMu.Unlock()
	}

	store.mu.Lock()
	if prev, ok := store.tickers[t.VCType]; !ok || prev.Timestamp <= t.Timestamp {
		store.tickers[t.VCType] = t
	}
	store.mu.Unlock()
}

// ByBase returns a copy of the tickers of base keyed by vcType.
func (s *TickerStore) ByBase(base string) map[string]market.Ticker {
	s.globalMu.RLock()
	store, ok := s.data[base]
	s.globalMu.RUnlock()
	if !ok {
		return map[string]market.Ticker{}
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	cp := make(map[string]market.Ticker, len(store.tickers))
	for vcType, t := range store.tickers {
		cp[vcType] = t
	}
	return cp
}

// CountAll returns the number of pairs with a ticker.
func (s *TickerStore) CountAll() int {
	s.globalMu.RLock()
	defer s.globalMu.RUnlock()

	total := 0
	for _, store := range s.data {
		store.mu.RLock()
		total += len(store.tickers)
		store.mu.RUnlock()
	}
	return total
}
