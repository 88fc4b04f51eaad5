package aggregator

// EventKind names the piece of state that changed.
type EventKind string

const (
	AssetsLoaded     EventKind = "assets_loaded"
	TickersLoaded    EventKind = "tickers_loaded"
	SelectionChanged EventKind = "selection_changed"
	BaseChanged      EventKind = "base_changed"
)

// Event is emitted after every state mutation. Subscribers re-read the
// derived views they care about.
type Event struct {
	Kind EventKind
	Base string
}

const subscriberBuffer = 16

// Subscribe registers a listener. Events are dropped for a subscriber whose
// buffer is full, so a slow reader never stalls the writer. The returned func
// unregisters and closes the channel.
func (a *Aggregator) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	a.subsMu.Lock()
	a.subs[ch] = struct{}{}
	a.subsMu.Unlock()

	cancel := func() {
		a.subsMu.Lock()
		defer a.subsMu.Unlock()
		if _, ok := a.subs[ch]; ok {
			delete(a.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (a *Aggregator) emit(kind EventKind, base string) {
	a.subsMu.Lock()
	defer a.subsMu.Unlock()

	ev := Event{Kind: kind, Base: base}
	for ch := range a.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
