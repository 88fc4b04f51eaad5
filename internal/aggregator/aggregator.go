package aggregator

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"vcdesk/pkg/market"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Source is the remote asset and ticker data the aggregator reads and mutates.
// *market.RESTClient satisfies it.
type Source interface {
	GetAssets(ctx context.Context, base string) ([]market.Asset, error)
	GetTickers(ctx context.Context, base string) (map[string]market.Ticker, error)
	DeleteAsset(ctx context.Context, base, vcType, id string) (*market.Asset, error)
	MergeAssets(ctx context.Context, base, vcType string, ids []string) (*market.Asset, error)
}

const defaultMaxInFlight = 4

// Aggregator owns the per-base asset and ticker views and the current
// selection. Network calls run outside the lock; every mutation of the
// owned state is serialized through mu, so overlapping loads of one base
// apply in the order they resolve.
type Aggregator struct {
	source      Source
	logger      *zap.Logger
	change      ChangeFunc
	maxInFlight int

	mu        sync.RWMutex
	base      string
	assets    map[string][]market.Asset
	tickers   map[string]map[string]market.Ticker
	selection Selection

	subsMu sync.Mutex
	subs   map[chan Event]struct{}
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithBase sets the initially active base currency.
func WithBase(base string) Option {
	return func(a *Aggregator) {
		a.base = base
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// WithChangeFunc replaces the default RelativeChange derivation.
func WithChangeFunc(f ChangeFunc) Option {
	return func(a *Aggregator) {
		a.change = f
	}
}

// WithMaxInFlight bounds the concurrent delete requests of a remove.
func WithMaxInFlight(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxInFlight = n
		}
	}
}

func New(source Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		source:      source,
		logger:      zap.NewNop(),
		change:      RelativeChange,
		maxInFlight: defaultMaxInFlight,
		assets:      make(map[string][]market.Asset),
		tickers:     make(map[string]map[string]market.Ticker),
		selection:   emptySelection(),
		subs:        make(map[chan Event]struct{}),
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadAssetsByBase replaces the assets of base with the source's list.
// On error the previous assets are kept.
func (a *Aggregator) LoadAssetsByBase(ctx context.Context, base string) error {
	assets, err := a.source.GetAssets(ctx, base)
	if err != nil {
		a.logger.Warn("failed to load assets", zap.String("base", base), zap.Error(err))
		return fmt.Errorf("load assets %s: %w", base, err)
	}
	if assets == nil {
		assets = []market.Asset{}
	}

	a.mu.Lock()
	a.assets[base] = assets
	a.mu.Unlock()

	a.emit(AssetsLoaded, base)
	return nil
}

// LoadTickersByBase replaces the tickers of base with the source's map.
func (a *Aggregator) LoadTickersByBase(ctx context.Context, base string) error {
	tickers, err := a.source.GetTickers(ctx, base)
	if err != nil {
		a.logger.Warn("failed to load tickers", zap.String("base", base), zap.Error(err))
		return fmt.Errorf("load tickers %s: %w", base, err)
	}
	if tickers == nil {
		tickers = map[string]market.Ticker{}
	}

	a.mu.Lock()
	a.tickers[base] = tickers
	a.mu.Unlock()

	a.emit(TickersLoaded, base)
	return nil
}

// SetBase switches the active base. The selection is kept; it is cleared by
// the next remove or merge.
func (a *Aggregator) SetBase(base string) {
	a.mu.Lock()
	changed := a.base != base
	a.base = base
	a.mu.Unlock()

	if changed {
		a.emit(BaseChanged, base)
	}
}

func (a *Aggregator) Base() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.base
}

// Bases returns the loaded base currencies, sorted and unique.
func (a *Aggregator) Bases() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Sorted(maps.Keys(a.assets))
}

// Assets returns a copy of the loaded assets of base.
func (a *Aggregator) Assets(base string) []market.Asset {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.assets[base])
}

// Tickers returns a copy of the loaded tickers of base.
func (a *Aggregator) Tickers(base string) map[string]market.Ticker {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return maps.Clone(a.tickers[base])
}

// ListSummaries groups the active base's assets by vcType.
func (a *Aggregator) ListSummaries() []Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return summarize(a.assets[a.base], a.tickers[a.base], a.change)
}

// Selection returns a copy of the current selection.
func (a *Aggregator) Selection() Selection {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.selection.clone()
}

// ShowControlBox reports whether any asset is selected.
func (a *Aggregator) ShowControlBox() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return !a.selection.Empty()
}

// OnClickAsset toggles id in the selection of vcType.
func (a *Aggregator) OnClickAsset(vcType, id string) {
	a.mu.Lock()
	a.selection = a.selection.Toggle(vcType, id)
	base := a.base
	a.mu.Unlock()

	a.emit(SelectionChanged, base)
}

// OnClickSummary focuses the selection on vcType, discarding ids of any
// other currency.
func (a *Aggregator) OnClickSummary(vcType string) {
	a.mu.Lock()
	a.selection = a.selection.Focus(vcType)
	base := a.base
	a.mu.Unlock()

	a.emit(SelectionChanged, base)
}

// OnClickRemove deletes every selected asset, then reloads the active base
// and clears the selection. All deletes settle before the reload; failed
// deletes are reported together and successful ones are not rolled back.
func (a *Aggregator) OnClickRemove(ctx context.Context) error {
	base, sel := a.snapshot()

	var removeErr error
	if !sel.Empty() {
		p := pool.New().WithErrors().WithMaxGoroutines(a.maxInFlight)
		for _, id := range sel.IDs {
			p.Go(func() error {
				if _, err := a.source.DeleteAsset(ctx, base, sel.VCType, id); err != nil {
					a.logger.Warn("failed to remove asset",
						zap.String("base", base), zap.String("vcType", sel.VCType),
						zap.String("id", id), zap.Error(err))
					return fmt.Errorf("remove %s: %w", id, err)
				}
				return nil
			})
		}
		removeErr = p.Wait()
	}

	return errors.Join(removeErr, a.settle(ctx, base))
}

// OnClickMerge asks the source to fold the selected assets into one record,
// then reloads the active base and clears the selection.
func (a *Aggregator) OnClickMerge(ctx context.Context) error {
	base, sel := a.snapshot()

	var mergeErr error
	if !sel.Empty() {
		if _, err := a.source.MergeAssets(ctx, base, sel.VCType, sel.IDs); err != nil {
			a.logger.Warn("failed to merge assets",
				zap.String("base", base), zap.String("vcType", sel.VCType),
				zap.Strings("ids", sel.IDs), zap.Error(err))
			mergeErr = fmt.Errorf("merge %s: %w", sel.VCType, err)
		}
	}

	return errors.Join(mergeErr, a.settle(ctx, base))
}

func (a *Aggregator) snapshot() (string, Selection) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.base, a.selection.clone()
}

// settle reloads base and resets the selection. The reset happens even when
// the reload fails.
func (a *Aggregator) settle(ctx context.Context, base string) error {
	err := a.LoadAssetsByBase(ctx, base)

	a.mu.Lock()
	a.selection = emptySelection()
	a.mu.Unlock()

	a.emit(SelectionChanged, base)
	return err
}
