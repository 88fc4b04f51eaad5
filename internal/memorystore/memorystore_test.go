package memorystore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vcdesk/internal/auth"
	"vcdesk/pkg/market"
)

// go test -v --run TestAccountStore
func TestAccountStore(t *testing.T) {
	store := NewAccountStore()
	ctx := context.Background()

	created, err := store.CreateAccount(ctx, "test-user", "hash")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Username != "test-user" || created.PasswordHash != "hash" {
		t.Errorf("unexpected account: %+v", created)
	}

	if _, err := store.CreateAccount(ctx, "test-user", "other"); !errors.Is(err, auth.ErrDuplicateAccount) {
		t.Errorf("expected ErrDuplicateAccount, got %v", err)
	}

	found, err := store.FindByUsername(ctx, "test-user")
	if err != nil || found.PasswordHash != "hash" {
		t.Errorf("unexpected find result: %+v %v", found, err)
	}

	if _, err := store.FindByUsername(ctx, "non-exist-username"); !errors.Is(err, auth.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

// go test -v --run TestAssetStoreCRUD
func TestAssetStoreCRUD(t *testing.T) {
	store := NewAssetStore()
	ctx := context.Background()

	a, err := store.CreateAsset(ctx, "alice", "poloniex", market.Asset{Base: "BTC", VCType: "ETH", Units: 1, Rate: 0.1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if a.UUID == "" {
		t.Fatal("expected a generated uuid")
	}
	if _, err := store.CreateAsset(ctx, "alice", "poloniex", market.Asset{Base: "BTC", VCType: "ETH", Units: -1}); !errors.Is(err, market.ErrInvalidAsset) {
		t.Errorf("expected ErrInvalidAsset for negative units, got %v", err)
	}

	// Other owners and exchanges see nothing
	if list, _ := store.ListAssets(ctx, "bob", "poloniex", "BTC"); len(list) != 0 {
		t.Errorf("expected no assets for bob, got %+v", list)
	}
	if list, _ := store.ListAssets(ctx, "alice", "bittrex", "BTC"); len(list) != 0 {
		t.Errorf("expected no assets on bittrex, got %+v", list)
	}

	list, _ := store.ListAssets(ctx, "alice", "poloniex", "BTC")
	if len(list) != 1 || list[0].UUID != a.UUID {
		t.Fatalf("unexpected list: %+v", list)
	}

	if _, err := store.DeleteAsset(ctx, "alice", "poloniex", "BTC", "BTC", a.UUID); !errors.Is(err, market.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound for wrong vcType, got %v", err)
	}

	removed, err := store.DeleteAsset(ctx, "alice", "poloniex", "BTC", "ETH", a.UUID)
	if err != nil || removed.UUID != a.UUID {
		t.Fatalf("unexpected delete result: %+v %v", removed, err)
	}
	if list, _ := store.ListAssets(ctx, "alice", "poloniex", "BTC"); len(list) != 0 {
		t.Errorf("expected empty list after delete, got %+v", list)
	}
}

// go test -v --run TestAssetStoreMerge
func TestAssetStoreMerge(t *testing.T) {
	store := NewAssetStore()
	ctx := context.Background()

	e1, _ := store.CreateAsset(ctx, "alice", "poloniex", market.Asset{Base: "BTC", VCType: "ETH", Units: 1, Rate: 0.1})
	b1, _ := store.CreateAsset(ctx, "alice", "poloniex", market.Asset{Base: "BTC", VCType: "BTC", Units: 0.4, Rate: 1})
	e2, _ := store.CreateAsset(ctx, "alice", "poloniex", market.Asset{Base: "BTC", VCType: "ETH", Units: 1, Rate: 0.2})

	// A missing id aborts the whole merge
	if _, err := store.MergeAssets(ctx, "alice", "poloniex", "BTC", "ETH", []string{e1.UUID, "missing"}); !errors.Is(err, market.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
	if list, _ := store.ListAssets(ctx, "alice", "poloniex", "BTC"); len(list) != 3 {
		t.Fatalf("failed merge must not change assets, got %+v", list)
	}

	merged, err := store.MergeAssets(ctx, "alice", "poloniex", "BTC", "ETH", []string{e1.UUID, e2.UUID, e1.UUID})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged.Units != 2 || merged.Rate != 0.15 {
		t.Errorf("unexpected merged asset: %+v", merged)
	}

	list, _ := store.ListAssets(ctx, "alice", "poloniex", "BTC")
	if len(list) != 2 {
		t.Fatalf("expected 2 assets after merge, got %+v", list)
	}
	if list[0].UUID != b1.UUID || list[1].UUID != merged.UUID {
		t.Errorf("unexpected order after merge: %+v", list)
	}

	if _, err := store.MergeAssets(ctx, "alice", "poloniex", "BTC", "ETH", nil); !errors.Is(err, market.ErrInvalidAsset) {
		t.Errorf("expected ErrInvalidAsset for empty ids, got %v", err)
	}
}

// go test -v --run TestTickerStore
func TestTickerStore(t *testing.T) {
	store := NewTickerStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(ts int64) {
			defer wg.Done()
			store.Put(market.Ticker{Base: "BTC", VCType: "ETH", Bid: float64(ts), Timestamp: ts})
		}(int64(i))
	}
	wg.Wait()
	store.Put(market.Ticker{Base: "USDT", VCType: "BTC", Bid: 6000, Timestamp: 1})

	// Older quotes never replace newer ones
	store.Put(market.Ticker{Base: "BTC", VCType: "ETH", Bid: -1, Timestamp: 0})

	btc := store.ByBase("BTC")
	if btc["ETH"].Timestamp != 49 || btc["ETH"].Bid != 49 {
		t.Errorf("expected newest ETH quote, got %+v", btc["ETH"])
	}
	if store.CountAll() != 2 {
		t.Errorf("expected 2 pairs, got %d", store.CountAll())
	}
	if len(store.ByBase("EUR")) != 0 {
		t.Error("expected no tickers for unknown base")
	}
}
