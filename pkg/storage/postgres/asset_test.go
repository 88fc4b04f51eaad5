package postgres_test

import (
	"context"
	"errors"
	"testing"

	"vcdesk/internal/auth"
	"vcdesk/pkg/market"

	"github.com/google/uuid"
)

// go test -v --run TestAccountCRUD
func TestAccountCRUD(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	username := "user-" + uuid.NewString()

	created, err := client.CreateAccount(ctx, username, "hash")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Username != username {
		t.Errorf("unexpected account: %+v", created)
	}

	if _, err := client.CreateAccount(ctx, username, "other"); !errors.Is(err, auth.ErrDuplicateAccount) {
		t.Errorf("expected duplicate error, got %v", err)
	}

	got, err := client.FindByUsername(ctx, username)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.PasswordHash != "hash" {
		t.Errorf("password hash was overwritten: %q", got.PasswordHash)
	}

	if _, err := client.FindByUsername(ctx, "missing-"+uuid.NewString()); !errors.Is(err, auth.ErrAccountNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

// go test -v --run TestAssetCRUD
func TestAssetCRUD(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	owner := "owner-" + uuid.NewString()

	// Create
	a, err := client.CreateAsset(ctx, owner, "poloniex", market.Asset{Base: "BTC", VCType: "ETH", Units: 1, Rate: 0.1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	b, err := client.CreateAsset(ctx, owner, "poloniex", market.Asset{Base: "BTC", VCType: "ETH", Units: 3, Rate: 0.2})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	c, err := client.CreateAsset(ctx, owner, "poloniex", market.Asset{Base: "BTC", VCType: "XRP", Units: 10, Rate: 0.00001})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := client.CreateAsset(ctx, owner, "poloniex", market.Asset{Base: "BTC"}); !errors.Is(err, market.ErrInvalidAsset) {
		t.Errorf("expected invalid asset, got %v", err)
	}

	// Read
	list, err := client.ListAssets(ctx, owner, "poloniex", "BTC")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 3 || list[0].UUID != a.UUID {
		t.Fatalf("unexpected assets: %+v", list)
	}

	// Merge
	merged, err := client.MergeAssets(ctx, owner, "poloniex", "BTC", "ETH", []string{a.UUID, b.UUID, a.UUID})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged.Units != 4 || merged.Rate != 0.175 {
		t.Errorf("unexpected merged asset: %+v", merged)
	}

	if _, err := client.MergeAssets(ctx, owner, "poloniex", "BTC", "ETH", []string{a.UUID}); !errors.Is(err, market.ErrAssetNotFound) {
		t.Errorf("expected not found for merged id, got %v", err)
	}

	// Delete
	if _, err := client.DeleteAsset(ctx, owner, "poloniex", "BTC", "XRP", c.UUID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := client.DeleteAsset(ctx, owner, "poloniex", "BTC", "XRP", c.UUID); !errors.Is(err, market.ErrAssetNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}

	list, err = client.ListAssets(ctx, owner, "poloniex", "BTC")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].UUID != merged.UUID {
		t.Errorf("unexpected assets after merge and delete: %+v", list)
	}
}
