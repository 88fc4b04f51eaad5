package memorystore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"vcdesk/pkg/market"

	"github.com/google/uuid"
)

// AssetStore keeps asset records in memory, ordered by insertion.
type AssetStore struct {
	mu     sync.RWMutex
	assets map[assetKey][]market.Asset
}

func NewAssetStore() *AssetStore {
	return &AssetStore{
		assets: make(map[assetKey][]market.Asset),
	}
}

func (s *AssetStore) ListAssets(_ context.Context, owner, exchange, base string) ([]market.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.assets[assetKey{owner, exchange, base}])
	if out == nil {
		out = []market.Asset{}
	}
	return out, nil
}

func (s *AssetStore) CreateAsset(_ context.Context, owner, exchange string, asset market.Asset) (*market.Asset, error) {
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	asset.UUID = uuid.NewString()

	key := assetKey{owner, exchange, asset.Base}
	s.mu.Lock()
	s.assets[key] = append(s.assets[key], asset)
	s.mu.Unlock()
	return &asset, nil
}

func (s *AssetStore) DeleteAsset(_ context.Context, owner, exchange, base, vcType, id string) (*market.Asset, error) {
	key := assetKey{owner, exchange, base}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.assets[key]
	i := slices.IndexFunc(list, func(a market.Asset) bool {
		return a.UUID == id && a.VCType == vcType
	})
	if i < 0 {
		return nil, fmt.Errorf("%w: %s/%s/%s", market.ErrAssetNotFound, base, vcType, id)
	}

	removed := list[i]
	s.assets[key] = slices.Delete(slices.Clone(list), i, i+1)
	return &removed, nil
}

// MergeAssets replaces the ids with one merged record appended at the end.
// Either every id is merged or nothing changes.
func (s *AssetStore) MergeAssets(_ context.Context, owner, exchange, base, vcType string, ids []string) (*market.Asset, error) {
	ids = market.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no ids to merge", market.ErrInvalidAsset)
	}
	key := assetKey{owner, exchange, base}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.assets[key]
	var picked []market.Asset
	for _, id := range ids {
		i := slices.IndexFunc(list, func(a market.Asset) bool {
			return a.UUID == id && a.VCType == vcType
		})
		if i < 0 {
			return nil, fmt.Errorf("%w: %s/%s/%s", market.ErrAssetNotFound, base, vcType, id)
		}
		picked = append(picked, list[i])
	}

	merged, err := market.Merge(base, vcType, picked)
	if err != nil {
		return nil, err
	}
	merged.UUID = uuid.NewString()

	kept := make([]market.Asset, 0, len(list)-len(picked)+1)
	for _, a := range list {
		if !slices.Contains(ids, a.UUID) {
			kept = append(kept, a)
		}
	}
	s.assets[key] = append(kept, merged)
	return &merged, nil
}
