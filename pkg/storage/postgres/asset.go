package postgres

import (
	"context"
	"errors"
	"fmt"

	"vcdesk/pkg/market"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (p *PostgresClient) ListAssets(ctx context.Context, owner, exchange, base string) ([]market.Asset, error) {
	var records []AssetRecord
	err := p.DB.WithContext(ctx).
		Where("owner = ? AND exchange = ? AND base = ?", owner, exchange, base).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	assets := make([]market.Asset, 0, len(records))
	for _, r := range records {
		assets = append(assets, r.toAsset())
	}
	return assets, nil
}

func (p *PostgresClient) CreateAsset(ctx context.Context, owner, exchange string, asset market.Asset) (*market.Asset, error) {
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	asset.UUID = uuid.NewString()

	if err := p.DB.WithContext(ctx).Create(ToAssetRecord(owner, exchange, asset)).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (p *PostgresClient) DeleteAsset(ctx context.Context, owner, exchange, base, vcType, id string) (*market.Asset, error) {
	var removed *market.Asset
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findAsset(tx, owner, exchange, base, vcType, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(record).Error; err != nil {
			return err
		}
		asset := record.toAsset()
		removed = &asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// MergeAssets replaces the ids with one merged record inside a single
// transaction, so either every id is merged or nothing changes.
func (p *PostgresClient) MergeAssets(ctx context.Context, owner, exchange, base, vcType string, ids []string) (*market.Asset, error) {
	ids = market.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no ids to merge", market.ErrInvalidAsset)
	}

	var merged market.Asset
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		picked := make([]market.Asset, 0, len(ids))
		recordIDs := make([]uint, 0, len(ids))
		for _, id := range ids {
			record, err := findAsset(tx, owner, exchange, base, vcType, id)
			if err != nil {
				return err
			}
			picked = append(picked, record.toAsset())
			recordIDs = append(recordIDs, record.ID)
		}

		var err error
		merged, err = market.Merge(base, vcType, picked)
		if err != nil {
			return err
		}
		merged.UUID = uuid.NewString()

		if err := tx.Delete(&AssetRecord{}, recordIDs).Error; err != nil {
			return err
		}
		return tx.Create(ToAssetRecord(owner, exchange, merged)).Error
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

func findAsset(tx *gorm.DB, owner, exchange, base, vcType, id string) (*AssetRecord, error) {
	var record AssetRecord
	err := tx.
		Where("owner = ? AND exchange = ? AND base = ? AND vc_type = ? AND uuid = ?",
			owner, exchange, base, vcType, id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s/%s/%s", market.ErrAssetNotFound, base, vcType, id)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
