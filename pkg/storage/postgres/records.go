package postgres

import (
	"time"

	"vcdesk/internal/auth"
	"vcdesk/pkg/market"
)

// AccountRecord is a registered user. Username is unique.
type AccountRecord struct {
	ID uint `gorm:"primaryKey"`

	Username     string `gorm:"type:text;not null;uniqueIndex:idx_account_username"`
	PasswordHash string `gorm:"type:varchar(128);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (AccountRecord) TableName() string {
	return "account_record"
}

func (r AccountRecord) toAccount() *auth.Account {
	return &auth.Account{
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// AssetRecord is one holding of VCType priced in Base, owned by a user on
// one exchange.
type AssetRecord struct {
	ID uint `gorm:"primaryKey"`

	UUID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_asset_uuid"`

	// lookup index
	Owner    string `gorm:"type:text;not null;index:idx_owner_exchange_base"`
	Exchange string `gorm:"type:varchar(32);not null;index:idx_owner_exchange_base"`
	Base     string `gorm:"type:varchar(16);not null;index:idx_owner_exchange_base"`
	VCType   string `gorm:"column:vc_type;type:varchar(16);not null"`

	Units float64 `gorm:"type:numeric;not null"`
	Rate  float64 `gorm:"type:numeric;not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (AssetRecord) TableName() string {
	return "asset_record"
}

// ToAssetRecord converts an API asset into a record for owner on exchange.
func ToAssetRecord(owner, exchange string, a market.Asset) *AssetRecord {
	return &AssetRecord{
		UUID:     a.UUID,
		Owner:    owner,
		Exchange: exchange,
		Base:     a.Base,
		VCType:   a.VCType,
		Units:    a.Units,
		Rate:     a.Rate,
	}
}

func (r AssetRecord) toAsset() market.Asset {
	return market.Asset{
		Base:   r.Base,
		VCType: r.VCType,
		Units:  r.Units,
		Rate:   r.Rate,
		UUID:   r.UUID,
	}
}
