package postgres

import (
	"context"
	"errors"

	"vcdesk/internal/auth"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (p *PostgresClient) CreateAccount(ctx context.Context, username, passwordHash string) (*auth.Account, error) {
	record := &AccountRecord{
		Username:     username,
		PasswordHash: passwordHash,
	}

	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(record)

	if tx.Error != nil {
		return nil, tx.Error
	}

	if tx.RowsAffected == 0 {
		return nil, auth.ErrDuplicateAccount
	}

	return record.toAccount(), nil
}

func (p *PostgresClient) FindByUsername(ctx context.Context, username string) (*auth.Account, error) {
	var record AccountRecord
	err := p.DB.WithContext(ctx).
		Where("username = ?", username).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.toAccount(), nil
}
