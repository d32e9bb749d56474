package repository

import (
	"context"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db   *gorm.DB
	lock bool
}

func (r *transactionRepository) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	var t model.Transaction
	if err := lookup(ctx, r.db, r.lock).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) Save(ctx context.Context, t *model.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *transactionRepository) List(ctx context.Context, f TransactionFilter) ([]model.Transaction, error) {
	var list []model.Transaction
	if err := f.apply(r.db.WithContext(ctx)).
		Order("created_at ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
