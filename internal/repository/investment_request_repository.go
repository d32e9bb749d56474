package repository

import (
	"context"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"gorm.io/gorm"
)

type investmentRequestRepository struct {
	db   *gorm.DB
	lock bool
}

func (r *investmentRequestRepository) FindByID(ctx context.Context, id string) (*model.InvestmentRequest, error) {
	var req model.InvestmentRequest
	if err := lookup(ctx, r.db, r.lock).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *investmentRequestRepository) Save(ctx context.Context, req *model.InvestmentRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *investmentRequestRepository) List(ctx context.Context, f RequestFilter) ([]model.InvestmentRequest, error) {
	var list []model.InvestmentRequest
	if err := f.apply(r.db.WithContext(ctx)).
		Order("created_at ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
