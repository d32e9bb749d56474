package repository

import (
	"context"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"gorm.io/gorm"
)

type offerRepository struct {
	db   *gorm.DB
	lock bool
}

func (r *offerRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	var o model.Offer
	if err := lookup(ctx, r.db, r.lock).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *offerRepository) Save(ctx context.Context, o *model.Offer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *offerRepository) List(ctx context.Context, f OfferFilter) ([]model.Offer, error) {
	var list []model.Offer
	if err := f.apply(r.db.WithContext(ctx)).
		Order("created_at ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
