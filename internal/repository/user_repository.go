package repository

import (
	"context"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"gorm.io/gorm"
)

type userRepository struct {
	db   *gorm.DB
	lock bool
}

func (r *userRepository) FindByID(ctx context.Context, uid string) (*model.User, error) {
	var u model.User
	if err := lookup(ctx, r.db, r.lock).Where("uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Save(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) List(ctx context.Context, f UserFilter) ([]model.User, error) {
	var list []model.User
	if err := f.apply(r.db.WithContext(ctx)).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
