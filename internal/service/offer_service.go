package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"go.uber.org/zap"
)

type CreateOfferInput struct {
	ProductName       string
	ProductType       model.ProductType
	ProductTypeOther  string
	Description       string
	HarvestDate       string
	Location          string
	QualityGrade      model.QualityGrade
	QualityCertifier  string
	TotalQuantity     uint64
	PricePerKg        float64
	MinimumInvestment uint64
	ImageURL          *string
}

type OfferService interface {
	Create(ctx context.Context, callerUID string, in CreateOfferInput) (*model.Offer, error)
	ListActive(ctx context.Context) ([]model.Offer, error)
	ListByFarmer(ctx context.Context, callerUID string) ([]model.Offer, error)
	Get(ctx context.Context, id string) (*model.Offer, error)
}

type offerService struct {
	store repository.Store
	opts  Options
}

func NewOfferService(store repository.Store, opts Options) OfferService {
	return &offerService{store: store, opts: opts.withDefaults()}
}

// Create stores a new Active offer with all of its quantity available.
// Numeric fields are taken as given.
func (s *offerService) Create(ctx context.Context, callerUID string, in CreateOfferInput) (*model.Offer, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	var created *model.Offer
	err = s.store.RunInTx(ctx, func(tx repository.Tx) error {
		if _, err := AuthorizeRole(ctx, tx.Users(), uid, ErrFarmerRequired, model.UserRoleFarmer, model.UserRoleAdmin); err != nil {
			return err
		}
		now := s.opts.Now()
		o := &model.Offer{
			ID:                s.opts.IDs.NewID("offer"),
			FarmerUID:         uid,
			ProductName:       strings.TrimSpace(in.ProductName),
			ProductType:       in.ProductType,
			ProductTypeOther:  strings.TrimSpace(in.ProductTypeOther),
			Description:       in.Description,
			HarvestDate:       strings.TrimSpace(in.HarvestDate),
			Location:          strings.TrimSpace(in.Location),
			QualityGrade:      in.QualityGrade,
			QualityCertifier:  strings.TrimSpace(in.QualityCertifier),
			TotalQuantity:     in.TotalQuantity,
			AvailableQuantity: in.TotalQuantity,
			PricePerKg:        in.PricePerKg,
			MinimumInvestment: in.MinimumInvestment,
			ImageURL:          in.ImageURL,
			Status:            model.OfferStatusActive,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.Offers().Save(ctx, o); err != nil {
			return fmt.Errorf("save offer: %w", err)
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.opts.Metrics.OfferCreated()
	s.opts.Logger.Info("offer created",
		zap.String("offer_id", created.ID),
		zap.String("farmer_uid", created.FarmerUID),
		zap.Uint64("total_quantity", created.TotalQuantity))
	return created, nil
}

func (s *offerService) ListActive(ctx context.Context) ([]model.Offer, error) {
	return s.list(ctx, repository.OfferFilter{Status: model.OfferStatusActive})
}

func (s *offerService) ListByFarmer(ctx context.Context, callerUID string) ([]model.Offer, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.OfferFilter{FarmerUID: uid})
}

// Get returns nil without error when the offer does not exist.
func (s *offerService) Get(ctx context.Context, id string) (*model.Offer, error) {
	var o *model.Offer
	err := s.store.View(ctx, func(tx repository.Tx) error {
		found, err := tx.Offers().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("load offer: %w", err)
		}
		o = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *offerService) list(ctx context.Context, f repository.OfferFilter) ([]model.Offer, error) {
	var list []model.Offer
	err := s.store.View(ctx, func(tx repository.Tx) error {
		offers, err := tx.Offers().List(ctx, f)
		if err != nil {
			return fmt.Errorf("list offers: %w", err)
		}
		list = offers
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
