package service

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateRequestInput struct {
	OfferID           string
	RequestedQuantity uint64
	OfferedPricePerKg float64
	Message           string
}

type RequestService interface {
	Create(ctx context.Context, callerUID string, in CreateRequestInput) (*model.InvestmentRequest, error)
	ListForOffer(ctx context.Context, callerUID, offerID string) ([]model.InvestmentRequest, error)
	ListByInvestor(ctx context.Context, callerUID string) ([]model.InvestmentRequest, error)
}

type requestService struct {
	store repository.Store
	opts  Options
}

func NewRequestService(store repository.Store, opts Options) RequestService {
	return &requestService{store: store, opts: opts.withDefaults()}
}

// Create records a Pending request against an Active offer that still has
// the requested quantity available.
func (s *requestService) Create(ctx context.Context, callerUID string, in CreateRequestInput) (*model.InvestmentRequest, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	var created *model.InvestmentRequest
	err = s.store.RunInTx(ctx, func(tx repository.Tx) error {
		if _, err := AuthorizeRole(ctx, tx.Users(), uid, ErrInvestorRequired, model.UserRoleInvestor, model.UserRoleAdmin); err != nil {
			return err
		}
		offer, _, err := offerOwner(ctx, tx.Offers(), in.OfferID)
		if err != nil {
			return err
		}
		if offer == nil || offer.Status != model.OfferStatusActive || offer.AvailableQuantity < in.RequestedQuantity {
			return ErrInvalidOffer
		}
		now := s.opts.Now()
		r := &model.InvestmentRequest{
			ID:                s.opts.IDs.NewID("req"),
			OfferID:           offer.ID,
			InvestorUID:       uid,
			RequestedQuantity: in.RequestedQuantity,
			OfferedPricePerKg: in.OfferedPricePerKg,
			TotalOffered:      TotalOffered(in.RequestedQuantity, in.OfferedPricePerKg),
			Message:           in.Message,
			Status:            model.RequestStatusPending,
			CreatedAt:         now,
			UpdatedAt:         now,
			ExpiresAt:         now.Add(model.RequestTTL),
		}
		if err := tx.Requests().Save(ctx, r); err != nil {
			return fmt.Errorf("save request: %w", err)
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.opts.Metrics.RequestCreated()
	s.opts.Logger.Info("investment request created",
		zap.String("request_id", created.ID),
		zap.String("offer_id", created.OfferID),
		zap.String("investor_uid", created.InvestorUID),
		zap.Uint64("quantity", created.RequestedQuantity))
	return created, nil
}

// TotalOffered multiplies in decimal so that prices such as 4.5 do not pick
// up binary rounding before being stored.
func TotalOffered(quantity uint64, pricePerKg float64) float64 {
	q := decimal.NewFromBigInt(new(big.Int).SetUint64(quantity), 0)
	return q.Mul(decimal.NewFromFloat(pricePerKg)).InexactFloat64()
}

func (s *requestService) ListForOffer(ctx context.Context, callerUID, offerID string) ([]model.InvestmentRequest, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	var list []model.InvestmentRequest
	err = s.store.View(ctx, func(tx repository.Tx) error {
		_, owner, err := offerOwner(ctx, tx.Offers(), offerID)
		if err != nil {
			return err
		}
		if err := AuthorizeOwnership(uid, owner); err != nil {
			return err
		}
		reqs, err := tx.Requests().List(ctx, repository.RequestFilter{OfferID: offerID})
		if err != nil {
			return fmt.Errorf("list requests: %w", err)
		}
		list = reqs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *requestService) ListByInvestor(ctx context.Context, callerUID string) ([]model.InvestmentRequest, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	var list []model.InvestmentRequest
	err = s.store.View(ctx, func(tx repository.Tx) error {
		reqs, err := tx.Requests().List(ctx, repository.RequestFilter{InvestorUID: uid})
		if err != nil {
			return fmt.Errorf("list requests: %w", err)
		}
		list = reqs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
