package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"go.uber.org/zap"
)

// SettlementService accepts or rejects pending investment requests.
type SettlementService interface {
	Respond(ctx context.Context, callerUID, requestID string, accept bool) (*model.InvestmentRequest, error)
}

type settlementService struct {
	store repository.Store
	opts  Options
}

func NewSettlementService(store repository.Store, opts Options) SettlementService {
	return &settlementService{store: store, opts: opts.withDefaults()}
}

// Respond decides a Pending request. Acceptance decrements the offer,
// completes it when nothing is left and records a Confirmed transaction.
// All writes happen in one unit of work, so a failure at any step leaves
// request, offer and transactions untouched.
func (s *settlementService) Respond(ctx context.Context, callerUID, requestID string, accept bool) (*model.InvestmentRequest, error) {
	req, txn, err := s.respond(ctx, callerUID, requestID, accept)
	if err != nil {
		s.opts.Metrics.Settlement(OutcomeFailed)
		s.opts.Logger.Warn("settlement failed",
			zap.String("request_id", requestID),
			zap.String("caller_uid", callerUID),
			zap.Bool("accept", accept),
			zap.Error(err))
		return nil, err
	}
	if accept {
		s.opts.Metrics.Settlement(OutcomeAccepted)
		s.opts.Logger.Info("investment request accepted",
			zap.String("request_id", req.ID),
			zap.String("offer_id", req.OfferID),
			zap.String("transaction_id", txn.ID),
			zap.Uint64("quantity", txn.Quantity))
	} else {
		s.opts.Metrics.Settlement(OutcomeRejected)
		s.opts.Logger.Info("investment request rejected",
			zap.String("request_id", req.ID),
			zap.String("offer_id", req.OfferID))
	}
	return req, nil
}

func (s *settlementService) respond(ctx context.Context, callerUID, requestID string, accept bool) (*model.InvestmentRequest, *model.Transaction, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, nil, err
	}
	var (
		decided *model.InvestmentRequest
		created *model.Transaction
	)
	err = s.store.RunInTx(ctx, func(tx repository.Tx) error {
		req, err := tx.Requests().FindByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("load request: %w", err)
		}
		_, owner, err := offerOwner(ctx, tx.Offers(), req.OfferID)
		if err != nil {
			return err
		}
		if err := AuthorizeOwnership(uid, owner); err != nil {
			return err
		}
		if req.Status != model.RequestStatusPending {
			return ErrAlreadyProcessed
		}

		now := s.opts.Now()
		if !accept {
			req.Status = model.RequestStatusRejected
			req.UpdatedAt = now
			if err := tx.Requests().Save(ctx, req); err != nil {
				return fmt.Errorf("save request: %w", err)
			}
			decided = req
			return nil
		}

		req.Status = model.RequestStatusAccepted
		req.UpdatedAt = now

		offer, err := tx.Offers().FindByID(ctx, req.OfferID)
		if err != nil {
			return fmt.Errorf("reload offer: %w", err)
		}
		// Other requests may have been accepted since this one was made.
		if offer.Status != model.OfferStatusActive || offer.AvailableQuantity < req.RequestedQuantity {
			return ErrInvalidOffer
		}
		offer.AvailableQuantity -= req.RequestedQuantity
		if offer.AvailableQuantity == 0 {
			offer.Status = model.OfferStatusCompleted
		}
		offer.UpdatedAt = now
		if err := tx.Offers().Save(ctx, offer); err != nil {
			return fmt.Errorf("save offer: %w", err)
		}

		t := &model.Transaction{
			ID:          s.opts.IDs.NewID("txn"),
			OfferID:     req.OfferID,
			RequestID:   req.ID,
			FarmerUID:   uid,
			InvestorUID: req.InvestorUID,
			Quantity:    req.RequestedQuantity,
			PricePerKg:  req.OfferedPricePerKg,
			TotalAmount: req.TotalOffered,
			Status:      model.TransactionStatusConfirmed,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Transactions().Save(ctx, t); err != nil {
			return fmt.Errorf("save transaction: %w", err)
		}
		if err := tx.Requests().Save(ctx, req); err != nil {
			return fmt.Errorf("save request: %w", err)
		}
		decided, created = req, t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return decided, created, nil
}
