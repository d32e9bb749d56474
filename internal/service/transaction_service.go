package service

import (
	"context"
	"fmt"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
)

type TransactionService interface {
	ListByFarmer(ctx context.Context, callerUID string) ([]model.Transaction, error)
	ListByInvestor(ctx context.Context, callerUID string) ([]model.Transaction, error)
}

type transactionService struct {
	store repository.Store
}

func NewTransactionService(store repository.Store) TransactionService {
	return &transactionService{store: store}
}

func (s *transactionService) ListByFarmer(ctx context.Context, callerUID string) ([]model.Transaction, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.TransactionFilter{FarmerUID: uid})
}

func (s *transactionService) ListByInvestor(ctx context.Context, callerUID string) ([]model.Transaction, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.TransactionFilter{InvestorUID: uid})
}

func (s *transactionService) list(ctx context.Context, f repository.TransactionFilter) ([]model.Transaction, error) {
	var list []model.Transaction
	err := s.store.View(ctx, func(tx repository.Tx) error {
		txns, err := tx.Transactions().List(ctx, f)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		list = txns
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
