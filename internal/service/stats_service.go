package service

import (
	"context"
	"fmt"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
)

type StatsService interface {
	Platform(ctx context.Context) (*model.PlatformStats, error)
}

type statsService struct {
	store repository.Store
}

func NewStatsService(store repository.Store) StatsService {
	return &statsService{store: store}
}

// Platform counts every collection at call time from one consistent view.
func (s *statsService) Platform(ctx context.Context) (*model.PlatformStats, error) {
	var st model.PlatformStats
	err := s.store.View(ctx, func(tx repository.Tx) error {
		users, err := tx.Users().List(ctx, repository.UserFilter{})
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		offers, err := tx.Offers().List(ctx, repository.OfferFilter{})
		if err != nil {
			return fmt.Errorf("count offers: %w", err)
		}
		reqs, err := tx.Requests().List(ctx, repository.RequestFilter{})
		if err != nil {
			return fmt.Errorf("count requests: %w", err)
		}
		txns, err := tx.Transactions().List(ctx, repository.TransactionFilter{})
		if err != nil {
			return fmt.Errorf("count transactions: %w", err)
		}
		st.TotalUsers = uint64(len(users))
		st.TotalOffers = uint64(len(offers))
		st.TotalRequests = uint64(len(reqs))
		st.TotalTransactions = uint64(len(txns))
		for i := range offers {
			if offers[i].Status == model.OfferStatusActive {
				st.ActiveOffers++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}
