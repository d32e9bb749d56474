package repository

import (
	"context"
	"errors"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned by FindByID on every store implementation.
var ErrRecordNotFound = gorm.ErrRecordNotFound

var ErrDBNotReady = errors.New("database not initialized")

// Store groups the four entity collections behind a unit of work.
//
// RunInTx executes fn as one serialized unit: either every Save made through
// tx becomes visible, or none does. View gives read-only access.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
	View(ctx context.Context, fn func(tx Tx) error) error
}

type Tx interface {
	Users() UserRepository
	Offers() OfferRepository
	Requests() InvestmentRequestRepository
	Transactions() TransactionRepository
}

type UserRepository interface {
	FindByID(ctx context.Context, uid string) (*model.User, error)
	Save(ctx context.Context, u *model.User) error
	List(ctx context.Context, f UserFilter) ([]model.User, error)
}

type OfferRepository interface {
	FindByID(ctx context.Context, id string) (*model.Offer, error)
	Save(ctx context.Context, o *model.Offer) error
	List(ctx context.Context, f OfferFilter) ([]model.Offer, error)
}

type InvestmentRequestRepository interface {
	FindByID(ctx context.Context, id string) (*model.InvestmentRequest, error)
	Save(ctx context.Context, r *model.InvestmentRequest) error
	List(ctx context.Context, f RequestFilter) ([]model.InvestmentRequest, error)
}

type TransactionRepository interface {
	FindByID(ctx context.Context, id string) (*model.Transaction, error)
	Save(ctx context.Context, t *model.Transaction) error
	List(ctx context.Context, f TransactionFilter) ([]model.Transaction, error)
}
