package repository

import (
	"context"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore runs units of work as database transactions. Rows read inside
// RunInTx are locked FOR UPDATE so concurrent settlements of the same request
// or offer queue behind each other.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	if s.db == nil {
		return ErrDBNotReady
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx, lock: true})
	})
}

func (s *GormStore) View(ctx context.Context, fn func(tx Tx) error) error {
	if s.db == nil {
		return ErrDBNotReady
	}
	return fn(&gormTx{db: s.db.WithContext(ctx)})
}

func (s *GormStore) Migrate(ctx context.Context) error {
	if s.db == nil {
		return ErrDBNotReady
	}
	return s.db.WithContext(ctx).AutoMigrate(model.All()...)
}

type gormTx struct {
	db   *gorm.DB
	lock bool
}

func (t *gormTx) Users() UserRepository {
	return &userRepository{db: t.db, lock: t.lock}
}

func (t *gormTx) Offers() OfferRepository {
	return &offerRepository{db: t.db, lock: t.lock}
}

func (t *gormTx) Requests() InvestmentRequestRepository {
	return &investmentRequestRepository{db: t.db, lock: t.lock}
}

func (t *gormTx) Transactions() TransactionRepository {
	return &transactionRepository{db: t.db, lock: t.lock}
}

func lookup(ctx context.Context, db *gorm.DB, lock bool) *gorm.DB {
	q := db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}
