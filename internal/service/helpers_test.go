package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"github.com/shinyyama/harvestx-backend/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s_%04d", prefix, g.n)
}

// tickClock advances one second per reading.
type tickClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type countingRecorder struct {
	mu          sync.Mutex
	offers      int
	requests    int
	settlements map[string]int
}

func (r *countingRecorder) OfferCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers++
}

func (r *countingRecorder) RequestCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests++
}

func (r *countingRecorder) Settlement(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settlements == nil {
		r.settlements = map[string]int{}
	}
	r.settlements[outcome]++
}

type env struct {
	store      *memory.Store
	metrics    *countingRecorder
	users      UserService
	offers     OfferService
	requests   RequestService
	settlement SettlementService
	txns       TransactionService
	stats      StatsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	rec := &countingRecorder{}
	clock := &tickClock{now: t0}
	opts := Options{Now: clock.Now, IDs: &seqIDs{}, Metrics: rec}
	return &env{
		store:      store,
		metrics:    rec,
		users:      NewUserService(store, opts),
		offers:     NewOfferService(store, opts),
		requests:   NewRequestService(store, opts),
		settlement: NewSettlementService(store, opts),
		txns:       NewTransactionService(store),
		stats:      NewStatsService(store),
	}
}

func (e *env) register(t *testing.T, uid string, role model.UserRole) {
	t.Helper()
	_, err := e.users.Register(context.Background(), uid, role, uid, uid+"@example.com")
	require.NoError(t, err)
}

func (e *env) createOffer(t *testing.T, farmer string, total uint64, price float64) *model.Offer {
	t.Helper()
	o, err := e.offers.Create(context.Background(), farmer, CreateOfferInput{
		ProductName:       "Organic Tomatoes",
		ProductType:       model.ProductTypeVegetables,
		HarvestDate:       "2024-09-15",
		Location:          "California, USA",
		QualityGrade:      model.QualityGradeOrganic,
		TotalQuantity:     total,
		PricePerKg:        price,
		MinimumInvestment: 10,
	})
	require.NoError(t, err)
	return o
}

func (e *env) createRequest(t *testing.T, investor, offerID string, qty uint64, price float64) *model.InvestmentRequest {
	t.Helper()
	r, err := e.requests.Create(context.Background(), investor, CreateRequestInput{
		OfferID:           offerID,
		RequestedQuantity: qty,
		OfferedPricePerKg: price,
		Message:           "interested",
	})
	require.NoError(t, err)
	return r
}

func (e *env) offer(t *testing.T, id string) model.Offer {
	t.Helper()
	var o *model.Offer
	require.NoError(t, e.store.View(context.Background(), func(tx repository.Tx) error {
		var err error
		o, err = tx.Offers().FindByID(context.Background(), id)
		return err
	}))
	return *o
}
