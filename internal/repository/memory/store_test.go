package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

func saveOffer(t *testing.T, s *Store, o model.Offer) {
	t.Helper()
	require.NoError(t, s.RunInTx(context.Background(), func(tx repository.Tx) error {
		return tx.Offers().Save(context.Background(), &o)
	}))
}

func TestRunInTx_CommitsOnSuccess(t *testing.T) {
	s := NewStore()
	saveOffer(t, s, model.Offer{ID: "o1", FarmerUID: "f", TotalQuantity: 10, AvailableQuantity: 10, CreatedAt: t0})

	err := s.View(context.Background(), func(tx repository.Tx) error {
		o, err := tx.Offers().FindByID(context.Background(), "o1")
		require.NoError(t, err)
		assert.Equal(t, uint64(10), o.AvailableQuantity)
		return nil
	})
	require.NoError(t, err)
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	saveOffer(t, s, model.Offer{ID: "o1", AvailableQuantity: 10, CreatedAt: t0})

	boom := errors.New("boom")
	err := s.RunInTx(ctx, func(tx repository.Tx) error {
		o, err := tx.Offers().FindByID(ctx, "o1")
		require.NoError(t, err)
		o.AvailableQuantity = 0
		require.NoError(t, tx.Offers().Save(ctx, o))
		require.NoError(t, tx.Transactions().Save(ctx, &model.Transaction{ID: "t1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	snap := s.ExportState()
	require.Len(t, snap.Offers, 1)
	assert.Equal(t, uint64(10), snap.Offers[0].AvailableQuantity)
	assert.Empty(t, snap.Transactions)
}

func TestRunInTx_CommitHookFailureDiscardsUnit(t *testing.T) {
	ctx := context.Background()
	hookErr := errors.New("disk full")
	var seen []Snapshot
	fail := false
	s := NewStore(WithCommitHook(func(_ context.Context, snap Snapshot) error {
		if fail {
			return hookErr
		}
		seen = append(seen, snap)
		return nil
	}))
	saveOffer(t, s, model.Offer{ID: "o1", CreatedAt: t0})
	require.Len(t, seen, 1)
	assert.Len(t, seen[0].Offers, 1)

	fail = true
	err := s.RunInTx(ctx, func(tx repository.Tx) error {
		return tx.Offers().Save(ctx, &model.Offer{ID: "o2", CreatedAt: t0})
	})
	require.ErrorIs(t, err, hookErr)
	assert.Len(t, s.ExportState().Offers, 1)
}

func TestView_IsReadOnly(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	err := s.View(ctx, func(tx repository.Tx) error {
		return tx.Users().Save(ctx, &model.User{UID: "u"})
	})
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.Empty(t, s.ExportState().Users)
}

func TestFindByID_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	saveOffer(t, s, model.Offer{ID: "o1", AvailableQuantity: 5, CreatedAt: t0})

	require.NoError(t, s.View(ctx, func(tx repository.Tx) error {
		o, err := tx.Offers().FindByID(ctx, "o1")
		require.NoError(t, err)
		o.AvailableQuantity = 0
		return nil
	}))
	assert.Equal(t, uint64(5), s.ExportState().Offers[0].AvailableQuantity)

	require.NoError(t, s.View(ctx, func(tx repository.Tx) error {
		_, err := tx.Requests().FindByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrRecordNotFound)
		return nil
	}))
}

func TestList_FiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	saveOffer(t, s, model.Offer{ID: "b", FarmerUID: "f", Status: model.OfferStatusActive, CreatedAt: t0})
	saveOffer(t, s, model.Offer{ID: "a", FarmerUID: "f", Status: model.OfferStatusActive, CreatedAt: t0})
	saveOffer(t, s, model.Offer{ID: "c", FarmerUID: "g", Status: model.OfferStatusActive, CreatedAt: t0.Add(-time.Hour)})
	saveOffer(t, s, model.Offer{ID: "d", FarmerUID: "f", Status: model.OfferStatusCompleted, CreatedAt: t0.Add(time.Hour)})

	require.NoError(t, s.View(ctx, func(tx repository.Tx) error {
		all, err := tx.Offers().List(ctx, repository.OfferFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b", "d"}, offerIDs(all))

		active, err := tx.Offers().List(ctx, repository.OfferFilter{FarmerUID: "f", Status: model.OfferStatusActive})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, offerIDs(active))
		return nil
	}))
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewStore()
	called := false
	err := s.RunInTx(ctx, func(repository.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestImportExport(t *testing.T) {
	src := NewStore()
	saveOffer(t, src, model.Offer{ID: "o1", CreatedAt: t0})

	dst := NewStore()
	dst.ImportState(src.ExportState())
	assert.Equal(t, src.ExportState(), dst.ExportState())
}

func offerIDs(offers []model.Offer) []string {
	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
	}
	return ids
}
