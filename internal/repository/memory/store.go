// Package memory provides an in-process store whose units of work are
// serialized by a single write lock. Each unit runs against a cloned state
// that replaces the live state only when the unit and the optional commit
// hook both succeed.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
)

// Compile-time contract assertion.
var _ repository.Store = (*Store)(nil)

var ErrReadOnly = errors.New("memory: write inside read-only view")

// Snapshot is the exportable form of the store state.
type Snapshot struct {
	Users        []model.User              `json:"users"`
	Offers       []model.Offer             `json:"offers"`
	Requests     []model.InvestmentRequest `json:"requests"`
	Transactions []model.Transaction       `json:"transactions"`
}

// CommitHook runs while the write lock is held, after a unit of work
// succeeded and before its state is published. A non-nil error discards the
// unit.
type CommitHook func(ctx context.Context, snapshot Snapshot) error

type Option func(*Store)

func WithCommitHook(hook CommitHook) Option {
	return func(s *Store) { s.commitHook = hook }
}

type Store struct {
	mu         sync.RWMutex
	state      state
	commitHook CommitHook
}

func NewStore(opts ...Option) *Store {
	s := &Store{state: newState()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunInTx executes fn within a transactional copy of the store state.
func (s *Store) RunInTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &transaction{state: s.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if s.commitHook != nil {
		if err := s.commitHook(ctx, tx.state.snapshot()); err != nil {
			return err
		}
	}
	s.state = tx.state
	return nil
}

// View executes fn against the live state under the read lock.
func (s *Store) View(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&transaction{state: s.state, readOnly: true})
}

func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot()
}

func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snapshot)
}

type state struct {
	users        map[string]model.User
	offers       map[string]model.Offer
	requests     map[string]model.InvestmentRequest
	transactions map[string]model.Transaction
}

func newState() state {
	return state{
		users:        map[string]model.User{},
		offers:       map[string]model.Offer{},
		requests:     map[string]model.InvestmentRequest{},
		transactions: map[string]model.Transaction{},
	}
}

// clone copies the maps; records are values, and their pointer fields
// (ImageURL, TokenizedAt) are never written through.
func (s state) clone() state {
	cp := state{
		users:        make(map[string]model.User, len(s.users)),
		offers:       make(map[string]model.Offer, len(s.offers)),
		requests:     make(map[string]model.InvestmentRequest, len(s.requests)),
		transactions: make(map[string]model.Transaction, len(s.transactions)),
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.offers {
		cp.offers[k] = v
	}
	for k, v := range s.requests {
		cp.requests[k] = v
	}
	for k, v := range s.transactions {
		cp.transactions[k] = v
	}
	return cp
}

func (s state) snapshot() Snapshot {
	return Snapshot{
		Users:        listUsers(s.users, repository.UserFilter{}),
		Offers:       listOffers(s.offers, repository.OfferFilter{}),
		Requests:     listRequests(s.requests, repository.RequestFilter{}),
		Transactions: listTransactions(s.transactions, repository.TransactionFilter{}),
	}
}

func stateFromSnapshot(snap Snapshot) state {
	st := newState()
	for _, u := range snap.Users {
		st.users[u.UID] = u
	}
	for _, o := range snap.Offers {
		st.offers[o.ID] = o
	}
	for _, r := range snap.Requests {
		st.requests[r.ID] = r
	}
	for _, t := range snap.Transactions {
		st.transactions[t.ID] = t
	}
	return st
}

// List order is creation order, ties broken by key, so full scans are
// stable across calls.

func listUsers(m map[string]model.User, f repository.UserFilter) []model.User {
	out := make([]model.User, 0, len(m))
	for _, u := range m {
		if f.Match(&u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UID < out[j].UID
	})
	return out
}

func listOffers(m map[string]model.Offer, f repository.OfferFilter) []model.Offer {
	out := make([]model.Offer, 0, len(m))
	for _, o := range m {
		if f.Match(&o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func listRequests(m map[string]model.InvestmentRequest, f repository.RequestFilter) []model.InvestmentRequest {
	out := make([]model.InvestmentRequest, 0, len(m))
	for _, r := range m {
		if f.Match(&r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func listTransactions(m map[string]model.Transaction, f repository.TransactionFilter) []model.Transaction {
	out := make([]model.Transaction, 0, len(m))
	for _, t := range m {
		if f.Match(&t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
