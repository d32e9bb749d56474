package memory

import (
	"context"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
)

type transaction struct {
	state    state
	readOnly bool
}

func (tx *transaction) Users() repository.UserRepository { return userRepo{tx} }
func (tx *transaction) Offers() repository.OfferRepository { return offerRepo{tx} }
func (tx *transaction) Requests() repository.InvestmentRequestRepository { return requestRepo{tx} }
func (tx *transaction) Transactions() repository.TransactionRepository { return transactionRepo{tx} }

type userRepo struct{ tx *transaction }

func (r userRepo) FindByID(_ context.Context, uid string) (*model.User, error) {
	u, ok := r.tx.state.users[uid]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &u, nil
}

func (r userRepo) Save(_ context.Context, u *model.User) error {
	if r.tx.readOnly {
		return ErrReadOnly
	}
	r.tx.state.users[u.UID] = *u
	return nil
}

func (r userRepo) List(_ context.Context, f repository.UserFilter) ([]model.User, error) {
	return listUsers(r.tx.state.users, f), nil
}

type offerRepo struct{ tx *transaction }

func (r offerRepo) FindByID(_ context.Context, id string) (*model.Offer, error) {
	o, ok := r.tx.state.offers[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &o, nil
}

func (r offerRepo) Save(_ context.Context, o *model.Offer) error {
	if r.tx.readOnly {
		return ErrReadOnly
	}
	r.tx.state.offers[o.ID] = *o
	return nil
}

func (r offerRepo) List(_ context.Context, f repository.OfferFilter) ([]model.Offer, error) {
	return listOffers(r.tx.state.offers, f), nil
}

type requestRepo struct{ tx *transaction }

func (r requestRepo) FindByID(_ context.Context, id string) (*model.InvestmentRequest, error) {
	req, ok := r.tx.state.requests[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &req, nil
}

func (r requestRepo) Save(_ context.Context, req *model.InvestmentRequest) error {
	if r.tx.readOnly {
		return ErrReadOnly
	}
	r.tx.state.requests[req.ID] = *req
	return nil
}

func (r requestRepo) List(_ context.Context, f repository.RequestFilter) ([]model.InvestmentRequest, error) {
	return listRequests(r.tx.state.requests, f), nil
}

type transactionRepo struct{ tx *transaction }

func (r transactionRepo) FindByID(_ context.Context, id string) (*model.Transaction, error) {
	t, ok := r.tx.state.transactions[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &t, nil
}

func (r transactionRepo) Save(_ context.Context, t *model.Transaction) error {
	if r.tx.readOnly {
		return ErrReadOnly
	}
	r.tx.state.transactions[t.ID] = *t
	return nil
}

func (r transactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]model.Transaction, error) {
	return listTransactions(r.tx.state.transactions, f), nil
}
