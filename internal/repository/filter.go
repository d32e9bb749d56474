package repository

import (
	"github.com/shinyyama/harvestx-backend/internal/model"
	"gorm.io/gorm"
)

// Filters are plain values so that the SQL stores can turn them into WHERE
// clauses and the in-memory store can evaluate them with Match. Zero fields
// match everything.

type UserFilter struct {
	Role model.UserRole
}

func (f UserFilter) Match(u *model.User) bool {
	return f.Role == "" || u.Role == f.Role
}

func (f UserFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	return q
}

type OfferFilter struct {
	FarmerUID string
	Status    model.OfferStatus
}

func (f OfferFilter) Match(o *model.Offer) bool {
	if f.FarmerUID != "" && o.FarmerUID != f.FarmerUID {
		return false
	}
	return f.Status == "" || o.Status == f.Status
}

func (f OfferFilter) apply(q *gorm.DB) *gorm.DB {
	if f.FarmerUID != "" {
		q = q.Where("farmer_uid = ?", f.FarmerUID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

type RequestFilter struct {
	OfferID     string
	InvestorUID string
	Status      model.RequestStatus
}

func (f RequestFilter) Match(r *model.InvestmentRequest) bool {
	if f.OfferID != "" && r.OfferID != f.OfferID {
		return false
	}
	if f.InvestorUID != "" && r.InvestorUID != f.InvestorUID {
		return false
	}
	return f.Status == "" || r.Status == f.Status
}

func (f RequestFilter) apply(q *gorm.DB) *gorm.DB {
	if f.OfferID != "" {
		q = q.Where("offer_id = ?", f.OfferID)
	}
	if f.InvestorUID != "" {
		q = q.Where("investor_uid = ?", f.InvestorUID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

type TransactionFilter struct {
	FarmerUID   string
	InvestorUID string
}

func (f TransactionFilter) Match(t *model.Transaction) bool {
	if f.FarmerUID != "" && t.FarmerUID != f.FarmerUID {
		return false
	}
	return f.InvestorUID == "" || t.InvestorUID == f.InvestorUID
}

func (f TransactionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.FarmerUID != "" {
		q = q.Where("farmer_uid = ?", f.FarmerUID)
	}
	if f.InvestorUID != "" {
		q = q.Where("investor_uid = ?", f.InvestorUID)
	}
	return q
}
