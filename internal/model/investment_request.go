package model

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusAccepted  RequestStatus = "Accepted"
	RequestStatusRejected  RequestStatus = "Rejected"
	RequestStatusExpired   RequestStatus = "Expired"
	RequestStatusCancelled RequestStatus = "Cancelled"
)

// RequestTTL is how long a request stays open before ExpiresAt.
const RequestTTL = 7 * 24 * time.Hour

type InvestmentRequest struct {
	ID                string        `gorm:"column:id;primaryKey;size:64"`
	OfferID           string        `gorm:"column:offer_id;size:64;index;not null"`
	InvestorUID       string        `gorm:"column:investor_uid;size:128;index;not null"`
	RequestedQuantity uint64        `gorm:"column:requested_quantity;not null"`
	OfferedPricePerKg float64       `gorm:"column:offered_price_per_kg;not null"`
	TotalOffered      float64       `gorm:"column:total_offered;not null"`
	Message           string        `gorm:"column:message;type:text"`
	Status            RequestStatus `gorm:"column:status;size:16;not null"`
	CreatedAt         time.Time     `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time     `gorm:"column:updated_at;not null"`
	ExpiresAt         time.Time     `gorm:"column:expires_at;not null"`
}

func (InvestmentRequest) TableName() string {
	return "investment_requests"
}
