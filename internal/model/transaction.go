package model

import "time"

type TransactionStatus string

const (
	TransactionStatusConfirmed TransactionStatus = "Confirmed"
	TransactionStatusTokenized TransactionStatus = "Tokenized"
	TransactionStatusCompleted TransactionStatus = "Completed"
)

// Transaction records an accepted request. Farmer and investor are
// denormalized from the offer and request.
type Transaction struct {
	ID          string            `gorm:"column:id;primaryKey;size:64"`
	OfferID     string            `gorm:"column:offer_id;size:64;index;not null"`
	RequestID   string            `gorm:"column:request_id;size:64;uniqueIndex;not null"`
	FarmerUID   string            `gorm:"column:farmer_uid;size:128;index;not null"`
	InvestorUID string            `gorm:"column:investor_uid;size:128;index;not null"`
	Quantity    uint64            `gorm:"column:quantity;not null"`
	PricePerKg  float64           `gorm:"column:price_per_kg;not null"`
	TotalAmount float64           `gorm:"column:total_amount;not null"`
	Status      TransactionStatus `gorm:"column:status;size:16;not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;not null"`
	TokenizedAt *time.Time        `gorm:"column:tokenized_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
