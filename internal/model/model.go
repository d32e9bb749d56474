// Package model holds the four persisted marketplace entities. Struct tags
// drive gorm migrations; the in-memory stores use the same types as values.
package model

// All returns the migratable models.
func All() []interface{} {
	return []interface{}{&User{}, &Offer{}, &InvestmentRequest{}, &Transaction{}}
}
