package model

type PlatformStats struct {
	TotalUsers        uint64
	TotalOffers       uint64
	TotalRequests     uint64
	TotalTransactions uint64
	ActiveOffers      uint64
}
