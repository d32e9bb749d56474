package service

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors below wrap a kind, so callers can match
// either level with errors.Is.
var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyRegistered = errors.New("user already registered")
	ErrInvalidOffer      = errors.New("invalid offer or insufficient quantity")
	ErrAlreadyProcessed  = errors.New("request already processed")
	ErrInvalidInput      = errors.New("invalid input")
)

var (
	ErrAdminRequired    = fmt.Errorf("%w: admin access required", ErrForbidden)
	ErrFarmerRequired   = fmt.Errorf("%w: farmer role required", ErrForbidden)
	ErrInvestorRequired = fmt.Errorf("%w: investor role required", ErrForbidden)
	ErrNotOfferOwner    = fmt.Errorf("%w: not offer owner", ErrForbidden)

	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrRequestNotFound = fmt.Errorf("investment request %w", ErrNotFound)
)
