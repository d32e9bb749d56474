package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
)

// Guards are side-effect free and run before any write.

// Authenticate rejects the anonymous principal (empty uid).
func Authenticate(uid string) (string, error) {
	if strings.TrimSpace(uid) == "" {
		return "", ErrUnauthenticated
	}
	return uid, nil
}

// AuthorizeRole loads the caller's profile and returns denied unless its role
// is one of roles.
func AuthorizeRole(ctx context.Context, users repository.UserRepository, uid string, denied error, roles ...model.UserRole) (*model.User, error) {
	u, err := users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !u.HasRole(roles...) {
		return nil, denied
	}
	return u, nil
}

// AuthorizeOwnership compares the caller with an offer's farmer. A missing
// offer is passed as an empty owner and therefore never matches.
func AuthorizeOwnership(uid, owner string) error {
	if owner == "" || uid != owner {
		return ErrNotOfferOwner
	}
	return nil
}

// offerOwner returns the farmer of an offer, or "" when it does not exist.
func offerOwner(ctx context.Context, offers repository.OfferRepository, offerID string) (*model.Offer, string, error) {
	o, err := offers.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("load offer: %w", err)
	}
	return o, o.FarmerUID, nil
}
