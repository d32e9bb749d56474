package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, callerUID string, role model.UserRole, displayName, email string) (*model.User, error)
	GetCurrent(ctx context.Context, callerUID string) (*model.User, error)
	UpdateRole(ctx context.Context, callerUID, targetUID string, role model.UserRole) (*model.User, error)
	ListAll(ctx context.Context, callerUID string) ([]model.User, error)
}

type userService struct {
	store repository.Store
	opts  Options
}

func NewUserService(store repository.Store, opts Options) UserService {
	return &userService{store: store, opts: opts.withDefaults()}
}

// Register creates the caller's profile. Self-registration as Admin is only
// possible while the platform has no admin yet; later admins are promoted
// through UpdateRole.
func (s *userService) Register(ctx context.Context, callerUID string, role model.UserRole, displayName, email string) (*model.User, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	var created *model.User
	err = s.store.RunInTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.Users().FindByID(ctx, uid); err == nil {
			return ErrAlreadyRegistered
		} else if !errors.Is(err, repository.ErrRecordNotFound) {
			return fmt.Errorf("load user: %w", err)
		}
		if role == model.UserRoleAdmin {
			admins, err := tx.Users().List(ctx, repository.UserFilter{Role: model.UserRoleAdmin})
			if err != nil {
				return fmt.Errorf("list admins: %w", err)
			}
			if len(admins) > 0 {
				return ErrAdminRequired
			}
		}
		now := s.opts.Now()
		u := &model.User{
			UID:         uid,
			Role:        role,
			DisplayName: strings.TrimSpace(displayName),
			Email:       strings.TrimSpace(email),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Users().Save(ctx, u); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.opts.Logger.Info("user registered", zap.String("uid", created.UID), zap.String("role", string(created.Role)))
	return created, nil
}

// GetCurrent returns nil without error when the caller has not registered.
func (s *userService) GetCurrent(ctx context.Context, callerUID string) (*model.User, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	var u *model.User
	err = s.store.View(ctx, func(tx repository.Tx) error {
		found, err := tx.Users().FindByID(ctx, uid)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("load user: %w", err)
		}
		u = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) UpdateRole(ctx context.Context, callerUID, targetUID string, role model.UserRole) (*model.User, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	var updated *model.User
	err = s.store.RunInTx(ctx, func(tx repository.Tx) error {
		if _, err := AuthorizeRole(ctx, tx.Users(), uid, ErrAdminRequired, model.UserRoleAdmin); err != nil {
			return err
		}
		u, err := tx.Users().FindByID(ctx, targetUID)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}
		u.Role = role
		u.UpdatedAt = s.opts.Now()
		if err := tx.Users().Save(ctx, u); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.opts.Logger.Info("user role updated",
		zap.String("admin_uid", uid),
		zap.String("uid", updated.UID),
		zap.String("role", string(updated.Role)))
	return updated, nil
}

func (s *userService) ListAll(ctx context.Context, callerUID string) ([]model.User, error) {
	uid, err := Authenticate(callerUID)
	if err != nil {
		return nil, err
	}
	var list []model.User
	err = s.store.View(ctx, func(tx repository.Tx) error {
		if _, err := AuthorizeRole(ctx, tx.Users(), uid, ErrAdminRequired, model.UserRoleAdmin); err != nil {
			return err
		}
		users, err := tx.Users().List(ctx, repository.UserFilter{})
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		list = users
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
