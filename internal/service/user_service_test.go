package service

import (
	"context"
	"testing"

	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.users.Register(ctx, "", model.UserRoleFarmer, "F", "f@example.com")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	u, err := e.users.Register(ctx, "farmer-f", model.UserRoleFarmer, "  Green Valley ", "f@example.com")
	require.NoError(t, err)
	assert.Equal(t, "farmer-f", u.UID)
	assert.Equal(t, model.UserRoleFarmer, u.Role)
	assert.Equal(t, "Green Valley", u.DisplayName)
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	_, err = e.users.Register(ctx, "farmer-f", model.UserRoleInvestor, "F", "f@example.com")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestUserService_FirstAdminOnly(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.users.Register(ctx, "root", model.UserRoleAdmin, "Root", "root@example.com")
	require.NoError(t, err)

	_, err = e.users.Register(ctx, "mallory", model.UserRoleAdmin, "M", "m@example.com")
	assert.ErrorIs(t, err, ErrAdminRequired)

	me, err := e.users.GetCurrent(ctx, "mallory")
	require.NoError(t, err)
	assert.Nil(t, me)
}

func TestUserService_GetCurrent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.users.GetCurrent(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	u, err := e.users.GetCurrent(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)

	e.register(t, "investor-i", model.UserRoleInvestor)
	u, err = e.users.GetCurrent(ctx, "investor-i")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, model.UserRoleInvestor, u.Role)
}

func TestUserService_UpdateRoleAndList(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.register(t, "admin", model.UserRoleAdmin)
	e.register(t, "guest", model.UserRoleGuest)

	_, err := e.users.UpdateRole(ctx, "guest", "guest", model.UserRoleAdmin)
	assert.ErrorIs(t, err, ErrAdminRequired)

	_, err = e.users.UpdateRole(ctx, "stranger", "guest", model.UserRoleFarmer)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = e.users.UpdateRole(ctx, "admin", "missing", model.UserRoleFarmer)
	assert.ErrorIs(t, err, ErrUserNotFound)

	u, err := e.users.UpdateRole(ctx, "admin", "guest", model.UserRoleFarmer)
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleFarmer, u.Role)
	assert.True(t, u.UpdatedAt.After(u.CreatedAt))

	_, err = e.users.ListAll(ctx, "guest")
	assert.ErrorIs(t, err, ErrAdminRequired)

	all, err := e.users.ListAll(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "admin", all[0].UID)
	assert.Equal(t, "guest", all[1].UID)
}
