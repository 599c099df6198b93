package service

import (
	"context"
	"testing"

	"oilbooking/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	f := setupFixtures(t)
	svc := NewUserService(f.userRepo)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  "Trader",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), CreateUserRequest{
		Name:  "Other Alice",
		Email: "alice@example.com",
		Role:  "Manager",
	})
	require.Error(t, err)
}

func TestDeactivateUserKeepsRow(t *testing.T) {
	f := setupFixtures(t)
	svc := NewUserService(f.userRepo)

	user := f.seedUser(t, "Alice", "alice@example.com")

	require.NoError(t, svc.DeactivateUser(context.Background(), user.ID.String()))

	// Deactivation is soft: the row survives with the flag cleared
	var stored model.User
	require.NoError(t, f.db.First(&stored, "id = ?", user.ID).Error)
	require.False(t, stored.IsActive)
}

func TestDeactivatedUsersDropOutOfListing(t *testing.T) {
	f := setupFixtures(t)
	svc := NewUserService(f.userRepo)

	active := f.seedUser(t, "Alice", "alice@example.com")
	inactive := f.seedUser(t, "Bob", "bob@example.com")
	require.NoError(t, svc.DeactivateUser(context.Background(), inactive.ID.String()))

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, active.ID.String(), users[0].ID)
}

func TestToggleUserActiveFlipsFlag(t *testing.T) {
	f := setupFixtures(t)
	svc := NewUserService(f.userRepo)

	user := f.seedUser(t, "Alice", "alice@example.com")

	require.NoError(t, svc.ToggleUserActive(context.Background(), user.ID.String()))
	var stored model.User
	require.NoError(t, f.db.First(&stored, "id = ?", user.ID).Error)
	require.False(t, stored.IsActive)

	require.NoError(t, svc.ToggleUserActive(context.Background(), user.ID.String()))
	require.NoError(t, f.db.First(&stored, "id = ?", user.ID).Error)
	require.True(t, stored.IsActive)
}

func TestUserLookupMissingReturnsNotFound(t *testing.T) {
	f := setupFixtures(t)
	svc := NewUserService(f.userRepo)

	_, err := svc.GetUserByID(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
}
