package main

import (
	"context"
	"errors"
	"testing"

	"github.com/jvoverseas/intake_backend/models"
	"github.com/jvoverseas/intake_backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	users   map[string]*models.User
	findErr error
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.users[user.Email] = user
	return nil
}

func TestSeedAdmin(t *testing.T) {
	store := &memUsers{users: map[string]*models.User{}}

	created, err := seedAdmin(context.Background(), store, " Admin@Example.com ", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	u := store.users["admin@example.com"]
	require.NotNil(t, u)
	assert.Equal(t, models.RoleSuperAdmin, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("admin123")))

	created, err = seedAdmin(context.Background(), store, "admin@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, store.users, 1)
}

func TestSeedAdmin_Errors(t *testing.T) {
	_, err := seedAdmin(context.Background(), &memUsers{users: map[string]*models.User{}}, "", "x")
	assert.Error(t, err)

	boom := errors.New("no primary")
	_, err = seedAdmin(context.Background(), &memUsers{findErr: boom}, "a@example.com", "x")
	assert.ErrorIs(t, err, boom)
}
