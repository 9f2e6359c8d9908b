package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgair_backend/internal/feature/auth/domain/entity"
	"orgair_backend/internal/feature/auth/usecase"
)

// setupTestRedis creates a miniredis-backed client for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// newTestSession creates a session entity for testing.
func newTestSession(id string, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    uuid.New(),
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestSessionRedis_CreateAndFind(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	s := newTestSession("tok-1", time.Hour)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.FindByID(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)
	assert.Equal(t, "test-agent", got.UserAgent)
	assert.Nil(t, got.RevokedAt)
}

func TestSessionRedis_Create_AlreadyExpired(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	err := repo.Create(context.Background(), newTestSession("tok-1", -time.Minute))
	assert.Error(t, err)
}

func TestSessionRedis_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	_, err := repo.FindByID(context.Background(), "absent")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_ExpiresWithTTL(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestSession("tok-1", time.Minute)))
	mr.FastForward(2 * time.Minute)

	_, err := repo.FindByID(ctx, "tok-1")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestSession("tok-1", time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "tok-1"))

	// The session stays readable for auditability but is marked revoked.
	got, err := repo.FindByID(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	assert.True(t, got.IsRevoked())

	// Revoking twice is harmless.
	assert.NoError(t, repo.Revoke(ctx, "tok-1"))
}

func TestSessionRedis_Revoke_NotFound(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	err := repo.Revoke(context.Background(), "absent")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}
