package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hellmakima/instagram/internal/auth/domain"
	"github.com/Hellmakima/instagram/internal/auth/store"
	"github.com/Hellmakima/instagram/internal/auth/store/drivers/sqlite"
	"github.com/Hellmakima/instagram/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "auth.db")
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser(verified bool) domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	u := domain.User{
		ID:           idx.New().String(),
		Username:     "alice_" + idx.New().String(),
		Email:        idx.New().String() + "@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		IsVerified:   verified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !verified {
		deleteAt := now.Add(6 * time.Hour)
		u.DeleteAt = &deleteAt
	}
	return u
}

func TestUsersCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, got.Username)
	require.Equal(t, u.Email, got.Email)
	require.True(t, got.IsVerified)
	require.Nil(t, got.DeleteAt)

	byName, err := s.Users().GetUserByIdentifier(ctx, u.Username)
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	byEmail, err := s.Users().GetUserByIdentifier(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestUsersNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().GetUserByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByIdentifier(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersVerifiedUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, first))

	t.Run("verified duplicate username rejected", func(t *testing.T) {
		dup := newTestUser(true)
		dup.Username = first.Username
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unverified duplicate allowed", func(t *testing.T) {
		dup := newTestUser(false)
		dup.Username = first.Username
		require.NoError(t, s.Users().CreateUser(ctx, dup))
	})

	t.Run("verifying the duplicate collides", func(t *testing.T) {
		dup := newTestUser(false)
		dup.Username = first.Username
		require.NoError(t, s.Users().CreateUser(ctx, dup))

		err := s.Users().MarkVerified(ctx, dup.ID)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestUsersVerifiedExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	verified := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, verified))
	unverified := newTestUser(false)
	require.NoError(t, s.Users().CreateUser(ctx, unverified))

	exists, err := s.Users().VerifiedExists(ctx, verified.Username, "other@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = s.Users().VerifiedExists(ctx, "other", verified.Email)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = s.Users().VerifiedExists(ctx, unverified.Username, unverified.Email)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestUsersMarkVerified(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(false)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().MarkVerified(ctx, u.ID))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.IsVerified)
	require.Nil(t, got.DeleteAt)
}

func TestUsersSuspendAndSoftDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	till := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, s.Users().SuspendUser(ctx, u.ID, till))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SuspendedTill)
	require.True(t, got.Suspended(time.Now().UTC()))

	require.NoError(t, s.Users().SoftDeleteUser(ctx, u.ID))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.IsDeleted)
	require.False(t, got.CanLogin(time.Now().UTC()))
}

func TestDeleteExpiredUnverifiedUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	expired := newTestUser(false)
	past := time.Now().UTC().Add(-time.Hour)
	expired.DeleteAt = &past
	require.NoError(t, s.Users().CreateUser(ctx, expired))

	pending := newTestUser(false)
	require.NoError(t, s.Users().CreateUser(ctx, pending))

	verified := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, verified))

	n, err := s.Users().DeleteExpiredUnverifiedUsers(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Users().GetUserByID(ctx, expired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByID(ctx, pending.ID)
	require.NoError(t, err)
}
