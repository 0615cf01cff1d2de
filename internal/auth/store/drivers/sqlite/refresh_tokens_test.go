package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Hellmakima/instagram/internal/auth/domain"
	"github.com/Hellmakima/instagram/internal/auth/store"
	"github.com/Hellmakima/instagram/pkg/cryptox"
	"github.com/Hellmakima/instagram/pkg/idx"
)

func newTestRefreshToken(userID string) domain.RefreshToken {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(cryptox.MustGenerateToken(cryptox.TokenSize256)),
		ExpiresAt: now.Add(30 * 24 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRefreshTokensCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	rt := newTestRefreshToken(u.ID)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, rt))

	got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, rt.TokenHash)
	require.NoError(t, err)
	require.Equal(t, rt.ID, got.ID)
	require.Equal(t, u.ID, got.UserID)
	require.False(t, got.Revoked)
	require.True(t, got.Active(time.Now().UTC()))
}

func TestRefreshTokensDuplicateHashRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	rt := newTestRefreshToken(u.ID)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, rt))

	dup := newTestRefreshToken(u.ID)
	dup.TokenHash = rt.TokenHash
	err := s.RefreshTokens().CreateRefreshToken(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRefreshTokensRevokeOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	rt := newTestRefreshToken(u.ID)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, rt))

	require.NoError(t, s.RefreshTokens().RevokeRefreshToken(ctx, rt.ID))

	// Second revoke finds no live row.
	err := s.RefreshTokens().RevokeRefreshToken(ctx, rt.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, rt.TokenHash)
	require.NoError(t, err)
	require.True(t, got.Revoked)
	require.False(t, got.Active(time.Now().UTC()))
}

func TestRefreshTokensRevokeAllForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, u))
	other := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, other))

	mine1 := newTestRefreshToken(u.ID)
	mine2 := newTestRefreshToken(u.ID)
	theirs := newTestRefreshToken(other.ID)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, mine1))
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, mine2))
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, theirs))

	require.NoError(t, s.RefreshTokens().RevokeAllForUser(ctx, u.ID))

	for _, hash := range []string{mine1.TokenHash, mine2.TokenHash} {
		got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, hash)
		require.NoError(t, err)
		require.True(t, got.Revoked)
	}

	got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, theirs.TokenHash)
	require.NoError(t, err)
	require.False(t, got.Revoked)
}

func TestRefreshTokensDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	rt := newTestRefreshToken(u.ID)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, rt))

	require.NoError(t, s.RefreshTokens().DeleteRefreshTokenByHash(ctx, rt.TokenHash))
	_, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, rt.TokenHash)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting an absent hash is a no-op.
	require.NoError(t, s.RefreshTokens().DeleteRefreshTokenByHash(ctx, rt.TokenHash))
}

func TestRefreshTokensDeleteExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	now := time.Now().UTC().Truncate(time.Second)

	longExpired := newTestRefreshToken(u.ID)
	longExpired.ExpiresAt = now.Add(-48 * time.Hour)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, longExpired))

	staleRevoked := newTestRefreshToken(u.ID)
	staleRevoked.Revoked = true
	staleRevoked.UpdatedAt = now.Add(-48 * time.Hour)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, staleRevoked))

	// Expired, but still inside the retention window; kept for audit.
	recentlyExpired := newTestRefreshToken(u.ID)
	recentlyExpired.ExpiresAt = now.Add(-time.Hour)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, recentlyExpired))

	live := newTestRefreshToken(u.ID)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, live))

	n, err := s.RefreshTokens().DeleteExpired(ctx, now, 24*time.Hour)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, recentlyExpired.TokenHash)
	require.NoError(t, err)
	_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, live.TokenHash)
	require.NoError(t, err)
}

func TestWithTxCommitAndRollback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(true)
	require.NoError(t, s.Users().CreateUser(ctx, u))

	old := newTestRefreshToken(u.ID)
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, old))

	t.Run("commit persists rotation", func(t *testing.T) {
		replacement := newTestRefreshToken(u.ID)

		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.RefreshTokens().RevokeRefreshToken(ctx, old.ID); err != nil {
				return err
			}
			return tx.RefreshTokens().CreateRefreshToken(ctx, replacement)
		})
		require.NoError(t, err)

		got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, old.TokenHash)
		require.NoError(t, err)
		require.True(t, got.Revoked)

		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, replacement.TokenHash)
		require.NoError(t, err)
	})

	t.Run("error rolls everything back", func(t *testing.T) {
		replacement := newTestRefreshToken(u.ID)

		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.RefreshTokens().CreateRefreshToken(ctx, replacement); err != nil {
				return err
			}
			// Revoking an already revoked token fails and aborts the tx.
			return tx.RefreshTokens().RevokeRefreshToken(ctx, old.ID)
		})
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, replacement.TokenHash)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
