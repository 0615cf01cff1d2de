package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Hellmakima/instagram/internal/auth/domain"
	"github.com/Hellmakima/instagram/internal/auth/store"
	"github.com/Hellmakima/instagram/pkg/cryptox"
	"github.com/Hellmakima/instagram/pkg/slogx"
)

// UserService covers account status mutations outside the login/token flows.
// All credential store writes go through these operations, never through ad
// hoc field updates.
type UserService struct {
	Store store.Store

	Audit *slog.Logger
}

func (s *UserService) audit() *slog.Logger {
	if s.Audit != nil {
		return s.Audit
	}
	return slog.Default().With("log", "security")
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ChangePassword swaps the password hash after re-verifying the current
// password. Every refresh token the user holds is revoked, so other devices
// must log in again with the new password.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if err := cryptox.VerifyPassword(current, user.PasswordHash); err != nil {
		s.audit().Warn("password change denied",
			"reason", "current password mismatch",
			"user_id", userID,
		)
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllForUser(ctx, userID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password changed", "user_id", userID)
	return nil
}

// Suspend sets a suspension deadline and revokes every live session. Login
// is denied until the deadline passes.
func (s *UserService) Suspend(ctx context.Context, userID string, till time.Time) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SuspendUser(ctx, userID, till); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllForUser(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.audit().Warn("user suspended", "user_id", userID, "till", till)
	return nil
}

// SoftDelete flags the account deleted and revokes every live session. The
// row survives for audit; nothing un-deletes it here.
func (s *UserService) SoftDelete(ctx context.Context, userID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SoftDeleteUser(ctx, userID); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllForUser(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.audit().Warn("user soft-deleted", "user_id", userID)
	return nil
}
