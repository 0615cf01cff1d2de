package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/Hellmakima/instagram/internal/auth/domain"
	"github.com/Hellmakima/instagram/internal/auth/email"
	"github.com/Hellmakima/instagram/internal/auth/store"
	"github.com/Hellmakima/instagram/pkg/cryptox"
	"github.com/Hellmakima/instagram/pkg/idx"
	"github.com/Hellmakima/instagram/pkg/jwtx"
	"github.com/Hellmakima/instagram/pkg/slogx"
)

var (
	// ErrInvalidCredentials is the single denial every failed login gets,
	// whatever the underlying reason. The reason goes to the audit log only.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrUserExists is the generic registration conflict. It never says
	// whether username or email collided.
	ErrUserExists = errors.New("user_exists")

	ErrTokenExpired      = errors.New("token_expired")
	ErrTokenTypeMismatch = errors.New("token_type_mismatch")
	ErrTokenInvalid      = errors.New("token_invalid")
	ErrInvalidRefresh    = errors.New("invalid_refresh_token")
)

// AuthService implements registration, login, token rotation and logout.
type AuthService struct {
	Store  store.Store
	Codec  *jwtx.Codec
	Mailer email.Sender

	// Audit receives the precise denial reasons that API responses
	// deliberately withhold.
	Audit *slog.Logger

	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	EmailTokenTTL time.Duration
	UnverifiedTTL time.Duration

	// VerificationBaseURL is the public base for verification links,
	// e.g. https://auth.example.com.
	VerificationBaseURL string
}

func (s *AuthService) audit() *slog.Logger {
	if s.Audit != nil {
		return s.Audit
	}
	return slog.Default().With("log", "security")
}

// Register creates an unverified account and mails a verification link.
//
// Only a verified duplicate blocks registration. Unverified rows holding the
// same username or email may coexist; whichever verifies first wins and the
// rest are swept once their delete_at passes.
func (s *AuthService) Register(ctx context.Context, username, emailAddr, password string) error {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	exists, err := s.Store.Users().VerifiedExists(ctx, username, emailAddr)
	if err != nil {
		return err
	}
	if exists {
		s.audit().Warn("registration rejected",
			"reason", "verified duplicate",
			"username", username,
		)
		return ErrUserExists
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	deleteAt := now.Add(s.UnverifiedTTL)
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        emailAddr,
		PasswordHash: hash,
		DeleteAt:     &deleteAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return err
	}

	token, err := s.Codec.Issue(user.ID, jwtx.TokenEmailVerification, s.EmailTokenTTL)
	if err != nil {
		return err
	}
	link := s.VerificationBaseURL + "/v1/auth/verify-email?token=" + url.QueryEscape(token)

	// Mail delivery is best effort. The account exists either way and the
	// user can request a fresh link; failing the registration here would
	// leave a half-created impression for a transient relay problem.
	if err := s.Mailer.SendVerification(ctx, emailAddr, link); err != nil {
		l.Error("verification mail failed", "err", err, "user_id", user.ID)
	}

	l.Info("user registered", "user_id", user.ID)
	return nil
}

// VerifyEmail redeems an email-verification token and activates the account.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.Codec.Verify(token, jwtx.TokenEmailVerification)
	if err != nil {
		return mapTokenError(err)
	}

	if err := s.Store.Users().MarkVerified(ctx, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Account already swept or deleted.
			return ErrTokenInvalid
		case errors.Is(err, store.ErrAlreadyExists):
			// Someone else verified the same username or email first.
			s.audit().Warn("verification lost uniqueness race", "user_id", userID)
			return ErrUserExists
		default:
			return err
		}
	}

	slogx.FromContext(ctx).Info("email verified", "user_id", userID)
	return nil
}

// Login verifies credentials and issues a fresh token pair.
//
// Every failure path returns ErrInvalidCredentials and does comparable work,
// so the response neither names the failing check nor times differently for
// an unknown identifier.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.TokenPair, error) {
	now := time.Now().UTC()

	user, lookupErr := s.Store.Users().GetUserByIdentifier(ctx, identifier)
	if lookupErr != nil && !errors.Is(lookupErr, store.ErrNotFound) {
		return nil, lookupErr
	}
	found := lookupErr == nil

	hash := user.PasswordHash
	if !found {
		hash = dummyPasswordHash()
	}
	passwordOK := cryptox.VerifyPassword(password, hash) == nil

	deny := !found || !passwordOK ||
		user.IsBlocked || user.IsDeleted || !user.IsVerified ||
		user.Suspended(now)

	if deny {
		s.audit().Warn("login denied",
			"identifier", identifier,
			"found", found,
			"password_ok", found && passwordOK,
			"blocked", found && user.IsBlocked,
			"deleted", found && user.IsDeleted,
			"verified", found && user.IsVerified,
			"suspended", found && user.Suspended(now),
		)
		return nil, ErrInvalidCredentials
	}

	pair, record, err := s.issuePair(user.ID, now)
	if err != nil {
		return nil, err
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, record); err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("login succeeded", "user_id", user.ID)
	return pair, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued, atomically. A replayed token finds no active record and
// fails; of two concurrent rotations exactly one wins.
//
// The access token may be expired. It only proves which subject is asking;
// the ledger record is the authority.
func (s *AuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*domain.TokenPair, error) {
	now := time.Now().UTC()

	subject, err := s.Codec.VerifyAllowExpired(accessToken, jwtx.TokenAccess)
	if err != nil {
		return nil, mapTokenError(err)
	}

	refreshSubject, err := s.Codec.Verify(refreshToken, jwtx.TokenRefresh)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if refreshSubject != subject {
		s.audit().Warn("refresh token subject mismatch",
			"access_subject", subject,
			"refresh_subject", refreshSubject,
		)
		return nil, ErrInvalidRefresh
	}

	fp := cryptox.FingerprintToken(refreshToken)

	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		rt, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}
		if rt.UserID != subject || !rt.Active(now) {
			return ErrInvalidRefresh
		}

		// Revoke touches only live rows; the loser of a concurrent
		// rotation fails here and rolls back.
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, rt.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		newPair, record, err := s.issuePair(subject, now)
		if err != nil {
			return err
		}
		if err := tx.RefreshTokens().CreateRefreshToken(ctx, record); err != nil {
			return err
		}

		pair = newPair
		return nil
	})
	if err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("refresh token rotated", "user_id", subject)
	return pair, nil
}

// Logout removes the presented refresh token from the ledger. The access
// token may be expired; it is only used to attribute the logout in logs.
// Logout of an unknown token is a no-op, not an error.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	subject, err := s.Codec.VerifyAllowExpired(accessToken, jwtx.TokenAccess)
	if err != nil {
		return mapTokenError(err)
	}

	fp := cryptox.FingerprintToken(refreshToken)
	if err := s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("logout", "user_id", subject)
	return nil
}

// issuePair signs a new access and refresh token and builds the ledger
// record for the refresh token. The caller persists the record.
func (s *AuthService) issuePair(userID string, now time.Time) (*domain.TokenPair, domain.RefreshToken, error) {
	accessToken, err := s.Codec.Issue(userID, jwtx.TokenAccess, s.AccessTTL)
	if err != nil {
		return nil, domain.RefreshToken{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := s.Codec.Issue(userID, jwtx.TokenRefresh, s.RefreshTTL)
	if err != nil {
		return nil, domain.RefreshToken{}, fmt.Errorf("sign refresh token: %w", err)
	}

	record := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(refreshToken),
		ExpiresAt: now.Add(s.RefreshTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	pair := &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
	}
	return pair, record, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return ErrTokenExpired
	case errors.Is(err, jwtx.ErrTypeMismatch):
		return ErrTokenTypeMismatch
	default:
		return ErrTokenInvalid
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// dummyPasswordHash is verified against when the identifier matches no
// account, so missing and wrong-password logins cost the same.
func dummyPasswordHash() string {
	dummyHashOnce.Do(func() {
		h, err := cryptox.HashPassword("timing-equalizer-placeholder")
		if err == nil {
			dummyHash = h
		}
	})
	return dummyHash
}
