package store

import (
	"context"
	"errors"
	"time"

	"github.com/Hellmakima/instagram/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories keep concerns tidy and
// make it harder to accidentally nest transactions.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh
	// rotation). The caller MUST call Commit() or Rollback() on the
	// returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id, including soft-deleted rows so
	// callers can distinguish deleted from absent.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByIdentifier looks up a verified-or-not account by username or
	// email. Used during login and registration conflict checks.
	GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// VerifiedExists reports whether a verified account already holds the
	// username or email.
	VerifiedExists(ctx context.Context, username, email string) (bool, error)

	// MarkVerified flips is_verified, clears delete_at and bumps updated_at.
	MarkVerified(ctx context.Context, userID string) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SuspendUser sets suspended_till.
	SuspendUser(ctx context.Context, userID string, till time.Time) error

	// SoftDeleteUser flags the account deleted without dropping the row.
	SoftDeleteUser(ctx context.Context, userID string) error

	// DeleteExpiredUnverifiedUsers removes unverified accounts whose
	// delete_at deadline has passed. Returns the number of rows removed.
	DeleteExpiredUnverifiedUsers(ctx context.Context, now time.Time) (int64, error)
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the record for a token fingerprint
	// regardless of state. Rotation checks Revoked/ExpiresAt itself so it
	// can tell reuse apart from absence.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken marks a single record revoked.
	RevokeRefreshToken(ctx context.Context, id string) error

	// RevokeAllForUser revokes every live token a user holds. Used on
	// suspension and account deletion.
	RevokeAllForUser(ctx context.Context, userID string) error

	// DeleteRefreshTokenByHash removes a record outright (logout).
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error

	// DeleteExpired removes tokens expired or revoked for longer than the
	// retention window. Returns the number of rows removed.
	DeleteExpired(ctx context.Context, now time.Time, retention time.Duration) (int64, error)
}
