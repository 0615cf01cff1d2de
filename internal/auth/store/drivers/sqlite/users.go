package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Hellmakima/instagram/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, password_hash, is_verified, is_blocked, is_deleted, delete_at, suspended_till, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u             domain.User
		deleteAt      sql.NullTime
		suspendedTill sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.IsVerified, &u.IsBlocked, &u.IsDeleted,
		&deleteAt, &suspendedTill,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.DeleteAt = mapNullTimePtr(deleteAt)
	u.SuspendedTill = mapNullTimePtr(suspendedTill)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByIdentifier matches username or email. When both a verified and an
// unverified row hold the identifier, the verified one wins.
func (r *usersRepo) GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE (username = ? OR email = ?)
		 ORDER BY is_verified DESC, created_at DESC
		 LIMIT 1`,
		identifier, identifier)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash,
		u.IsVerified, u.IsBlocked, u.IsDeleted,
		mapOptionalTime(u.DeleteAt), mapOptionalTime(u.SuspendedTill),
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *usersRepo) VerifiedExists(ctx context.Context, username, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users
		 WHERE is_verified = 1 AND is_deleted = 0 AND (username = ? OR email = ?)`,
		username, email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkVerified flips is_verified and clears the deletion deadline. The
// partial unique indexes fire here if another account verified the same
// username or email first.
func (r *usersRepo) MarkVerified(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET is_verified = 1, delete_at = NULL, updated_at = ?
		 WHERE id = ? AND is_deleted = 0`,
		time.Now().UTC(), userID)
	if err != nil {
		return mapConflict(err)
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) SuspendUser(ctx context.Context, userID string, till time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET suspended_till = ?, updated_at = ? WHERE id = ?`,
		till, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) SoftDeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_deleted = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) DeleteExpiredUnverifiedUsers(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM users
		 WHERE is_verified = 0 AND delete_at IS NOT NULL AND delete_at <= ?`,
		now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
