package domain

import "time"

// User is a registered account. An account only becomes usable for login
// once IsVerified is set; unverified accounts carry a DeleteAt deadline and
// are swept by housekeeping if they never verify.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id encoded

	IsVerified bool
	IsBlocked  bool
	IsDeleted  bool

	// DeleteAt is set on unverified accounts; housekeeping removes the row
	// once the deadline passes without verification (nullable).
	DeleteAt *time.Time

	// SuspendedTill blocks login until the given time (nullable).
	SuspendedTill *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Suspended reports whether the user is under an active suspension.
// A suspension in the past no longer denies login.
func (u User) Suspended(now time.Time) bool {
	return u.SuspendedTill != nil && now.Before(*u.SuspendedTill)
}

// CanLogin reports whether this account is allowed to authenticate.
func (u User) CanLogin(now time.Time) bool {
	return u.IsVerified && !u.IsBlocked && !u.IsDeleted && !u.Suspended(now)
}
