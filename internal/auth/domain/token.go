package domain

import "time"

// TokenPair is what a successful login or refresh returns: a short-lived
// JWT access token and an opaque-to-the-client refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"` // typically "Bearer"
	ExpiresIn    int64  `json:"expires_in"`           // seconds until the access token expires
}

// RefreshToken models the stored refresh token record. The token itself is
// never persisted; TokenHash holds its base64url SHA-256 fingerprint.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether this record can still be redeemed for rotation.
func (t RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
