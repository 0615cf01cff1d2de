package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks a token's signature and structure and returns its claims.
// Claim-level checks (type tag, expiry) are layered on top by the Codec so
// that error precedence is deterministic: signature > type > expiry.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrTypeMismatch = errors.New("jwtx: token type mismatch")
)

// mapParseError folds golang-jwt parse failures into our stable error kinds
// so nothing library-specific leaks past this package.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	default:
		return ErrMalformed
	}
}

// peekTokenType decodes the claims without verifying the signature, only to
// report a more useful error kind when verification with the expected key
// failed. The value is attacker-controlled and must never be trusted for
// anything beyond error classification.
func peekTokenType(tokenStr string) (TokenType, bool) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return "", false
	}
	if claims.TokenType == "" {
		return "", false
	}
	return claims.TokenType, true
}
