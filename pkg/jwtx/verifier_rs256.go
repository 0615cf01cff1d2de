package jwtx

import (
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// RS256Verifier validates token signatures using an RSA public key.
type RS256Verifier struct {
	pub    *rsa.PublicKey
	issuer string
}

// NewVerifierRS256 creates a verifier for RS256-signed tokens.
func NewVerifierRS256(pub *rsa.PublicKey, issuer string) *RS256Verifier {
	return &RS256Verifier{pub: pub, issuer: issuer}
}

// Verify checks signature and structure and returns the parsed claims.
// Expiry is intentionally not validated here; see Verifier.
func (v *RS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.pub, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	return *claims, nil
}
