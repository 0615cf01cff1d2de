package jwtx

import (
	"fmt"
	"time"
)

// Codec issues and verifies all token types this service deals with.
//
// Access tokens are RS256 so other services can verify them against the
// published JWKS. Refresh and email-verification tokens are HS256 with
// separate secrets because nobody outside this service ever inspects them.
type Codec struct {
	issuer string

	accessSigner *RS256Signer
	accessVerify *RS256Verifier

	signers   map[TokenType]Signer
	verifiers map[TokenType]Verifier
}

// NewCodec wires up signers and verifiers for every token type.
// accessKeyPEM holds the RSA private key (PKCS1 or PKCS8).
func NewCodec(issuer string, accessKeyPEM, refreshSecret, emailSecret []byte) (*Codec, error) {
	accessSigner, err := newRS256Signer(accessKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("access signer: %w", err)
	}

	refreshSigner, err := newHS256Signer("refresh-1", refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("refresh signer: %w", err)
	}

	emailSigner, err := newHS256Signer("email-1", emailSecret)
	if err != nil {
		return nil, fmt.Errorf("email signer: %w", err)
	}

	c := &Codec{
		issuer:       issuer,
		accessSigner: accessSigner,
		accessVerify: NewVerifierRS256(accessSigner.pub, issuer),
		signers: map[TokenType]Signer{
			TokenAccess:            accessSigner,
			TokenRefresh:           refreshSigner,
			TokenEmailVerification: emailSigner,
		},
	}
	c.verifiers = map[TokenType]Verifier{
		TokenAccess:            c.accessVerify,
		TokenRefresh:           NewVerifierHS256(refreshSecret, issuer),
		TokenEmailVerification: NewVerifierHS256(emailSecret, issuer),
	}
	return c, nil
}

// Issue signs a token of the given type for a subject.
func (c *Codec) Issue(subject string, typ TokenType, ttl time.Duration) (string, error) {
	signer, ok := c.signers[typ]
	if !ok {
		return "", fmt.Errorf("jwtx: unknown token type %q", typ)
	}
	claims := NewClaims(subject, typ, ttl, c.issuer, time.Now().UTC())
	return signer.Sign(claims)
}

// Verify checks a token against the expected type and returns its subject.
//
// Failure ordering is fixed: a bad signature wins over everything, then a
// type tag mismatch, then expiry. A structurally valid token of the wrong
// type therefore always reports ErrTypeMismatch even though it was signed
// with a different key.
func (c *Codec) Verify(tokenStr string, want TokenType) (string, error) {
	claims, err := c.verify(tokenStr, want)
	if err != nil {
		return "", err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// VerifyAllowExpired behaves like Verify but tolerates an expired token.
// Used when rotating or revoking a session, where the caller proves
// possession of the old token rather than its freshness.
func (c *Codec) VerifyAllowExpired(tokenStr string, want TokenType) (string, error) {
	claims, err := c.verify(tokenStr, want)
	if err != nil {
		return "", err
	}
	if err := claims.ValidateExpiry(); err != nil && err != ErrExpired {
		return "", err
	}
	return claims.Subject, nil
}

func (c *Codec) verify(tokenStr string, want TokenType) (Claims, error) {
	verifier, ok := c.verifiers[want]
	if !ok {
		return Claims{}, fmt.Errorf("jwtx: unknown token type %q", want)
	}

	claims, err := verifier.Verify(tokenStr)
	if err != nil {
		// Tokens of another type are signed with another key, so they land
		// here as signature failures. Report them as the type mismatch they
		// actually are.
		if typ, ok := peekTokenType(tokenStr); ok && typ != want {
			return Claims{}, ErrTypeMismatch
		}
		return Claims{}, err
	}

	if claims.TokenType != want {
		return Claims{}, ErrTypeMismatch
	}
	return claims, nil
}

// AccessPublicJWK exposes the access-token verification key for the JWKS
// endpoint.
func (c *Codec) AccessPublicJWK() JWK {
	return c.accessSigner.PublicJWK()
}

// Issuer returns the configured issuer string.
func (c *Codec) Issuer() string {
	return c.issuer
}
