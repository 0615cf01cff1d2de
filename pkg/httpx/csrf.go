package httpx

import (
	"crypto/subtle"
	"net/http"

	"github.com/Hellmakima/instagram/pkg/cryptox"
	"github.com/Hellmakima/instagram/pkg/slogx"
)

const (
	// CSRFCookieName holds the double-submit cookie. Not HttpOnly: the
	// client must be able to read it back into the header.
	CSRFCookieName = "csrf_token"

	// CSRFHeaderName is the request header the client echoes the cookie
	// value into.
	CSRFHeaderName = "X-CSRF-Token"
)

// MintCSRFToken generates a fresh CSRF token and sets it as a cookie.
// The returned value is also sent in the response body so non-browser
// clients can use it without cookie access.
func MintCSRFToken(w http.ResponseWriter, secure bool) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		Secure:   secure,
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// RequireCSRF enforces the double-submit check: the X-CSRF-Token header
// must match the csrf_token cookie. Only applied to state-changing
// endpoints that ride on cookies.
func RequireCSRF() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			cookie, err := r.Cookie(CSRFCookieName)
			if err != nil || cookie.Value == "" {
				log.Warn("csrf check failed", "reason", "missing cookie")
				writeCSRFError(w)
				return
			}

			header := r.Header.Get(CSRFHeaderName)
			if header == "" {
				log.Warn("csrf check failed", "reason", "missing header")
				writeCSRFError(w)
				return
			}

			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(header)) != 1 {
				log.Warn("csrf check failed", "reason", "token mismatch")
				writeCSRFError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeCSRFError(w http.ResponseWriter) {
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "csrf_verification_failed",
		"error_description": "CSRF token missing or invalid.",
	})
}
