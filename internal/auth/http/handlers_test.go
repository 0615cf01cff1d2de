package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authhttp "github.com/Hellmakima/instagram/internal/auth/http"
	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/internal/auth/store/drivers/sqlite"
	"github.com/Hellmakima/instagram/pkg/cryptox"
	"github.com/Hellmakima/instagram/pkg/jwtx"
)

// testClient drives the router like a browser: it keeps cookies and echoes
// the CSRF token header.
type testClient struct {
	t       *testing.T
	router  *authhttp.Router
	mailer  *recordingMailer
	cookies map[string]string
	csrf    string
}

type recordingMailer struct {
	links []string
}

func (m *recordingMailer) SendVerification(ctx context.Context, to, link string) error {
	m.links = append(m.links, link)
	return nil
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	dir := t.TempDir()
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	st, err := sqlite.NewStore(filepath.Join(dir, "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateRSAKeyPKCS8(2048)
	require.NoError(t, err)
	codec, err := jwtx.NewCodec(
		"https://auth.test",
		pemKey,
		[]byte("refresh-secret-0123456789abcdef0"),
		[]byte("email-secret-0123456789abcdef012"),
	)
	require.NoError(t, err)

	cookies := authhttp.CookiePolicy{
		Secure:     false,
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}

	mailer := &recordingMailer{}
	authSvc := &service.AuthService{
		Store:               st,
		Codec:               codec,
		Mailer:              mailer,
		Audit:               slog.Default().With("log", "security"),
		AccessTTL:           time.Minute,
		RefreshTTL:          time.Hour,
		EmailTokenTTL:       time.Hour,
		UnverifiedTTL:       6 * time.Hour,
		VerificationBaseURL: "https://auth.test",
	}

	router := authhttp.NewRouter(codec, "test", st, cookies, slog.Default())
	router.AuthService = authSvc
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	return &testClient{t: t, router: router, mailer: mailer, cookies: map[string]string{}}
}

func (c *testClient) do(method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "10.1.2.3:4444"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck.Value
	}
	return rec
}

// withCSRF fetches a token once and returns the header map for mutations.
func (c *testClient) withCSRF() map[string]string {
	c.t.Helper()
	if c.csrf == "" {
		rec := c.do(http.MethodGet, "/v1/auth/csrf-token", nil, nil)
		require.Equal(c.t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &body))
		c.csrf = body["csrf_token"]
		require.NotEmpty(c.t, c.csrf)
	}
	return map[string]string{"X-CSRF-Token": c.csrf}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthEndpointsLifecycle(t *testing.T) {
	c := newTestClient(t)
	csrf := c.withCSRF()

	register := map[string]string{
		"username": "alice_01",
		"email":    "alice@example.com",
		"password": "s3cret-password",
	}

	t.Run("register without csrf is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString(`{}`))
		req.RemoteAddr = "10.9.9.9:1234"
		rec := httptest.NewRecorder()
		c.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	rec := c.do(http.MethodPost, "/v1/auth/register", register, csrf)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, c.mailer.links, 1)

	t.Run("login before verification is denied", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/v1/auth/login",
			map[string]string{"identifier": "alice_01", "password": "s3cret-password"}, csrf)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid_credentials", errorCode(t, rec))
	})

	// Follow the mailed verification link.
	link := c.mailer.links[0]
	idx := bytes.Index([]byte(link), []byte("/v1/auth/verify-email"))
	require.GreaterOrEqual(t, idx, 0)
	rec = c.do(http.MethodGet, link[idx:], nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/v1/auth/login",
		map[string]string{"identifier": "alice_01", "password": "s3cret-password"}, csrf)
	require.Equal(t, http.StatusOK, rec.Code)

	var pair map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	require.NotEmpty(t, pair["access_token"])
	require.NotEmpty(t, pair["refresh_token"])
	require.NotEmpty(t, c.cookies["access_token"])
	require.NotEmpty(t, c.cookies["refresh_token"])

	t.Run("me returns the profile", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/v1/users/me", nil,
			map[string]string{"Authorization": "Bearer " + pair["access_token"].(string)})
		require.Equal(t, http.StatusOK, rec.Code)

		var me map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
		require.Equal(t, "alice_01", me["username"])
		require.Equal(t, true, me["is_verified"])
	})

	oldRefresh := c.cookies["refresh_token"]

	t.Run("refresh rotates the cookie pair", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/v1/auth/refresh", nil, csrf)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotEqual(t, oldRefresh, c.cookies["refresh_token"])
	})

	t.Run("replaying the rotated token fails", func(t *testing.T) {
		// Cookie takes precedence; drop it to present the stale body value.
		current := c.cookies["refresh_token"]
		delete(c.cookies, "refresh_token")
		defer func() { c.cookies["refresh_token"] = current }()

		rec := c.do(http.MethodPost, "/v1/auth/refresh",
			map[string]string{"refresh_token": oldRefresh}, csrf)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid_refresh_token", errorCode(t, rec))
	})

	t.Run("logout clears cookies and kills the session", func(t *testing.T) {
		refresh := c.cookies["refresh_token"]
		rec := c.do(http.MethodPost, "/v1/auth/logout", nil, csrf)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, c.cookies["refresh_token"])
		require.Empty(t, c.cookies["access_token"])

		rec = c.do(http.MethodPost, "/v1/auth/refresh",
			map[string]string{"refresh_token": refresh},
			mergeHeaders(csrf, map[string]string{"Authorization": "Bearer " + pair["access_token"].(string)}))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRegisterValidation(t *testing.T) {
	c := newTestClient(t)
	csrf := c.withCSRF()

	cases := map[string]map[string]string{
		"bad username":   {"username": "A!", "email": "x@example.com", "password": "long-enough-1"},
		"bad email":      {"username": "validname", "email": "not-an-email", "password": "long-enough-1"},
		"short password": {"username": "validname", "email": "x@example.com", "password": "short"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := c.do(http.MethodPost, "/v1/auth/register", body, csrf)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	t.Run("garbage body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString("{not json"))
		req.RemoteAddr = "10.1.2.3:4444"
		req.Header.Set("X-CSRF-Token", c.csrf)
		req.AddCookie(&http.Cookie{Name: "csrf_token", Value: c.cookies["csrf_token"]})
		rec := httptest.NewRecorder()
		c.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthAndJWKS(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodGet, "/livez", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/.well-known/jwks.json", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var jwks map[string][]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jwks))
	require.Len(t, jwks["keys"], 1)
	require.Equal(t, "RSA", jwks["keys"][0]["kty"])
}

func TestChangePasswordEndpoint(t *testing.T) {
	c := newTestClient(t)
	csrf := c.withCSRF()

	rec := c.do(http.MethodPost, "/v1/auth/register", map[string]string{
		"username": "bob_02",
		"email":    "bob@example.com",
		"password": "old-password-1",
	}, csrf)
	require.Equal(t, http.StatusCreated, rec.Code)

	link := c.mailer.links[0]
	idx := bytes.Index([]byte(link), []byte("/v1/auth/verify-email"))
	require.GreaterOrEqual(t, idx, 0)
	rec = c.do(http.MethodGet, link[idx:], nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/v1/auth/login",
		map[string]string{"identifier": "bob_02", "password": "old-password-1"}, csrf)
	require.Equal(t, http.StatusOK, rec.Code)

	var pair map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	bearer := map[string]string{"Authorization": "Bearer " + pair["access_token"].(string)}
	oldRefresh := pair["refresh_token"].(string)

	t.Run("wrong current password is denied", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/v1/users/me/password", map[string]string{
			"current_password": "not-it",
			"new_password":     "new-password-1",
		}, mergeHeaders(csrf, bearer))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid_credentials", errorCode(t, rec))
	})

	rec = c.do(http.MethodPost, "/v1/users/me/password", map[string]string{
		"current_password": "old-password-1",
		"new_password":     "new-password-1",
	}, mergeHeaders(csrf, bearer))
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("old session is revoked", func(t *testing.T) {
		delete(c.cookies, "refresh_token")
		rec := c.do(http.MethodPost, "/v1/auth/refresh",
			map[string]string{"refresh_token": oldRefresh},
			mergeHeaders(csrf, bearer))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("new password logs in", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/v1/auth/login",
			map[string]string{"identifier": "bob_02", "password": "new-password-1"}, csrf)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestUserInfoRequiresToken(t *testing.T) {
	c := newTestClient(t)

	rec := c.do(http.MethodGet, "/v1/users/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func mergeHeaders(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
