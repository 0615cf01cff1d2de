package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/internal/auth/store"
	"github.com/Hellmakima/instagram/pkg/httpx"
	"github.com/Hellmakima/instagram/pkg/jwtx"
	"github.com/Hellmakima/instagram/pkg/slogx"

	_ "github.com/Hellmakima/instagram/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	cookies CookiePolicy

	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	cookies CookiePolicy,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		cookies:      cookies,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Instagram Authentication Service API
//	@version		0.1.0
//	@description	Credential registration, login and token lifecycle for the Instagram-clone platform.
//	@description
//	@description				Access tokens are signed with RS256 and can be verified using the JWKS endpoint.
//
//	@contact.name				Hellmakima
//	@contact.url				https://github.com/Hellmakima/instagram
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /register - strict limit by IP to slow account spraying
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RequireCSRF(),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict limit by IP (brute force prevention)
	loginHandler := &LoginHandler{AuthService: r.AuthService, Cookies: r.cookies}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RequireCSRF(),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate limit by IP
	refreshHandler := &RefreshHandler{AuthService: r.AuthService, Cookies: r.cookies}
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RequireCSRF(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /logout - moderate limit by IP
	logoutHandler := &LogoutHandler{AuthService: r.AuthService, Cookies: r.cookies}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RequireCSRF(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /verify-email - mail link target, no CSRF (safe method)
	verifyHandler := &VerifyEmailHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /v1/auth/verify-email",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /csrf-token - mints the double-submit token
	csrfHandler := &CSRFTokenHandler{Secure: r.cookies.Secure}
	r.Mux.Handle("GET /v1/auth/csrf-token",
		httpx.Chain(csrfHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /.well-known/jwks.json - public verification key
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.codec),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserInfoHandler{UserService: r.UserService}
	r.Mux.Handle("GET /v1/users/me",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	pw := &ChangePasswordHandler{UserService: r.UserService}
	r.Mux.Handle("POST /v1/users/me/password",
		httpx.Chain(pw,
			httpx.RequireCSRF(),
			httpx.AuthnMiddleware(r.codec),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Monitoring may poll these frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.codec),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
