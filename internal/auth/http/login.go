package http

import (
	"net/http"

	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/pkg/httpx"
)

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
	Cookies     CookiePolicy
}

type loginRequest struct {
	// Identifier is a username or email address.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Verifies credentials and issues an access/refresh token pair, both as JSON and as HttpOnly cookies.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"identifier (username or email), password"
//	@Success		200		{object}	domain.TokenPair
//	@Failure		400		{object}	APIError
//	@Failure		401		{object}	APIError	"invalid credentials"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Identifier == "" || req.Password == "" {
		ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.Cookies.setAuthCookies(w, pair)
	httpx.WriteJSON(w, http.StatusOK, pair)
}
