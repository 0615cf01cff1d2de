package http

import (
	"net/http"

	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/pkg/httpx"
)

// RefreshHandler serves POST /v1/auth/refresh.
type RefreshHandler struct {
	AuthService *service.AuthService
	Cookies     CookiePolicy
}

type refreshRequest struct {
	// RefreshToken is only needed by clients that don't carry the cookie.
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Rotate the refresh token
//	@Description	Revokes the presented refresh token and issues a new pair. The access token may be expired; it only identifies the subject.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		refreshRequest	false	"refresh_token for cookie-less clients"
//	@Success		200		{object}	domain.TokenPair
//	@Failure		401		{object}	APIError	"invalid_refresh_token, token_expired, token_type_mismatch or token_invalid"
//	@Router			/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	accessToken := accessTokenFromRequest(r)
	refreshToken := refreshTokenFromRequest(r, req.RefreshToken)
	if accessToken == "" || refreshToken == "" {
		ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), accessToken, refreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.Cookies.setAuthCookies(w, pair)
	httpx.WriteJSON(w, http.StatusOK, pair)
}
