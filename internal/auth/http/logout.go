package http

import (
	"net/http"

	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/pkg/httpx"
)

// LogoutHandler serves POST /v1/auth/logout.
type LogoutHandler struct {
	AuthService *service.AuthService
	Cookies     CookiePolicy
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Log out
//	@Description	Deletes the presented refresh token and clears the session cookies. Unknown tokens are a no-op.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		logoutRequest	false	"refresh_token for cookie-less clients"
//	@Success		200		{object}	map[string]string
//	@Failure		401		{object}	APIError
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	accessToken := accessTokenFromRequest(r)
	refreshToken := refreshTokenFromRequest(r, req.RefreshToken)
	if accessToken == "" || refreshToken == "" {
		ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AuthService.Logout(r.Context(), accessToken, refreshToken); err != nil {
		writeServiceError(w, err)
		return
	}

	h.Cookies.clearAuthCookies(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
