package http

import (
	"net/http"

	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/pkg/httpx"
)

// ChangePasswordHandler serves POST /v1/users/me/password behind the bearer
// authn middleware.
type ChangePasswordHandler struct {
	UserService *service.UserService
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ServeHTTP godoc
//
//	@Summary		Change password
//	@Description	Re-verifies the current password, stores the new one and revokes every refresh token the user holds. Other devices must log in again.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		changePasswordRequest	true	"current_password, new_password"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	APIError
//	@Failure		401		{object}	APIError
//	@Router			/v1/users/me/password [post].
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		ErrTokenInvalid.WriteError(w)
		return
	}

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.NewPassword) < minPasswordLength || len(req.NewPassword) > maxPasswordLength {
		ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.UserService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "password changed, log in again on other devices",
	})
}
