package http

import (
	"net/http"

	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/pkg/httpx"
)

// VerifyEmailHandler serves GET /v1/auth/verify-email. This is the link
// target from the verification mail.
type VerifyEmailHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Verify an email address
//	@Description	Redeems the token from the verification mail and activates the account.
//	@Tags			Auth
//	@Produce		json
//	@Param			token	query		string	true	"email verification token"
//	@Success		200		{object}	map[string]string
//	@Failure		401		{object}	APIError	"token_expired, token_type_mismatch or token_invalid"
//	@Failure		409		{object}	APIError	"another account verified these details first"
//	@Router			/v1/auth/verify-email [get].
func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AuthService.VerifyEmail(r.Context(), token); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "email verified, you can log in now",
	})
}
