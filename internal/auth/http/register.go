package http

import (
	"net/http"
	"net/mail"
	"regexp"

	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/pkg/httpx"
)

// usernamePattern mirrors the client-side rule: lowercase letters, digits,
// dot and underscore, 3 to 30 characters.
var usernamePattern = regexp.MustCompile(`^[a-z0-9._]{3,30}$`)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// RegisterHandler serves POST /v1/auth/register.
type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates an unverified account and sends a verification mail. The account cannot log in until the mailed link is followed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"username, email, password"
//	@Success		201		{object}	map[string]string
//	@Failure		400		{object}	APIError
//	@Failure		409		{object}	APIError	"an account with these details already exists"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !usernamePattern.MatchString(req.Username) {
		ErrInvalidRequest.WriteError(w)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		ErrInvalidRequest.WriteError(w)
		return
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "account created, check your mail for the verification link",
	})
}
