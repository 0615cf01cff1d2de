package http

import (
	"net/http"

	"github.com/Hellmakima/instagram/pkg/httpx"
	"github.com/Hellmakima/instagram/pkg/slogx"
)

// CSRFTokenHandler serves GET /v1/auth/csrf-token. Browsers fetch this once
// and echo the value in the X-CSRF-Token header on every state-changing call.
type CSRFTokenHandler struct {
	Secure bool
}

// ServeHTTP godoc
//
//	@Summary		Mint a CSRF token
//	@Description	Returns a double-submit CSRF token, both as a cookie and in the body.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/v1/auth/csrf-token [get].
func (h *CSRFTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, err := httpx.MintCSRFToken(w, h.Secure)
	if err != nil {
		slogx.FromContext(r.Context()).Error("csrf mint failed", "err", err)
		ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"csrf_token": token})
}
