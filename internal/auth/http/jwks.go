package http

import (
	"encoding/json"
	"net/http"

	"github.com/Hellmakima/instagram/pkg/jwtx"
)

// JWKSHandler godoc
//
//	@Summary		JSON Web Key Set
//	@Description	Publishes the RSA public key other services use to verify access tokens.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	jwtx.JWKS
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(codec *jwtx.Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Public keys may be cached, unlike everything else we serve.
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(jwtx.JWKS{Keys: []jwtx.JWK{codec.AccessPublicJWK()}})
	}
}
