package http

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 16 // 64 KiB, plenty for credential payloads

// decodeJSON parses a JSON request body into dst. On failure it writes the
// error response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		ErrInvalidJSONBody.WriteError(w)
		return false
	}
	return true
}
