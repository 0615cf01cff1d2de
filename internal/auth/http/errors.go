package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/pkg/httpx"
)

// APIError is the stable JSON error envelope every endpoint returns. The
// description is deliberately generic for authentication failures; precise
// reasons live in the audit log only.
type APIError struct {
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "the request is malformed or missing required parameters",
	}

	ErrInvalidJSONBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "request body must be valid JSON",
	}

	// ErrInvalidCredentials covers every login failure without saying which
	// check denied.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_credentials",
		Description: "invalid credentials",
	}

	// ErrUserExists covers every registration conflict without naming the
	// colliding field.
	ErrUserExists = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        "user_exists",
		Description: "an account with these details already exists",
	}

	ErrTokenExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "token_expired",
		Description: "the token has expired",
	}

	ErrTokenTypeMismatch = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "token_type_mismatch",
		Description: "the token cannot be used for this operation",
	}

	ErrTokenInvalid = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "token_invalid",
		Description: "the token is invalid",
	}

	ErrInvalidRefresh = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_refresh_token",
		Description: "the refresh token is invalid, expired or revoked",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        "server_error",
		Description: "internal server error",
	}
)

// writeServiceError maps service sentinels onto the envelope. Anything
// unexpected becomes a 500 without leaking the underlying error.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrUserExists):
		ErrUserExists.WriteError(w)
	case errors.Is(err, service.ErrTokenExpired):
		ErrTokenExpired.WriteError(w)
	case errors.Is(err, service.ErrTokenTypeMismatch):
		ErrTokenTypeMismatch.WriteError(w)
	case errors.Is(err, service.ErrTokenInvalid):
		ErrTokenInvalid.WriteError(w)
	case errors.Is(err, service.ErrInvalidRefresh):
		ErrInvalidRefresh.WriteError(w)
	default:
		ErrServerError.WriteError(w)
	}
}
