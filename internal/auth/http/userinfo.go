package http

import (
	"net/http"
	"time"

	"github.com/Hellmakima/instagram/internal/auth/service"
	"github.com/Hellmakima/instagram/pkg/httpx"
	"github.com/Hellmakima/instagram/pkg/slogx"
)

// UserInfoHandler serves GET /v1/users/me behind the bearer authn middleware.
type UserInfoHandler struct {
	UserService *service.UserService
}

type userInfoResponse struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// ServeHTTP godoc
//
//	@Summary		Current user profile
//	@Description	Returns the profile of the access token's subject.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	userInfoResponse
//	@Failure		401	{object}	APIError
//	@Router			/v1/users/me [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		ErrTokenInvalid.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to load user", "user_id", userID, "err", err)
		ErrServerError.WriteError(w)
		return
	}
	if user.IsDeleted {
		ErrTokenInvalid.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfoResponse{
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	})
}
