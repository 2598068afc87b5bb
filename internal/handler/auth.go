package handler

import (
	"net/http"

	"github.com/stayloft/api/internal/middleware"
	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// loginResponse is the body of a successful login
type loginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresIn int64       `json:"expires_in"`
	User      *model.User `json:"user"`
}

// Login handles POST /v1/auth/login - exchange credentials for a token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresIn: int64(result.ExpiresIn.Seconds()),
		User:      result.User,
	})
}

// Me handles GET /v1/auth/me - the authenticated account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetIdentity(r.Context())

	user, err := h.auth.CurrentUser(r.Context(), actor)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self": "/v1/users/" + user.ID,
	})
}
