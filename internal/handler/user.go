package handler

import (
	"net/http"

	"github.com/stayloft/api/internal/middleware"
	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/service"
)

// UserHandler handles user endpoints
type UserHandler struct {
	facade *service.Facade
}

// NewUserHandler creates a new user handler
func NewUserHandler(facade *service.Facade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Create handles POST /v1/users - register an account (admin only)
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.facade.CreateUser(r.Context(), middleware.GetIdentity(r.Context()), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, user, map[string]string{
		"self": "/v1/users/" + user.ID,
	})
}

// List handles GET /v1/users - list all users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.facade.ListUsers(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, users, nil)
}

// Get handles GET /v1/users/{userId} - a single user
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	user, err := h.facade.GetUser(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self":   "/v1/users/" + user.ID,
		"places": "/v1/users/" + user.ID + "/places",
	})
}

// Update handles PATCH /v1/users/{userId} - partial update
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	var req model.UpdateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.facade.UpdateUser(r.Context(), middleware.GetIdentity(r.Context()), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self": "/v1/users/" + user.ID,
	})
}

// Delete handles DELETE /v1/users/{userId} - remove an account
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	if err := h.facade.DeleteUser(r.Context(), middleware.GetIdentity(r.Context()), userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Places handles GET /v1/users/{userId}/places - listings owned by a user
func (h *UserHandler) Places(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	places, err := h.facade.ListUserPlaces(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, places, map[string]string{
		"owner": "/v1/users/" + userID,
	})
}

// Reviews handles GET /v1/users/{userId}/reviews - reviews a user wrote
func (h *UserHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	reviews, err := h.facade.ListUserReviews(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, reviews, map[string]string{
		"author": "/v1/users/" + userID,
	})
}
