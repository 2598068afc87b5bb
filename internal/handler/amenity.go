package handler

import (
	"net/http"

	"github.com/stayloft/api/internal/middleware"
	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/internal/service"
)

// AmenityHandler handles amenity catalog endpoints
type AmenityHandler struct {
	facade *service.Facade
}

// NewAmenityHandler creates a new amenity handler
func NewAmenityHandler(facade *service.Facade) *AmenityHandler {
	return &AmenityHandler{facade: facade}
}

// Create handles POST /v1/amenities - add to the catalog (admin only)
func (h *AmenityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAmenityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	amenity, err := h.facade.CreateAmenity(r.Context(), middleware.GetIdentity(r.Context()), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, amenity, map[string]string{
		"self": "/v1/amenities/" + amenity.ID,
	})
}

// List handles GET /v1/amenities - the full catalog
func (h *AmenityHandler) List(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.facade.ListAmenities(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, amenities, nil)
}

// Get handles GET /v1/amenities/{amenityId}
func (h *AmenityHandler) Get(w http.ResponseWriter, r *http.Request) {
	amenityID := r.PathValue("amenityId")

	amenity, err := h.facade.GetAmenity(r.Context(), amenityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, amenity, map[string]string{
		"self":   "/v1/amenities/" + amenity.ID,
		"places": "/v1/amenities/" + amenity.ID + "/places",
	})
}

// Update handles PATCH /v1/amenities/{amenityId} - rename (admin only)
func (h *AmenityHandler) Update(w http.ResponseWriter, r *http.Request) {
	amenityID := r.PathValue("amenityId")

	var req model.UpdateAmenityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	amenity, err := h.facade.UpdateAmenity(r.Context(), middleware.GetIdentity(r.Context()), amenityID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, amenity, map[string]string{
		"self": "/v1/amenities/" + amenity.ID,
	})
}

// Delete handles DELETE /v1/amenities/{amenityId} - remove (admin only)
func (h *AmenityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	amenityID := r.PathValue("amenityId")

	if err := h.facade.DeleteAmenity(r.Context(), middleware.GetIdentity(r.Context()), amenityID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Places handles GET /v1/amenities/{amenityId}/places - places offering it
func (h *AmenityHandler) Places(w http.ResponseWriter, r *http.Request) {
	amenityID := r.PathValue("amenityId")

	places, err := h.facade.ListAmenityPlaces(r.Context(), amenityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, places, map[string]string{
		"amenity": "/v1/amenities/" + amenityID,
	})
}
