package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freshfold/laundry-service/internal/catalog"
	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

// CatalogHandler handles HTTP requests for shops and their price lists.
type CatalogHandler struct {
	svc catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type replaceServicesRequest struct {
	OwnerID  uuid.UUID         `json:"owner_id"`
	Services []catalog.Service `json:"services"`
}

// ListShops returns all laundry shops for the customer home screen.
func (h *CatalogHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.svc.ListShops(r.Context())
	if err != nil {
		log.Info().Msgf("Failed to list shops: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, shops)
}

// ServicesByOwner returns one shop's price list.
func (h *CatalogHandler) ServicesByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.FromString(chi.URLParam(r, "ownerId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	services, err := h.svc.ServicesByOwner(r.Context(), ownerID)
	if err != nil {
		log.Info().Msgf("Failed to list services for owner %s: %v", ownerID, err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, services)
}

// ReplaceServices swaps an owner's whole price list for the posted one.
func (h *CatalogHandler) ReplaceServices(w http.ResponseWriter, r *http.Request) {
	var req replaceServicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.ReplaceServices(r.Context(), req.OwnerID, req.Services); err != nil {
		var verr *lifecycle.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Error())
			return
		}
		log.Info().Msgf("Failed to replace services for owner %s: %v", req.OwnerID, err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
