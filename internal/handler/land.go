package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/service"
	"github.com/weeraman/plantation-erp/pkg/response"
)

type LandHandler struct {
	service   *service.LandService
	validator *validator.Validate
}

func NewLandHandler(service *service.LandService) *LandHandler {
	return &LandHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *LandHandler) CreateLand(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLandRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	land, err := h.service.CreateLand(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, land)
}

func (h *LandHandler) GetLand(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "landId")
	if err != nil {
		response.BadRequest(w, "Invalid land id", err)
		return
	}

	land, err := h.service.GetLand(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, land)
}

func (h *LandHandler) UpdateLand(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "landId")
	if err != nil {
		response.BadRequest(w, "Invalid land id", err)
		return
	}

	var land domain.Land
	if err := json.NewDecoder(r.Body).Decode(&land); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	land.ID = id

	updated, err := h.service.UpdateLand(r.Context(), &land)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, updated)
}

// ListLands returns active lands together with their current contractor
// assignment, when one exists.
func (h *LandHandler) ListLands(w http.ResponseWriter, r *http.Request) {
	lands, err := h.service.ListLands(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, lands)
}

func (h *LandHandler) AssignContractor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "landId")
	if err != nil {
		response.BadRequest(w, "Invalid land id", err)
		return
	}

	var request domain.AssignLandRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	assignment, err := h.service.AssignContractor(r.Context(), id, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, assignment)
}
