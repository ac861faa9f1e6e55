package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/service"
	"github.com/weeraman/plantation-erp/pkg/response"
)

type AssetHandler struct {
	service   *service.AssetService
	validator *validator.Validate
}

func NewAssetHandler(service *service.AssetService) *AssetHandler {
	return &AssetHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	asset, err := h.service.CreateAsset(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, asset)
}

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assetId")
	if err != nil {
		response.BadRequest(w, "Invalid asset id", err)
		return
	}

	asset, err := h.service.GetAsset(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, asset)
}

func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.ListAssets(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, assets)
}

func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assetId")
	if err != nil {
		response.BadRequest(w, "Invalid asset id", err)
		return
	}

	var asset domain.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	asset.ID = id

	updated, err := h.service.UpdateAsset(r.Context(), &asset)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, updated)
}

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "assetId")
	if err != nil {
		response.BadRequest(w, "Invalid asset id", err)
		return
	}

	if err := h.service.DeleteAsset(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "asset deleted"})
}

// DepreciationReport returns each active asset's declining-balance value as
// of today.
func (h *AssetHandler) DepreciationReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.DepreciationReport(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, rows)
}

func (h *AssetHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.AssetCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	created, err := h.service.CreateCategory(r.Context(), &category)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, created)
}

func (h *AssetHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, categories)
}
