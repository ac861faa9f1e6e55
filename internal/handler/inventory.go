package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/service"
	"github.com/weeraman/plantation-erp/pkg/response"
)

type InventoryHandler struct {
	service   *service.InventoryService
	validator *validator.Validate
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	item, err := h.service.CreateItem(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, item)
}

func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemId")
	if err != nil {
		response.BadRequest(w, "Invalid item id", err)
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, item)
}

// ListItems lists inventory, optionally filtered by the type query
// parameter (raw_material or finished_good).
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, items)
}

func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemId")
	if err != nil {
		response.BadRequest(w, "Invalid item id", err)
		return
	}

	var item domain.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	item.ID = id

	updated, err := h.service.UpdateItem(r.Context(), &item)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, updated)
}

func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemId")
	if err != nil {
		response.BadRequest(w, "Invalid item id", err)
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "item deleted"})
}

// RecordMovement adds or removes stock for an item.
func (h *InventoryHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemId")
	if err != nil {
		response.BadRequest(w, "Invalid item id", err)
		return
	}

	var request domain.StockMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	movement, err := h.service.RecordMovement(r.Context(), id, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, movement)
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "itemId")
	if err != nil {
		response.BadRequest(w, "Invalid item id", err)
		return
	}

	movements, err := h.service.ListMovements(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, movements)
}
