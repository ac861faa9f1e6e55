package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/service"
	"github.com/weeraman/plantation-erp/pkg/response"
)

type ManufacturingHandler struct {
	service   *service.ManufacturingService
	validator *validator.Validate
}

func NewManufacturingHandler(service *service.ManufacturingService) *ManufacturingHandler {
	return &ManufacturingHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *ManufacturingHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, order)
}

func (h *ManufacturingHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderId")
	if err != nil {
		response.BadRequest(w, "Invalid order id", err)
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, order)
}

func (h *ManufacturingHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, orders)
}

func (h *ManufacturingHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderId")
	if err != nil {
		response.BadRequest(w, "Invalid order id", err)
		return
	}

	var request domain.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	order, err := h.service.UpdateOrder(r.Context(), id, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, order)
}

// DeleteOrder removes a planned or cancelled order. Orders that have
// started or finished production are kept.
func (h *ManufacturingHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "orderId")
	if err != nil {
		response.BadRequest(w, "Invalid order id", err)
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "order deleted"})
}
