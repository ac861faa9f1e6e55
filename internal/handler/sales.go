package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/service"
	"github.com/weeraman/plantation-erp/pkg/response"
)

type SalesHandler struct {
	service   *service.SalesService
	validator *validator.Validate
}

func NewSalesHandler(service *service.SalesService) *SalesHandler {
	return &SalesHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateInvoice prices the requested lines from inventory, decrements stock
// and returns the confirmed invoice.
func (h *SalesHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	invoice, items, err := h.service.CreateInvoice(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, domain.InvoiceResponse{
		Invoice: invoice,
		Items:   items,
	})
}

func (h *SalesHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "invoiceId")
	if err != nil {
		response.BadRequest(w, "Invalid invoice id", err)
		return
	}

	invoice, items, err := h.service.GetInvoice(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, domain.InvoiceResponse{
		Invoice: invoice,
		Items:   items,
	})
}

func (h *SalesHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, invoices)
}
