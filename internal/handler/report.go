package handler

import (
	"net/http"
	"time"

	"github.com/weeraman/plantation-erp/internal/service"
	"github.com/weeraman/plantation-erp/pkg/response"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Dashboard(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *ReportHandler) RevenueSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.RevenueSeries(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, series)
}
