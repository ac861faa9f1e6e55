package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/service"
	"github.com/weeraman/plantation-erp/pkg/response"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateLoan originates a loan and returns it with its full schedule.
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	loan, schedule, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, domain.CreateLoanResponse{
		Loan:     loan,
		Schedule: schedule,
	})
}

func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, loan)
}

func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListLoans(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, loans)
}

// GetLoanByNumber looks a loan up by its human-readable reference,
// e.g. LN250001.
func (h *LoanHandler) GetLoanByNumber(w http.ResponseWriter, r *http.Request) {
	loan, err := h.service.GetLoanByNumber(r.Context(), mux.Vars(r)["loanNumber"])
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, loan)
}

func (h *LoanHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	history, err := h.service.PaymentHistory(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, history)
}

func (h *LoanHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{
		LoanNumber: loan.LoanNumber,
		Schedule:   schedule,
	})
}

func (h *LoanHandler) GetOutstanding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Success(w, domain.OutstandingResponse{
		LoanNumber:  loan.LoanNumber,
		Outstanding: loan.RemainingBalance,
	})
}

// MakePayment records an installment against the loan's earliest unpaid
// schedule entry.
func (h *LoanHandler) MakePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "loanId")
	if err != nil {
		response.BadRequest(w, "Invalid loan id", err)
		return
	}

	var request domain.MakePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	payment, err := h.service.MakePayment(r.Context(), id, &request)
	if err != nil {
		respondError(w, err)
		return
	}

	response.Created(w, payment)
}
