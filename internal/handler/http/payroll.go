package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meridianhq/payroll-backend-go/internal/domain/payroll"
	"github.com/meridianhq/payroll-backend-go/internal/handler/http/response"
	"github.com/meridianhq/payroll-backend-go/internal/pkg/validator"
)

type PayrollHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)

	GetMaster(w http.ResponseWriter, r *http.Request)
	UpsertMaster(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== SUBMISSIONS ==========

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter payroll.ListFilter
	var errs validator.ValidationErrors

	if monthStr := r.URL.Query().Get("period_month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be an integer"})
		} else {
			filter.PeriodMonth = &month
		}
	}
	if yearStr := r.URL.Query().Get("period_year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be an integer"})
		} else {
			filter.PeriodYear = &year
		}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs.ToMap())
		return
	}

	result, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	result, err := h.payrollService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll submission created", result)
}

func (h *payrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	var req payroll.UpdateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payrollService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	if err := h.payrollService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll submission deleted successfully", nil)
}

// ========== TRANSITIONS ==========

func (h *payrollHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.Submit)
}

func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.Approve)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.MarkPaid)
}

func (h *payrollHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.Reopen)
}

func (h *payrollHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	var req payroll.RejectSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Reject(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) (payroll.SubmissionResponse, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Submission ID is required", nil)
		return
	}

	result, err := fn(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== MASTER TEMPLATE ==========

func (h *payrollHandlerImpl) GetMaster(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetMaster(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpsertMaster(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertMasterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpsertMaster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
