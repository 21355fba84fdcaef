package response

import (
	"errors"
	"net/http"

	"github.com/meridianhq/payroll-backend-go/internal/domain/employee"
	"github.com/meridianhq/payroll-backend-go/internal/domain/payroll"
	"github.com/meridianhq/payroll-backend-go/internal/domain/user"
	"github.com/meridianhq/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Workflow guard violations carry the current status so the caller
	// can correct the request.
	var transitionErr *payroll.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		InvalidTransition(w, transitionErr.Error(), map[string]string{
			"current_status": string(transitionErr.Current),
			"action":         string(transitionErr.Action),
		})
		return
	}

	var permissionErr *payroll.PermissionError
	if errors.As(err, &permissionErr) {
		Forbidden(w, permissionErr.Error())
		return
	}

	switch {
	case errors.Is(err, payroll.ErrSubmissionNotFound):
		NotFound(w, "Payroll submission not found")
	case errors.Is(err, payroll.ErrMasterNotFound):
		NotFound(w, "Master payroll template not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	case errors.Is(err, payroll.ErrEmptySubmission):
		BadRequest(w, "Submission has no employees", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	case errors.Is(err, user.ErrInvalidActor):
		Unauthorized(w, "Actor claims are missing or invalid")
	case errors.Is(err, user.ErrPermissionRequired):
		Forbidden(w, err.Error())

	// Transient store failures are retryable by the caller.
	case errors.Is(err, payroll.ErrStoreUnavailable):
		ServiceUnavailable(w, "Payroll store unavailable, retry later")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
