package payroll

import (
	"errors"
	"fmt"

	"github.com/meridianhq/payroll-backend-go/internal/domain/user"
)

var (
	ErrSubmissionNotFound = errors.New("payroll submission not found")
	ErrMasterNotFound     = errors.New("master payroll template not found")
	ErrEmptySubmission    = errors.New("submission has no employees")
	ErrInvalidPeriod      = errors.New("invalid payroll period")

	// ErrStatusConflict is returned by the store when a compare-and-swap
	// status update loses a race. The service re-reads and reports the
	// refreshed status as an InvalidTransitionError.
	ErrStatusConflict = errors.New("submission status changed concurrently")

	// ErrStoreUnavailable marks transient infrastructure failures. The
	// caller may retry; the core never retries internally.
	ErrStoreUnavailable = errors.New("payroll store unavailable")
)

// InvalidTransitionError reports a workflow guard violation with enough
// detail to correct the request.
type InvalidTransitionError struct {
	Current Status
	Action  Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a submission in status %q", e.Action, e.Current)
}

// PermissionError reports a failed role capability check.
type PermissionError struct {
	Role     user.Role
	Required user.Permission
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("role %q lacks permission %q", e.Role, e.Required)
}
