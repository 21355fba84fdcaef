package payroll

import (
	"context"
	"time"
)

// TransitionStamp records who performed a status transition and when.
// Reason is set for rejections only.
type TransitionStamp struct {
	Actor  string
	At     time.Time
	Reason *string
}

// SubmissionRepository defines data access for payroll submissions.
// All methods are companyID-scoped to prevent cross-company access.
//
// UpdateDraft and UpdateStatus are compare-and-swap operations: the row is
// only written when its current status matches the expected source status,
// so concurrent transitions on one submission have at most one winner. The
// loser receives ErrStatusConflict.
type SubmissionRepository interface {
	Create(ctx context.Context, sub PayrollSubmission) (PayrollSubmission, error)
	GetByID(ctx context.Context, id string, companyID string) (PayrollSubmission, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]PayrollSubmission, error)

	UpdateDraft(ctx context.Context, sub PayrollSubmission) (PayrollSubmission, error)
	UpdateStatus(ctx context.Context, id string, companyID string, from Status, to Status, stamp TransitionStamp) (PayrollSubmission, error)
	Delete(ctx context.Context, id string, companyID string) error

	// Master template (one per company, status "master")
	GetMaster(ctx context.Context, companyID string) (PayrollSubmission, error)
	UpsertMaster(ctx context.Context, sub PayrollSubmission) (PayrollSubmission, error)
}
