package payroll

import "context"

// Service is the payroll workflow surface consumed by the HTTP layer.
// The actor (company, user, role) is carried in the request context claims.
type Service interface {
	Create(ctx context.Context, req CreateSubmissionRequest) (SubmissionResponse, error)
	Get(ctx context.Context, id string) (SubmissionResponse, error)
	List(ctx context.Context, filter ListFilter) (ListSubmissionResponse, error)
	Update(ctx context.Context, req UpdateSubmissionRequest) (SubmissionResponse, error)
	Delete(ctx context.Context, id string) error

	Submit(ctx context.Context, id string) (SubmissionResponse, error)
	Approve(ctx context.Context, id string) (SubmissionResponse, error)
	Reject(ctx context.Context, id string, req RejectSubmissionRequest) (SubmissionResponse, error)
	MarkPaid(ctx context.Context, id string) (SubmissionResponse, error)
	Reopen(ctx context.Context, id string) (SubmissionResponse, error)

	GetMaster(ctx context.Context) (SubmissionResponse, error)
	UpsertMaster(ctx context.Context, req UpsertMasterRequest) (SubmissionResponse, error)
}
