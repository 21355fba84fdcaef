package employee

import "context"

// Directory supplies compensation-term snapshots for "add all employees to
// the current period" workflows. All methods are company-scoped to prevent
// cross-company data access.
type Directory interface {
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
}
