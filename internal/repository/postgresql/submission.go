package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meridianhq/payroll-backend-go/internal/domain/payroll"
	"github.com/meridianhq/payroll-backend-go/internal/pkg/database"
)

type submissionRepository struct {
	db *database.DB
}

func NewSubmissionRepository(db *database.DB) payroll.SubmissionRepository {
	return &submissionRepository{db: db}
}

const submissionColumns = `
	id, company_id, period_month, period_year, lines,
	total_gross, total_deductions, total_net, status,
	submitted_by, submitted_at, approved_by, approved_at,
	rejected_by, rejected_at, rejection_reason, paid_by, paid_at,
	created_at, updated_at
`

// wrapStoreErr tags infrastructure failures as retryable so the handler
// layer reports them as 503, distinct from state-machine failures.
func wrapStoreErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, payroll.ErrStoreUnavailable, err)
}

func (r *submissionRepository) Create(ctx context.Context, sub payroll.PayrollSubmission) (payroll.PayrollSubmission, error) {
	q := GetQuerier(ctx, r.db)

	lines, err := json.Marshal(sub.Lines)
	if err != nil {
		return payroll.PayrollSubmission{}, fmt.Errorf("failed to encode submission lines: %w", err)
	}

	query := `
		INSERT INTO payroll_submissions (
			id, company_id, period_month, period_year, lines,
			total_gross, total_deductions, total_net, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + submissionColumns

	row := q.QueryRow(ctx, query,
		sub.ID, sub.CompanyID, sub.PeriodMonth, sub.PeriodYear, lines,
		sub.Totals.Gross, sub.Totals.Deductions, sub.Totals.Net, sub.Status,
	)

	created, err := scanSubmission(row)
	if err != nil {
		return payroll.PayrollSubmission{}, wrapStoreErr("failed to create payroll submission", err)
	}

	return created, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollSubmission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + submissionColumns + `
		FROM payroll_submissions
		WHERE id = $1 AND company_id = $2
	`

	sub, err := scanSubmission(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollSubmission{}, payroll.ErrSubmissionNotFound
		}
		return payroll.PayrollSubmission{}, wrapStoreErr("failed to get payroll submission", err)
	}

	return sub, nil
}

func (r *submissionRepository) List(ctx context.Context, companyID string, filter payroll.ListFilter) ([]payroll.PayrollSubmission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + submissionColumns + `
		FROM payroll_submissions
		WHERE company_id = $1 AND status != 'master'
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.PeriodMonth != nil {
		query += fmt.Sprintf(" AND period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		query += fmt.Sprintf(" AND period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	query += " ORDER BY period_year DESC, period_month DESC, created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("failed to list payroll submissions", err)
	}
	defer rows.Close()

	var subs []payroll.PayrollSubmission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, wrapStoreErr("failed to scan payroll submission", err)
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

// UpdateDraft rewrites the lines and totals of a draft. The status
// predicate is the compare-and-swap: a submission that left draft in the
// meantime is not touched and the caller gets ErrStatusConflict.
func (r *submissionRepository) UpdateDraft(ctx context.Context, sub payroll.PayrollSubmission) (payroll.PayrollSubmission, error) {
	q := GetQuerier(ctx, r.db)

	lines, err := json.Marshal(sub.Lines)
	if err != nil {
		return payroll.PayrollSubmission{}, fmt.Errorf("failed to encode submission lines: %w", err)
	}

	query := `
		UPDATE payroll_submissions
		SET lines = $3, total_gross = $4, total_deductions = $5, total_net = $6, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'draft'
		RETURNING ` + submissionColumns

	updated, err := scanSubmission(q.QueryRow(ctx, query,
		sub.ID, sub.CompanyID, lines,
		sub.Totals.Gross, sub.Totals.Deductions, sub.Totals.Net,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollSubmission{}, r.missingOrConflict(ctx, sub.ID, sub.CompanyID)
		}
		return payroll.PayrollSubmission{}, wrapStoreErr("failed to update payroll submission", err)
	}

	return updated, nil
}

// UpdateStatus performs one guarded transition. The WHERE status = $from
// predicate gives at-most-one-winner semantics under concurrent attempts.
func (r *submissionRepository) UpdateStatus(ctx context.Context, id string, companyID string, from payroll.Status, to payroll.Status, stamp payroll.TransitionStamp) (payroll.PayrollSubmission, error) {
	q := GetQuerier(ctx, r.db)

	var stampClause string
	args := []interface{}{id, companyID, from, to}

	switch to {
	case payroll.StatusSubmitted:
		stampClause = ", submitted_by = $5, submitted_at = $6"
		args = append(args, stamp.Actor, stamp.At)
	case payroll.StatusApproved:
		stampClause = ", approved_by = $5, approved_at = $6"
		args = append(args, stamp.Actor, stamp.At)
	case payroll.StatusRejected:
		stampClause = ", rejected_by = $5, rejected_at = $6, rejection_reason = $7"
		args = append(args, stamp.Actor, stamp.At, stamp.Reason)
	case payroll.StatusPaid:
		stampClause = ", paid_by = $5, paid_at = $6"
		args = append(args, stamp.Actor, stamp.At)
	case payroll.StatusDraft:
		// Reopen keeps the rejection stamps as audit history.
	}

	query := `
		UPDATE payroll_submissions
		SET status = $4, updated_at = NOW()` + stampClause + `
		WHERE id = $1 AND company_id = $2 AND status = $3
		RETURNING ` + submissionColumns

	updated, err := scanSubmission(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollSubmission{}, r.missingOrConflict(ctx, id, companyID)
		}
		return payroll.PayrollSubmission{}, wrapStoreErr("failed to update submission status", err)
	}

	return updated, nil
}

func (r *submissionRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM payroll_submissions
		WHERE id = $1 AND company_id = $2 AND status = 'draft'
	`, id, companyID)
	if err != nil {
		return wrapStoreErr("failed to delete payroll submission", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, id, companyID)
	}

	return nil
}

// ========== MASTER TEMPLATE ==========

func (r *submissionRepository) GetMaster(ctx context.Context, companyID string) (payroll.PayrollSubmission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + submissionColumns + `
		FROM payroll_submissions
		WHERE company_id = $1 AND status = 'master'
	`

	master, err := scanSubmission(q.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollSubmission{}, payroll.ErrMasterNotFound
		}
		return payroll.PayrollSubmission{}, wrapStoreErr("failed to get master template", err)
	}

	return master, nil
}

func (r *submissionRepository) UpsertMaster(ctx context.Context, sub payroll.PayrollSubmission) (payroll.PayrollSubmission, error) {
	lines, err := json.Marshal(sub.Lines)
	if err != nil {
		return payroll.PayrollSubmission{}, fmt.Errorf("failed to encode submission lines: %w", err)
	}

	// Replace runs as clear-then-insert in one transaction so a reader never
	// sees zero or two masters. The partial unique index on (company_id)
	// WHERE status = 'master' backstops concurrent upserts.
	var saved payroll.PayrollSubmission
	err = WithTransaction(ctx, r.db, func(ctx context.Context, _ pgx.Tx) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `
			DELETE FROM payroll_submissions
			WHERE company_id = $1 AND status = 'master'
		`, sub.CompanyID); err != nil {
			return wrapStoreErr("failed to clear master template", err)
		}

		query := `
			INSERT INTO payroll_submissions (
				id, company_id, period_month, period_year, lines,
				total_gross, total_deductions, total_net, status
			) VALUES ($1, $2, 0, 0, $3, $4, $5, $6, 'master')
			RETURNING ` + submissionColumns

		inserted, err := scanSubmission(q.QueryRow(ctx, query,
			sub.ID, sub.CompanyID, lines,
			sub.Totals.Gross, sub.Totals.Deductions, sub.Totals.Net,
		))
		if err != nil {
			return wrapStoreErr("failed to save master template", err)
		}

		saved = inserted
		return nil
	})
	if err != nil {
		return payroll.PayrollSubmission{}, err
	}

	return saved, nil
}

// ========== HELPERS ==========

// missingOrConflict distinguishes a vanished row from a lost CAS race.
func (r *submissionRepository) missingOrConflict(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	var status string
	err := q.QueryRow(ctx, `
		SELECT status FROM payroll_submissions WHERE id = $1 AND company_id = $2
	`, id, companyID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrSubmissionNotFound
		}
		return wrapStoreErr("failed to check submission status", err)
	}

	return payroll.ErrStatusConflict
}

func scanSubmission(row pgx.Row) (payroll.PayrollSubmission, error) {
	var sub payroll.PayrollSubmission
	var lines []byte

	err := row.Scan(
		&sub.ID, &sub.CompanyID, &sub.PeriodMonth, &sub.PeriodYear, &lines,
		&sub.Totals.Gross, &sub.Totals.Deductions, &sub.Totals.Net, &sub.Status,
		&sub.SubmittedBy, &sub.SubmittedAt, &sub.ApprovedBy, &sub.ApprovedAt,
		&sub.RejectedBy, &sub.RejectedAt, &sub.RejectionReason, &sub.PaidBy, &sub.PaidAt,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollSubmission{}, err
	}

	if err := json.Unmarshal(lines, &sub.Lines); err != nil {
		return payroll.PayrollSubmission{}, fmt.Errorf("failed to decode submission lines: %w", err)
	}

	return sub, nil
}
