package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeType enum
type EmployeeType string

const (
	EmployeeTypePermanent EmployeeType = "permanent"
	EmployeeTypeContract  EmployeeType = "contract"
)

// CompensationTerms is one employee's pay terms inside a submission.
// Exactly one of the permanent/contract field groups is populated,
// determined by EmployeeType. Immutable once a breakdown is computed.
type CompensationTerms struct {
	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	EmployeeType EmployeeType `json:"employee_type"`

	// Permanent fields - percentages of monthly gross, must sum to 100
	AnnualGross  decimal.Decimal `json:"annual_gross"`
	BasicPct     decimal.Decimal `json:"basic_pct"`
	TransportPct decimal.Decimal `json:"transport_pct"`
	HousingPct   decimal.Decimal `json:"housing_pct"`
	OthersPct    decimal.Decimal `json:"others_pct"`

	// Contract fields
	UnitCount   int64           `json:"unit_count"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`

	// Common optional deductions, all >= 0
	HealthPremium   decimal.Decimal `json:"health_premium"`
	Loan            decimal.Decimal `json:"loan"`
	Advance         decimal.Decimal `json:"advance"`
	Penalty         decimal.Decimal `json:"penalty"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`

	// Set for new hires; triggers pro-rata when it falls inside the
	// submission period.
	StartDate *time.Time `json:"start_date,omitempty"`
}

// PayBreakdown is the computed gross-to-net result for one employee.
// Value object: never persisted outside its parent submission and never
// edited after computation. NetPay == GrossMonthly - TotalDeductions.
type PayBreakdown struct {
	GrossMonthly decimal.Decimal `json:"gross_monthly"`

	// Permanent only, zero for contract
	Basic           decimal.Decimal `json:"basic"`
	Transport       decimal.Decimal `json:"transport"`
	Housing         decimal.Decimal `json:"housing"`
	Others          decimal.Decimal `json:"others"`
	ReliefMonthly   decimal.Decimal `json:"relief_monthly"`
	EmployeePension decimal.Decimal `json:"employee_pension"`
	EmployerPension decimal.Decimal `json:"employer_pension"` // informational, never deducted
	TaxableMonthly  decimal.Decimal `json:"taxable_monthly"`
	TaxDue          decimal.Decimal `json:"tax_due"` // after minimum-tax floor

	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

// SubmissionLine pairs an employee's terms with the breakdown computed
// from them.
type SubmissionLine struct {
	Terms     CompensationTerms `json:"terms"`
	Breakdown PayBreakdown      `json:"breakdown"`
}

// SubmissionTotals aggregates the per-line figures. Always recomputed from
// the lines, never independently edited.
type SubmissionTotals struct {
	Gross      decimal.Decimal `json:"gross"`
	Deductions decimal.Decimal `json:"deductions"`
	Net        decimal.Decimal `json:"net"`
}

// Status enum
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPaid      Status = "paid"

	// StatusMaster marks a company's template submission. It carries no
	// period, never transitions, and only seeds employee lists for new
	// drafts.
	StatusMaster Status = "master"
)

// PayrollSubmission groups a pay period, a company, and per-employee
// breakdowns under one lifecycle status.
type PayrollSubmission struct {
	ID          string
	CompanyID   string
	PeriodMonth int // 1-12, zero for master
	PeriodYear  int

	Lines  []SubmissionLine
	Totals SubmissionTotals
	Status Status

	SubmittedBy     *string
	SubmittedAt     *time.Time
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason *string
	PaidBy          *string
	PaidAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecomputeTotals rebuilds Totals from the lines. Called on every draft
// mutation so the aggregate invariant holds.
func (s *PayrollSubmission) RecomputeTotals() {
	totals := SubmissionTotals{
		Gross:      decimal.Zero,
		Deductions: decimal.Zero,
		Net:        decimal.Zero,
	}
	for _, line := range s.Lines {
		totals.Gross = totals.Gross.Add(line.Breakdown.GrossMonthly)
		totals.Deductions = totals.Deductions.Add(line.Breakdown.TotalDeductions)
		totals.Net = totals.Net.Add(line.Breakdown.NetPay)
	}
	s.Totals = totals
}

// IsMaster reports whether this is the non-workflow template variant.
func (s *PayrollSubmission) IsMaster() bool {
	return s.Status == StatusMaster
}
