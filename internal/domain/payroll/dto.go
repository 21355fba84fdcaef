package payroll

import (
	"time"

	"github.com/meridianhq/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ========== TERMS INPUT ==========

// CompensationTermsInput is the wire form of one employee's pay terms.
// Pointer fields distinguish "absent" from "zero" so the missing-group
// check can be exact.
type CompensationTermsInput struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeType string `json:"employee_type"` // "permanent" or "contract"

	AnnualGross  *decimal.Decimal `json:"annual_gross,omitempty"`
	BasicPct     decimal.Decimal  `json:"basic_pct"`
	TransportPct decimal.Decimal  `json:"transport_pct"`
	HousingPct   decimal.Decimal  `json:"housing_pct"`
	OthersPct    decimal.Decimal  `json:"others_pct"`

	UnitCount   *int64           `json:"unit_count,omitempty"`
	RatePerUnit *decimal.Decimal `json:"rate_per_unit,omitempty"`

	HealthPremium   decimal.Decimal `json:"health_premium"`
	Loan            decimal.Decimal `json:"loan"`
	Advance         decimal.Decimal `json:"advance"`
	Penalty         decimal.Decimal `json:"penalty"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`

	StartDate *string `json:"start_date,omitempty"` // "2006-01-02"
}

func (r *CompensationTermsInput) Validate() error {
	var errs validator.ValidationErrors

	switch EmployeeType(r.EmployeeType) {
	case EmployeeTypePermanent:
		if r.AnnualGross == nil {
			errs = append(errs, validator.ValidationError{Field: "annual_gross", Message: "is required for permanent employees"})
		} else if r.AnnualGross.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "annual_gross", Message: "must be non-negative"})
		}

		pcts := map[string]decimal.Decimal{
			"basic_pct":     r.BasicPct,
			"transport_pct": r.TransportPct,
			"housing_pct":   r.HousingPct,
			"others_pct":    r.OthersPct,
		}
		for field, pct := range pcts {
			if pct.IsNegative() {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
			}
		}
		sum := r.BasicPct.Add(r.TransportPct).Add(r.HousingPct).Add(r.OthersPct)
		if !sum.Equal(hundred) {
			errs = append(errs, validator.ValidationError{Field: "percentage_split", Message: "basic, transport, housing and others percentages must sum to exactly 100"})
		}

	case EmployeeTypeContract:
		if r.UnitCount == nil {
			errs = append(errs, validator.ValidationError{Field: "unit_count", Message: "is required for contract employees"})
		} else if *r.UnitCount < 0 {
			errs = append(errs, validator.ValidationError{Field: "unit_count", Message: "must be non-negative"})
		}
		if r.RatePerUnit == nil {
			errs = append(errs, validator.ValidationError{Field: "rate_per_unit", Message: "is required for contract employees"})
		} else if r.RatePerUnit.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "rate_per_unit", Message: "must be non-negative"})
		}

	default:
		errs = append(errs, validator.ValidationError{Field: "employee_type", Message: "must be 'permanent' or 'contract'"})
	}

	deductions := map[string]decimal.Decimal{
		"health_premium":   r.HealthPremium,
		"loan":             r.Loan,
		"advance":          r.Advance,
		"penalty":          r.Penalty,
		"other_deductions": r.OtherDeductions,
	}
	for field, amount := range deductions {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be formatted as YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToTerms converts validated input into domain terms. Call Validate first;
// absent optional fields default to zero.
func (r *CompensationTermsInput) ToTerms() CompensationTerms {
	terms := CompensationTerms{
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		EmployeeType:    EmployeeType(r.EmployeeType),
		BasicPct:        r.BasicPct,
		TransportPct:    r.TransportPct,
		HousingPct:      r.HousingPct,
		OthersPct:       r.OthersPct,
		HealthPremium:   r.HealthPremium,
		Loan:            r.Loan,
		Advance:         r.Advance,
		Penalty:         r.Penalty,
		OtherDeductions: r.OtherDeductions,
	}
	if r.AnnualGross != nil {
		terms.AnnualGross = *r.AnnualGross
	}
	if r.UnitCount != nil {
		terms.UnitCount = *r.UnitCount
	}
	if r.RatePerUnit != nil {
		terms.RatePerUnit = *r.RatePerUnit
	}
	if r.StartDate != nil {
		if parsed, ok := validator.IsValidDate(*r.StartDate); ok {
			terms.StartDate = &parsed
		}
	}
	return terms
}

// ========== SUBMISSION DTOs ==========

type CreateSubmissionRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`

	// Employee sources, combined in order: explicit terms, then the whole
	// directory when AllEmployees is set, then the master template when
	// SeedFromMaster is set.
	Employees      []CompensationTermsInput `json:"employees,omitempty"`
	AllEmployees   bool                     `json:"all_employees,omitempty"`
	SeedFromMaster bool                     `json:"seed_from_master,omitempty"`
}

func (r *CreateSubmissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2020 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2020 or later"})
	}
	validateTermsList(r.Employees, &errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSubmissionRequest struct {
	ID        string                    `json:"-"`
	Employees *[]CompensationTermsInput `json:"employees,omitempty"`
}

func (r *UpdateSubmissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Employees != nil {
		validateTermsList(*r.Employees, &errs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectSubmissionRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectSubmissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertMasterRequest struct {
	Employees []CompensationTermsInput `json:"employees"`
}

func (r *UpsertMasterRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Employees) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employees", Message: "at least one employee is required"})
	}
	validateTermsList(r.Employees, &errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateTermsList(inputs []CompensationTermsInput, errs *validator.ValidationErrors) {
	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			// The index identifies the offending line for the caller.
			*errs = append(*errs, validator.ValidationError{
				Field:   "employees[" + validator.Itoa(i) + "]",
				Message: err.Error(),
			})
		}
	}
}

type ListFilter struct {
	PeriodMonth *int
	PeriodYear  *int
	Status      *string
}

// ========== RESPONSES ==========

type SubmissionResponse struct {
	ID          string           `json:"id"`
	CompanyID   string           `json:"company_id"`
	PeriodMonth int              `json:"period_month"`
	PeriodYear  int              `json:"period_year"`
	Status      string           `json:"status"`
	Employees   []SubmissionLine `json:"employees"`
	Totals      SubmissionTotals `json:"totals"`

	SubmittedBy     *string `json:"submitted_by,omitempty"`
	SubmittedAt     *string `json:"submitted_at,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectedBy      *string `json:"rejected_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	PaidBy          *string `json:"paid_by,omitempty"`
	PaidAt          *string `json:"paid_at,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListSubmissionResponse struct {
	Data       []SubmissionResponse `json:"data"`
	TotalCount int                  `json:"total_count"`
}

// NewSubmissionResponse maps the aggregate onto its wire form.
func NewSubmissionResponse(s PayrollSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:              s.ID,
		CompanyID:       s.CompanyID,
		PeriodMonth:     s.PeriodMonth,
		PeriodYear:      s.PeriodYear,
		Status:          string(s.Status),
		Employees:       s.Lines,
		Totals:          s.Totals,
		SubmittedBy:     s.SubmittedBy,
		SubmittedAt:     formatTimePtr(s.SubmittedAt),
		ApprovedBy:      s.ApprovedBy,
		ApprovedAt:      formatTimePtr(s.ApprovedAt),
		RejectedBy:      s.RejectedBy,
		RejectedAt:      formatTimePtr(s.RejectedAt),
		RejectionReason: s.RejectionReason,
		PaidBy:          s.PaidBy,
		PaidAt:          formatTimePtr(s.PaidAt),
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	str := t.Format(time.RFC3339)
	return &str
}
