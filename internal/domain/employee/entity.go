package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentTypePermanent EmploymentType = "permanent"
	EmploymentTypeContract  EmploymentType = "contract"
)

// Employee is the directory snapshot the payroll core consumes. The full
// HR profile (bank details, documents, schedules) belongs to the directory
// service; only identity and compensation terms are read here.
type Employee struct {
	ID             string
	CompanyID      string
	EmployeeCode   string
	FullName       string
	EmploymentType EmploymentType
	HireDate       time.Time

	// Permanent terms
	AnnualGross  decimal.Decimal
	BasicPct     decimal.Decimal
	TransportPct decimal.Decimal
	HousingPct   decimal.Decimal
	OthersPct    decimal.Decimal

	// Contract terms
	UnitCount   int64
	RatePerUnit decimal.Decimal

	// Standing deductions
	HealthPremium   decimal.Decimal
	Loan            decimal.Decimal
	Advance         decimal.Decimal
	Penalty         decimal.Decimal
	OtherDeductions decimal.Decimal

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
