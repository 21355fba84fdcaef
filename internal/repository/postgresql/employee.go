package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/meridianhq/payroll-backend-go/internal/domain/employee"
	"github.com/meridianhq/payroll-backend-go/internal/pkg/database"
)

type employeeDirectory struct {
	db *database.DB
}

// NewEmployeeDirectory returns the pgx-backed directory collaborator.
func NewEmployeeDirectory(db *database.DB) employee.Directory {
	return &employeeDirectory{db: db}
}

const employeeColumns = `
	id, company_id, employee_code, full_name, employment_type, hire_date,
	annual_gross, basic_pct, transport_pct, housing_pct, others_pct,
	unit_count, rate_per_unit,
	health_premium, loan, advance, penalty, other_deductions,
	is_active, created_at, updated_at
`

func (r *employeeDirectory) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND is_active = true
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, wrapStoreErr("failed to list employees", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, wrapStoreErr("failed to scan employee", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

func (r *employeeDirectory) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, wrapStoreErr("failed to get employee", err)
	}

	return emp, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.EmploymentType, &emp.HireDate,
		&emp.AnnualGross, &emp.BasicPct, &emp.TransportPct, &emp.HousingPct, &emp.OthersPct,
		&emp.UnitCount, &emp.RatePerUnit,
		&emp.HealthPremium, &emp.Loan, &emp.Advance, &emp.Penalty, &emp.OtherDeductions,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}
