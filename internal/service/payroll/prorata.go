package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProRataResult is a new hire's first-month entitlement.
type ProRataResult struct {
	FirstMonthPay    decimal.Decimal
	DaysWorked       int
	DaysInStartMonth int

	// Advisory, for year-to-date projections; not used in any deduction
	// calculation.
	DaysRemainingInYear int
}

// ProRate computes the partial first-month pay for an employee whose start
// date falls inside the current pay period. The start day itself counts as
// worked; starting on day one yields the full monthly gross.
func ProRate(annualGross decimal.Decimal, startDate time.Time) ProRataResult {
	daysInMonth := daysIn(startDate.Month(), startDate.Year())
	daysWorked := daysInMonth - startDate.Day() + 1

	monthlyGross := annualGross.Div(decimal.NewFromInt(12))
	firstMonthPay := monthlyGross.
		Mul(decimal.NewFromInt(int64(daysWorked))).
		Div(decimal.NewFromInt(int64(daysInMonth)))

	endOfYear := time.Date(startDate.Year(), time.December, 31, 0, 0, 0, 0, startDate.Location())

	return ProRataResult{
		FirstMonthPay:       firstMonthPay,
		DaysWorked:          daysWorked,
		DaysInStartMonth:    daysInMonth,
		DaysRemainingInYear: endOfYear.YearDay() - startDate.YearDay() + 1,
	}
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
