package payroll

import (
	"github.com/meridianhq/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Statutory constants. Rates are exact decimal literals, never floats.
var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)

	// Consolidated relief: max(1% of annual gross, 200,000 + 20% of annual gross)
	reliefFlat      = decimal.NewFromInt(200000)
	reliefGrossRate = decimal.New(20, -2) // 0.20
	reliefFloorRate = decimal.New(1, -2)  // 0.01

	employeePensionRate = decimal.New(8, -2)  // 0.08 of gross
	employerPensionRate = decimal.New(10, -2) // 0.10 of gross, informational

	minimumTaxRate = decimal.New(5, -3) // 0.005 of gross
)

// taxBand is one bracket of the progressive annual PAYE table. A zero
// width marks the open-ended top band.
type taxBand struct {
	width decimal.Decimal
	rate  decimal.Decimal
}

var taxBands = []taxBand{
	{width: decimal.NewFromInt(300000), rate: decimal.New(7, -2)},
	{width: decimal.NewFromInt(300000), rate: decimal.New(11, -2)},
	{width: decimal.NewFromInt(500000), rate: decimal.New(15, -2)},
	{width: decimal.NewFromInt(500000), rate: decimal.New(19, -2)},
	{width: decimal.NewFromInt(1600000), rate: decimal.New(21, -2)},
	{width: decimal.Zero, rate: decimal.New(24, -2)},
}

// Calculator converts validated compensation terms into an itemized
// breakdown. Pure and deterministic: no I/O, no locking, safe to run in
// parallel across the employees of one submission.
//
// All intermediate arithmetic is exact fixed-point. The permanent chain is
// computed at annual scale so relief, pension, and the taxable base involve
// no division until the single divide-by-12 at the end; each displayed
// component is rounded once, half-up, to the minor unit. NetPay and
// TotalDeductions are derived from the rounded components, so
// NetPay == GrossMonthly - TotalDeductions holds exactly.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute produces the breakdown for one employee within the given pay
// period. Terms must be pre-validated; over that domain Compute is total.
func (c *Calculator) Compute(terms payroll.CompensationTerms, periodMonth, periodYear int) payroll.PayBreakdown {
	if terms.EmployeeType == payroll.EmployeeTypeContract {
		return c.computeContract(terms)
	}
	return c.computePermanent(terms, periodMonth, periodYear)
}

// Contract path: gross = units x rate, deductions are the standing ones
// only. Contractors are treated as self-employed: no tax, no pension, no
// advance recovery, and the salary split fields stay zero.
func (c *Calculator) computeContract(terms payroll.CompensationTerms) payroll.PayBreakdown {
	gross := terms.RatePerUnit.Mul(decimal.NewFromInt(terms.UnitCount)).Round(2)

	totalDeductions := terms.HealthPremium.Round(2).
		Add(terms.Loan.Round(2)).
		Add(terms.Penalty.Round(2))

	return payroll.PayBreakdown{
		GrossMonthly:    gross,
		Basic:           decimal.Zero,
		Transport:       decimal.Zero,
		Housing:         decimal.Zero,
		Others:          decimal.Zero,
		ReliefMonthly:   decimal.Zero,
		EmployeePension: decimal.Zero,
		EmployerPension: decimal.Zero,
		TaxableMonthly:  decimal.Zero,
		TaxDue:          decimal.Zero,
		TotalDeductions: totalDeductions,
		NetPay:          gross.Sub(totalDeductions),
	}
}

// Permanent path: statutory gross-to-net over the annualized figures.
func (c *Calculator) computePermanent(terms payroll.CompensationTerms, periodMonth, periodYear int) payroll.PayBreakdown {
	annual := terms.AnnualGross

	// New hires starting inside this period earn a prorated first month.
	// The prorated gross is the month's gross: the split, relief
	// annualization, pension, and tax all run on it.
	if terms.StartDate != nil &&
		int(terms.StartDate.Month()) == periodMonth &&
		terms.StartDate.Year() == periodYear {
		adj := ProRate(annual, *terms.StartDate)
		annual = adj.FirstMonthPay.Mul(monthsPerYear)
	}

	grossMonthly := annual.Div(monthsPerYear)

	basic := grossMonthly.Mul(terms.BasicPct).Div(hundred).Round(2)
	transport := grossMonthly.Mul(terms.TransportPct).Div(hundred).Round(2)
	housing := grossMonthly.Mul(terms.HousingPct).Div(hundred).Round(2)
	others := grossMonthly.Mul(terms.OthersPct).Div(hundred).Round(2)

	reliefAnnual := decimal.Max(
		annual.Mul(reliefFloorRate),
		reliefFlat.Add(annual.Mul(reliefGrossRate)),
	)
	pensionAnnual := annual.Mul(employeePensionRate)

	taxableAnnual := annual.Sub(reliefAnnual).Sub(pensionAnnual)
	if taxableAnnual.IsNegative() {
		taxableAnnual = decimal.Zero
	}

	taxAnnual := progressiveAnnualTax(taxableAnnual)

	// Minimum tax floor, compared at annual scale (both sides carry the
	// same /12).
	minimumTaxAnnual := annual.Mul(minimumTaxRate)
	if taxAnnual.LessThan(minimumTaxAnnual) {
		taxAnnual = minimumTaxAnnual
	}

	gross := grossMonthly.Round(2)
	relief := reliefAnnual.Div(monthsPerYear).Round(2)
	employeePension := pensionAnnual.Div(monthsPerYear).Round(2)
	employerPension := annual.Mul(employerPensionRate).Div(monthsPerYear).Round(2)
	taxable := taxableAnnual.Div(monthsPerYear).Round(2)
	taxDue := taxAnnual.Div(monthsPerYear).Round(2)

	totalDeductions := employeePension.
		Add(taxDue).
		Add(terms.HealthPremium.Round(2)).
		Add(terms.Loan.Round(2)).
		Add(terms.Advance.Round(2)).
		Add(terms.Penalty.Round(2)).
		Add(terms.OtherDeductions.Round(2))

	return payroll.PayBreakdown{
		GrossMonthly:    gross,
		Basic:           basic,
		Transport:       transport,
		Housing:         housing,
		Others:          others,
		ReliefMonthly:   relief,
		EmployeePension: employeePension,
		EmployerPension: employerPension,
		TaxableMonthly:  taxable,
		TaxDue:          taxDue,
		TotalDeductions: totalDeductions,
		NetPay:          gross.Sub(totalDeductions),
	}
}

// progressiveAnnualTax consumes each band in order and stops once the
// remaining taxable amount is exhausted.
func progressiveAnnualTax(taxableAnnual decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	remaining := taxableAnnual

	for _, band := range taxBands {
		if !remaining.IsPositive() {
			break
		}
		taxed := remaining
		if band.width.IsPositive() && remaining.GreaterThan(band.width) {
			taxed = band.width
		}
		tax = tax.Add(taxed.Mul(band.rate))
		remaining = remaining.Sub(taxed)
	}

	return tax
}
