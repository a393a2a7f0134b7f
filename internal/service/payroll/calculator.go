package payroll

import (
	"github.com/shopspring/decimal"
)

// Rates are the payroll calculation constants taken from configuration.
type Rates struct {
	OvertimeRatePerHour decimal.Decimal
	TaxRate             decimal.Decimal
}

// PeriodFacts summarize one employee's month as counted from attendance
// and approved leave.
type PeriodFacts struct {
	WorkDays      int
	AttendedDays  int
	PresentDays   int
	LateDays      int
	LeaveDays     int
	OvertimeHours decimal.Decimal
}

// Breakdown is the computed salary for one employee-month.
type Breakdown struct {
	BasicSalary    decimal.Decimal
	Allowances     decimal.Decimal
	OvertimeHours  decimal.Decimal
	OvertimePay    decimal.Decimal
	AbsencePenalty decimal.Decimal
	GrossSalary    decimal.Decimal
	TaxAmount      decimal.Decimal
	NetSalary      decimal.Decimal
	AbsentDays     int
}

// AbsentDays counts unexplained missing workdays. Approved leave days
// are not absences; the result never goes below zero when leave and
// attendance overlap.
func AbsentDays(facts PeriodFacts) int {
	absent := facts.WorkDays - facts.AttendedDays - facts.LeaveDays
	if absent < 0 {
		return 0
	}
	return absent
}

// Calculate produces the salary breakdown for one employee-month.
//
// Tax applies to gross earnings (basic, allowances and overtime pay);
// the absence penalty is a deduction taken after tax, one day's basic
// salary per absent day. All money amounts are rounded to 2 decimal
// places at the end of each step, and net salary never goes below zero.
func Calculate(basic, allowances, otherDeductions decimal.Decimal, facts PeriodFacts, rates Rates) Breakdown {
	b := Breakdown{
		BasicSalary:   basic,
		Allowances:    allowances,
		OvertimeHours: facts.OvertimeHours,
		AbsentDays:    AbsentDays(facts),
	}

	b.OvertimePay = facts.OvertimeHours.Mul(rates.OvertimeRatePerHour).Round(2)

	if facts.WorkDays > 0 && b.AbsentDays > 0 {
		perDay := basic.Div(decimal.NewFromInt(int64(facts.WorkDays)))
		b.AbsencePenalty = perDay.Mul(decimal.NewFromInt(int64(b.AbsentDays))).Round(2)
	} else {
		b.AbsencePenalty = decimal.Zero
	}

	b.GrossSalary = basic.Add(allowances).Add(b.OvertimePay).Round(2)
	b.TaxAmount = b.GrossSalary.Mul(rates.TaxRate).Round(2)

	b.NetSalary = b.GrossSalary.Sub(b.TaxAmount).Sub(b.AbsencePenalty).Sub(otherDeductions).Round(2)
	if b.NetSalary.IsNegative() {
		b.NetSalary = decimal.Zero
	}

	return b
}
