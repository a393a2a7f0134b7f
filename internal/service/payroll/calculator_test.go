package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func standardRates() Rates {
	return Rates{
		OvertimeRatePerHour: decimal.NewFromInt(25000),
		TaxRate:             decimal.RequireFromString("0.05"),
	}
}

func TestCalculate_FullMonth(t *testing.T) {
	b := Calculate(
		decimal.NewFromInt(5000000), decimal.Zero, decimal.Zero,
		PeriodFacts{WorkDays: 22, AttendedDays: 22, PresentDays: 22},
		standardRates(),
	)

	assert.Equal(t, 0, b.AbsentDays)
	assert.True(t, b.AbsencePenalty.IsZero())
	assert.Equal(t, "5000000.00", b.GrossSalary.StringFixed(2))
	assert.Equal(t, "250000.00", b.TaxAmount.StringFixed(2))
	assert.Equal(t, "4750000.00", b.NetSalary.StringFixed(2))
}

func TestCalculate_TwoAbsences(t *testing.T) {
	b := Calculate(
		decimal.NewFromInt(5000000), decimal.Zero, decimal.Zero,
		PeriodFacts{WorkDays: 22, AttendedDays: 20, PresentDays: 20},
		standardRates(),
	)

	assert.Equal(t, 2, b.AbsentDays)
	assert.Equal(t, "454545.45", b.AbsencePenalty.StringFixed(2))
	assert.Equal(t, "250000.00", b.TaxAmount.StringFixed(2))
	assert.Equal(t, "4295454.55", b.NetSalary.StringFixed(2))
}

func TestCalculate_OvertimePay(t *testing.T) {
	b := Calculate(
		decimal.NewFromInt(5000000), decimal.NewFromInt(500000), decimal.Zero,
		PeriodFacts{
			WorkDays:      22,
			AttendedDays:  22,
			OvertimeHours: decimal.RequireFromString("10.5"),
		},
		standardRates(),
	)

	assert.Equal(t, "262500.00", b.OvertimePay.StringFixed(2))
	assert.Equal(t, "5762500.00", b.GrossSalary.StringFixed(2))
	assert.Equal(t, "288125.00", b.TaxAmount.StringFixed(2))
	assert.Equal(t, "5474375.00", b.NetSalary.StringFixed(2))
}

func TestCalculate_LeaveDaysAreNotAbsences(t *testing.T) {
	facts := PeriodFacts{WorkDays: 22, AttendedDays: 17, LeaveDays: 5}

	assert.Equal(t, 0, AbsentDays(facts))
}

func TestCalculate_AbsentDaysNeverNegative(t *testing.T) {
	// Leave overlapping attended days must not push the count below zero.
	facts := PeriodFacts{WorkDays: 20, AttendedDays: 18, LeaveDays: 5}

	assert.Equal(t, 0, AbsentDays(facts))
}

func TestCalculate_NetSalaryClampedAtZero(t *testing.T) {
	b := Calculate(
		decimal.NewFromInt(1000000), decimal.Zero, decimal.NewFromInt(2000000),
		PeriodFacts{WorkDays: 22, AttendedDays: 2},
		standardRates(),
	)

	assert.True(t, b.NetSalary.IsZero())
}
