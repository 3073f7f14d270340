package finance

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrZeroIncome     = errors.New("income is zero, ratios are undefined")
	ErrNegativeAmount = errors.New("amounts must not be negative")
)

var hundred = decimal.NewFromInt(100)

// Metrics are derived from a profile on every request and never stored.
// Ratios are percentages rounded to one decimal place.
type Metrics struct {
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	EMI          decimal.Decimal
	Savings      decimal.Decimal
	SavingsRate  decimal.Decimal
	ExpenseRatio decimal.Decimal
	EMIRatio     decimal.Decimal
}

// Savings is income minus expenses minus EMI, exact.
func Savings(income, expenses, emi decimal.Decimal) decimal.Decimal {
	return income.Sub(expenses).Sub(emi)
}

func Calculate(income, expenses, emi decimal.Decimal) (Metrics, error) {
	if income.IsNegative() || expenses.IsNegative() || emi.IsNegative() {
		return Metrics{}, ErrNegativeAmount
	}
	if income.IsZero() {
		return Metrics{}, ErrZeroIncome
	}

	savings := Savings(income, expenses, emi)
	return Metrics{
		Income:       income,
		Expenses:     expenses,
		EMI:          emi,
		Savings:      savings,
		SavingsRate:  percent(savings, income),
		ExpenseRatio: percent(expenses, income),
		EMIRatio:     percent(emi, income),
	}, nil
}

// CalculateFloat is Calculate for the float64 amounts stored on a profile.
func CalculateFloat(income, expenses, emi float64) (Metrics, error) {
	return Calculate(decimal.NewFromFloat(income), decimal.NewFromFloat(expenses), decimal.NewFromFloat(emi))
}

func percent(part, whole decimal.Decimal) decimal.Decimal {
	return part.Mul(hundred).DivRound(whole, 8).Round(1)
}

// Percent renders a ratio with exactly one decimal, e.g. "20.0".
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1)
}
