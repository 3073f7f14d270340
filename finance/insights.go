package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type InsightKind string

const (
	InsightPositive InsightKind = "positive"
	InsightNegative InsightKind = "negative"
	InsightWarning  InsightKind = "warning"
)

type Insight struct {
	Kind    InsightKind `json:"kind"`
	Rule    string      `json:"rule"`
	Message string      `json:"message"`
}

var (
	expenseRatioLimit = decimal.NewFromInt(70)
	emiRatioLimit     = decimal.NewFromInt(40)
	goodSavingsRate   = decimal.NewFromInt(20)
)

// Insights evaluates every rule on m independently and returns all that apply,
// in display order.
func Insights(m Metrics) []Insight {
	var out []Insight

	if !m.Savings.IsNegative() {
		out = append(out, Insight{
			Kind:    InsightPositive,
			Rule:    "saving",
			Message: fmt.Sprintf("Great! You're saving %s%% of your income", Percent(m.SavingsRate)),
		})
	} else {
		out = append(out, Insight{
			Kind:    InsightNegative,
			Rule:    "overspending",
			Message: fmt.Sprintf("Warning: Your expenses exceed your income by %s", Rupees(m.Savings.Abs())),
		})
	}

	if m.ExpenseRatio.GreaterThan(expenseRatioLimit) {
		out = append(out, Insight{
			Kind:    InsightWarning,
			Rule:    "high_expense_ratio",
			Message: fmt.Sprintf("Your expense ratio is %s%%. Consider reducing non-essential spending.", Percent(m.ExpenseRatio)),
		})
	}

	if m.EMIRatio.GreaterThan(emiRatioLimit) {
		out = append(out, Insight{
			Kind:    InsightWarning,
			Rule:    "high_emi_ratio",
			Message: fmt.Sprintf("Your EMI is %s%% of income. Experts recommend keeping it below 40%%.", Percent(m.EMIRatio)),
		})
	}

	if m.SavingsRate.GreaterThanOrEqual(goodSavingsRate) {
		out = append(out, Insight{
			Kind:    InsightPositive,
			Rule:    "excellent_savings",
			Message: "Excellent savings rate! You're on track for your financial goals.",
		})
	}

	return out
}

// NoIncomeInsight is shown instead of the ratio rules when income is zero.
func NoIncomeInsight() Insight {
	return Insight{
		Kind:    InsightWarning,
		Rule:    "no_income",
		Message: "Add your monthly income to see your savings rate and ratios.",
	}
}
