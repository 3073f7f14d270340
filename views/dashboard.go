package views

import (
	"context"
	"errors"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/finance"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"go.uber.org/zap"
)

const dashboardLoadFailed = "Failed to load your financial data"

// MetricCards is the display form of finance.Metrics.
type MetricCards struct {
	Income       string `json:"income"`
	Expenses     string `json:"expenses"`
	EMI          string `json:"emi"`
	Savings      string `json:"savings"`
	SavingsRate  string `json:"savingsRate,omitempty"`
	ExpenseRatio string `json:"expenseRatio,omitempty"`
	EMIRatio     string `json:"emiRatio,omitempty"`
	Negative     bool   `json:"negative"`
}

type Dashboard struct {
	State    State               `json:"state"`
	Error    string              `json:"error,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
	Profile  *models.UserProfile `json:"profile,omitempty"`
	Metrics  *MetricCards        `json:"metrics,omitempty"`
	Insights []finance.Insight   `json:"insights,omitempty"`
}

// LoadDashboard reads the profile and derives the metric cards and insights.
func LoadDashboard(ctx context.Context, store models.ProfileStore, userID string) Dashboard {
	m := NewMachine()

	profile, err := store.Read(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			_ = m.NeedsOnboarding()
			return Dashboard{State: m.State(), Redirect: OnboardingPath}
		}
		logger.Get().Error("error loading dashboard", zap.String("user_id", userID), zap.Error(err))
		_ = m.Fail(dashboardLoadFailed)
		return Dashboard{State: m.State(), Error: m.Reason()}
	}

	cards, insights := deriveCards(*profile)
	_ = m.Loaded()
	return Dashboard{
		State:    m.State(),
		Profile:  profile,
		Metrics:  cards,
		Insights: insights,
	}
}

func deriveCards(p models.UserProfile) (*MetricCards, []finance.Insight) {
	metrics, err := finance.CalculateFloat(p.Income, p.Expenses, p.EMI)
	if err != nil {
		// zero income: show the amounts without ratios
		income, expenses, emi := decimals(p)
		savings := finance.Savings(income, expenses, emi)
		return &MetricCards{
			Income:   finance.Rupees(income),
			Expenses: finance.Rupees(expenses),
			EMI:      finance.Rupees(emi),
			Savings:  finance.Rupees(savings),
			Negative: savings.IsNegative(),
		}, []finance.Insight{finance.NoIncomeInsight()}
	}

	return &MetricCards{
		Income:       finance.Rupees(metrics.Income),
		Expenses:     finance.Rupees(metrics.Expenses),
		EMI:          finance.Rupees(metrics.EMI),
		Savings:      finance.Rupees(metrics.Savings),
		SavingsRate:  finance.Percent(metrics.SavingsRate),
		ExpenseRatio: finance.Percent(metrics.ExpenseRatio),
		EMIRatio:     finance.Percent(metrics.EMIRatio),
		Negative:     metrics.Savings.IsNegative(),
	}, finance.Insights(metrics)
}
