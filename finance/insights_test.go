package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rules(in []Insight) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		out = append(out, i.Rule)
	}
	return out
}

func TestInsights_CoOccurring(t *testing.T) {
	m, err := Calculate(d(10000), d(8000), d(0))
	require.NoError(t, err)

	got := Insights(m)

	assert.Equal(t, []string{"saving", "high_expense_ratio", "excellent_savings"}, rules(got))
	assert.Equal(t, "Great! You're saving 20.0% of your income", got[0].Message)
	assert.Equal(t, "Your expense ratio is 80.0%. Consider reducing non-essential spending.", got[1].Message)
}

func TestInsights_Overspending(t *testing.T) {
	m, err := Calculate(d(50000), d(40000), d(20000))
	require.NoError(t, err)

	got := Insights(m)

	assert.Equal(t, []string{"overspending", "high_expense_ratio"}, rules(got))
	assert.Equal(t, InsightNegative, got[0].Kind)
	assert.Equal(t, "Warning: Your expenses exceed your income by ₹10,000", got[0].Message)
}

func TestInsights_HighEMI(t *testing.T) {
	m, err := Calculate(d(50000), d(20000), d(25000))
	require.NoError(t, err)

	assert.Equal(t, []string{"saving", "high_emi_ratio"}, rules(Insights(m)))
}

func TestInsights_ThresholdsAreStrict(t *testing.T) {
	// expense ratio exactly 70 and EMI ratio exactly 40 do not warn
	m, err := Calculate(d(100), d(70), d(30))
	require.NoError(t, err)
	assert.Equal(t, []string{"saving"}, rules(Insights(m)))

	m, err = Calculate(d(100), d(20), d(40))
	require.NoError(t, err)
	assert.Equal(t, []string{"saving", "excellent_savings"}, rules(Insights(m)))
}
