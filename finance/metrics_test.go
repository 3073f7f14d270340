package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCalculate_Reference(t *testing.T) {
	m, err := Calculate(d(50000), d(30000), d(10000))
	require.NoError(t, err)

	assert.True(t, m.Savings.Equal(d(10000)))
	assert.Equal(t, "20.0", Percent(m.SavingsRate))
	assert.Equal(t, "60.0", Percent(m.ExpenseRatio))
	assert.Equal(t, "20.0", Percent(m.EMIRatio))
}

func TestCalculate_SavingsExactAndRounded(t *testing.T) {
	tests := []struct {
		income, expenses, emi int64
		savings               int64
		rate                  string
	}{
		{30000, 10000, 0, 20000, "66.7"},
		{3, 1, 1, 1, "33.3"},
		{1000, 1500, 0, -500, "-50.0"},
		{70000, 0, 0, 70000, "100.0"},
		{99999, 12345, 6789, 80865, "80.9"},
	}

	for _, tt := range tests {
		m, err := Calculate(d(tt.income), d(tt.expenses), d(tt.emi))
		require.NoError(t, err)
		assert.True(t, m.Savings.Equal(d(tt.savings)), "savings for %+v", tt)
		assert.Equal(t, tt.rate, Percent(m.SavingsRate), "rate for %+v", tt)
	}
}

func TestCalculate_ZeroIncome(t *testing.T) {
	_, err := Calculate(d(0), d(100), d(0))
	assert.ErrorIs(t, err, ErrZeroIncome)
}

func TestCalculate_Negative(t *testing.T) {
	_, err := Calculate(d(100), d(-1), d(0))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestCalculateFloat(t *testing.T) {
	m, err := CalculateFloat(50000, 30000, 10000)
	require.NoError(t, err)
	assert.Equal(t, "20.0", Percent(m.SavingsRate))
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "50,000", Amount(d(50000)))
	assert.Equal(t, "1,234.5", Amount(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "₹2,000", Rupees(d(2000)))
}
