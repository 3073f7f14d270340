package views

import (
	"context"
	"errors"
	"testing"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/forms"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_TerminalStatesAreFinal(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateLoading, m.State())

	require.NoError(t, m.Loaded())
	assert.ErrorIs(t, m.Fail("late error"), ErrInvalidTransition)
	assert.Equal(t, StateLoaded, m.State())
}

func TestLoadDashboard_NeedsOnboarding(t *testing.T) {
	d := LoadDashboard(context.Background(), storetest.NewMemory(), "nobody")

	assert.Equal(t, StateNeedsOnboarding, d.State)
	assert.Equal(t, "/onboarding", d.Redirect)
	assert.Nil(t, d.Metrics)
}

func TestLoadDashboard_StoreError(t *testing.T) {
	store := storetest.NewMemory()
	store.Err = errors.New("permission denied")

	d := LoadDashboard(context.Background(), store, "uid-1")

	assert.Equal(t, StateError, d.State)
	assert.Equal(t, "Failed to load your financial data", d.Error)
}

func TestLoadDashboard_Loaded(t *testing.T) {
	store := storetest.NewMemory()
	store.Put(models.UserProfile{UserID: "uid-1", Name: "Asha", Income: 10000, Expenses: 8000})

	d := LoadDashboard(context.Background(), store, "uid-1")

	require.Equal(t, StateLoaded, d.State)
	require.NotNil(t, d.Metrics)
	assert.Equal(t, "₹2,000", d.Metrics.Savings)
	assert.Equal(t, "20.0", d.Metrics.SavingsRate)
	assert.Equal(t, "80.0", d.Metrics.ExpenseRatio)
	assert.Equal(t, "0.0", d.Metrics.EMIRatio)
	require.Len(t, d.Insights, 3)
	assert.Equal(t, "saving", d.Insights[0].Rule)
	assert.Equal(t, "high_expense_ratio", d.Insights[1].Rule)
	assert.Equal(t, "excellent_savings", d.Insights[2].Rule)
}

func TestLoadDashboard_ZeroIncome(t *testing.T) {
	store := storetest.NewMemory()
	store.Put(models.UserProfile{UserID: "uid-1", Name: "Asha", Expenses: 500})

	d := LoadDashboard(context.Background(), store, "uid-1")

	require.Equal(t, StateLoaded, d.State)
	assert.Empty(t, d.Metrics.SavingsRate)
	assert.True(t, d.Metrics.Negative)
	require.Len(t, d.Insights, 1)
	assert.Equal(t, "no_income", d.Insights[0].Rule)
}

func TestProfileEditors_ReuseAndDiscard(t *testing.T) {
	store := storetest.NewMemory()
	store.Put(models.UserProfile{UserID: "uid-1", Name: "Asha", Income: 50000})
	editors := NewProfileEditors(nil)

	editor, view := editors.Open(context.Background(), store, "uid-1")
	require.NotNil(t, editor)
	assert.Equal(t, StateLoaded, view.State)
	require.NoError(t, editor.Set(forms.FieldName, "Asha R"))

	again, view := editors.Open(context.Background(), store, "uid-1")
	assert.Same(t, editor, again)
	assert.True(t, view.Form.HasChanges)
	assert.Equal(t, 1, store.Count("read"))

	editors.Discard("uid-1")
	_, view = editors.Open(context.Background(), store, "uid-1")
	assert.False(t, view.Form.HasChanges)
	assert.Equal(t, 2, store.Count("read"))
}

func TestProfileEditors_NeedsOnboarding(t *testing.T) {
	editor, view := NewProfileEditors(nil).Open(context.Background(), storetest.NewMemory(), "uid-1")

	assert.Nil(t, editor)
	assert.Equal(t, StateNeedsOnboarding, view.State)
}
