package llm

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_Profile(t *testing.T) {
	p := testProfile
	p.LongTermGoals = "Retire at 50"

	prompt := BuildPrompt("What next?", p, nil)

	assert.Contains(t, prompt, "- Name: Asha\n")
	assert.Contains(t, prompt, "- Monthly Income: ₹50,000\n")
	assert.Contains(t, prompt, "- Monthly Expenses: ₹30,000\n")
	assert.Contains(t, prompt, "- Monthly EMI/Loans: ₹10,000\n")
	assert.Contains(t, prompt, "- Monthly Savings: ₹10,000 (20.0% savings rate)\n")
	assert.Contains(t, prompt, "- Short-term Goals (1-3 years): Not specified\n")
	assert.Contains(t, prompt, "- Long-term Goals (5+ years): Retire at 50\n")
	assert.True(t, strings.HasSuffix(prompt, "based on their profile.\n\nUser: What next?\n\nAssistant:"))
}

func TestBuildPrompt_LastFiveTurns(t *testing.T) {
	var history []models.ChatTurn
	for i := 0; i < 7; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		history = append(history, models.NewTurn(role, fmt.Sprintf("turn-%d", i), time.Now()))
	}

	prompt := BuildPrompt("latest", testProfile, history)

	assert.NotContains(t, prompt, "turn-0")
	assert.NotContains(t, prompt, "turn-1")
	assert.Contains(t, prompt, "User: turn-2\n\nAssistant: turn-3\n\nUser: turn-4\n\nAssistant: turn-5\n\nUser: turn-6\n\nUser: latest\n\nAssistant:")
}

func TestBuildPrompt_ZeroIncome(t *testing.T) {
	p := models.UserProfile{Name: "Ravi"}

	prompt := BuildPrompt("hi", p, nil)

	assert.Contains(t, prompt, "- Monthly Savings: ₹0 (n/a savings rate)\n")
}
