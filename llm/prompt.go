package llm

import (
	"fmt"
	"strings"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/finance"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/shopspring/decimal"
)

// HistoryWindow is how many prior turns are replayed into the prompt.
const HistoryWindow = 5

const notSpecified = "Not specified"

const advisorTemplate = `You are a professional and empathetic wealth management advisor specializing in personal finance for Indian users. Your goal is to provide practical, actionable financial advice.

User's Financial Profile:
- Name: %s
- Monthly Income: %s
- Monthly Expenses: %s
- Monthly EMI/Loans: %s
- Monthly Savings: %s (%s savings rate)
- Short-term Goals (1-3 years): %s
- Long-term Goals (5+ years): %s

Guidelines:
1. Always reference their actual financial numbers when giving advice
2. Be encouraging and positive while being realistic
3. Provide specific, actionable steps they can take
4. Consider their goals when making recommendations
5. Use Indian financial context (INR, Indian investment options, tax laws)
6. Keep responses concise but comprehensive (200-300 words ideal)
7. Use emojis sparingly for friendliness

Now respond to their question with personalized advice based on their profile.`

// BuildPrompt renders the single text input sent to the model: the advisor
// context, the last HistoryWindow turns and the new user message.
func BuildPrompt(message string, profile models.UserProfile, history []models.ChatTurn) string {
	income := decimal.NewFromFloat(profile.Income)
	expenses := decimal.NewFromFloat(profile.Expenses)
	emi := decimal.NewFromFloat(profile.EMI)
	savings := finance.Savings(income, expenses, emi)

	rate := "n/a"
	if m, err := finance.Calculate(income, expenses, emi); err == nil {
		rate = finance.Percent(m.SavingsRate) + "%"
	}

	var b strings.Builder
	fmt.Fprintf(&b, advisorTemplate,
		profile.Name,
		finance.Rupees(income),
		finance.Rupees(expenses),
		finance.Rupees(emi),
		finance.Rupees(savings),
		rate,
		orNotSpecified(profile.ShortTermGoals),
		orNotSpecified(profile.LongTermGoals),
	)
	b.WriteString("\n\n")

	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	for _, turn := range history {
		label := "Assistant"
		if turn.Role == models.RoleUser {
			label = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", label, turn.Text)
	}

	fmt.Fprintf(&b, "User: %s\n\nAssistant:", message)
	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
