package forms

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/go-playground/validator/v10"
)

type Field string

const (
	FieldName           Field = "name"
	FieldIncome         Field = "income"
	FieldExpenses       Field = "expenses"
	FieldEMI            Field = "emi"
	FieldShortTermGoals Field = "shortTermGoals"
	FieldLongTermGoals  Field = "longTermGoals"
)

// Fields lists the form fields in validation order.
var Fields = []Field{FieldName, FieldIncome, FieldExpenses, FieldEMI, FieldShortTermGoals, FieldLongTermGoals}

const OverspendWarning = "Warning: Your expenses + EMI exceed your income!"

var (
	// ErrOverspend blocks a save until the user acknowledges the warning.
	ErrOverspend    = errors.New("expenses plus EMI exceed income")
	ErrUnknownField = errors.New("unknown form field")
)

// Values are the raw text inputs of the profile form.
type Values struct {
	Name           string `json:"name" validate:"max=100"`
	Income         string `json:"income" validate:"max=32"`
	Expenses       string `json:"expenses" validate:"max=32"`
	EMI            string `json:"emi" validate:"max=32"`
	ShortTermGoals string `json:"shortTermGoals" validate:"max=1000"`
	LongTermGoals  string `json:"longTermGoals" validate:"max=1000"`
}

func (v Values) Get(f Field) (string, error) {
	switch f {
	case FieldName:
		return v.Name, nil
	case FieldIncome:
		return v.Income, nil
	case FieldExpenses:
		return v.Expenses, nil
	case FieldEMI:
		return v.EMI, nil
	case FieldShortTermGoals:
		return v.ShortTermGoals, nil
	case FieldLongTermGoals:
		return v.LongTermGoals, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
}

func (v *Values) Set(f Field, value string) error {
	switch f {
	case FieldName:
		v.Name = value
	case FieldIncome:
		v.Income = value
	case FieldExpenses:
		v.Expenses = value
	case FieldEMI:
		v.EMI = value
	case FieldShortTermGoals:
		v.ShortTermGoals = value
	case FieldLongTermGoals:
		v.LongTermGoals = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return nil
}

// ValuesFromProfile renders a stored profile back into form inputs.
func ValuesFromProfile(p models.UserProfile) Values {
	return Values{
		Name:           p.Name,
		Income:         formatAmount(p.Income),
		Expenses:       formatAmount(p.Expenses),
		EMI:            formatAmount(p.EMI),
		ShortTermGoals: p.ShortTermGoals,
		LongTermGoals:  p.LongTermGoals,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidationError is the first rule a submission failed.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Parsed is a validated submission with trimmed text.
type Parsed struct {
	Name           string
	Income         float64
	Expenses       float64
	EMI            float64
	ShortTermGoals string
	LongTermGoals  string
}

// Overspent reports whether expenses plus EMI exceed income.
func (p Parsed) Overspent() bool {
	return p.Expenses+p.EMI > p.Income
}

func (p Parsed) Fields() models.ProfileFields {
	return models.ProfileFields{
		Name:           &p.Name,
		Income:         &p.Income,
		Expenses:       &p.Expenses,
		EMI:            &p.EMI,
		ShortTermGoals: &p.ShortTermGoals,
		LongTermGoals:  &p.LongTermGoals,
	}
}

var validate = validator.New()

var lengthMessages = map[string]string{
	"Name":           "Name must be at most 100 characters",
	"Income":         "Please enter a valid income amount",
	"Expenses":       "Please enter a valid expenses amount",
	"EMI":            "Please enter a valid EMI amount",
	"ShortTermGoals": "Short-term goals must be at most 1000 characters",
	"LongTermGoals":  "Long-term goals must be at most 1000 characters",
}

var structFields = map[string]Field{
	"Name":           FieldName,
	"Income":         FieldIncome,
	"Expenses":       FieldExpenses,
	"EMI":            FieldEMI,
	"ShortTermGoals": FieldShortTermGoals,
	"LongTermGoals":  FieldLongTermGoals,
}

// Validate applies the form rules in order and stops at the first failure.
// The overspend check is left to the caller.
func Validate(v Values) (Parsed, error) {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		return Parsed{}, &ValidationError{Field: FieldName, Message: "Please enter your name"}
	}

	income, ok := parseAmount(v.Income)
	if !ok {
		return Parsed{}, &ValidationError{Field: FieldIncome, Message: "Please enter a valid income amount"}
	}
	expenses, ok := parseAmount(v.Expenses)
	if !ok {
		return Parsed{}, &ValidationError{Field: FieldExpenses, Message: "Please enter a valid expenses amount"}
	}
	emi, ok := parseAmount(v.EMI)
	if !ok {
		return Parsed{}, &ValidationError{Field: FieldEMI, Message: "Please enter a valid EMI amount"}
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0].StructField()
			return Parsed{}, &ValidationError{Field: structFields[first], Message: lengthMessages[first]}
		}
		return Parsed{}, err
	}

	return Parsed{
		Name:           name,
		Income:         income,
		Expenses:       expenses,
		EMI:            emi,
		ShortTermGoals: strings.TrimSpace(v.ShortTermGoals),
		LongTermGoals:  strings.TrimSpace(v.LongTermGoals),
	}, nil
}

// CheckOverspend returns ErrOverspend unless the user acknowledged it.
func CheckOverspend(p Parsed, acknowledged bool) error {
	if p.Overspent() && !acknowledged {
		return ErrOverspend
	}
	return nil
}

// parseAmount accepts plain decimal notation only; hex floats and digit
// separators are rejected.
func parseAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if strings.ContainsAny(raw, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}
