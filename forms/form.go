package forms

import (
	"context"
	"errors"
	"fmt"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
)

type FieldState string

const (
	StateIdle      FieldState = "idle"
	StateEditing   FieldState = "editing"
	StateValidated FieldState = "validated"
	StateInvalid   FieldState = "invalid"
)

// States tracks idle -> editing -> validated|invalid for each field.
type States map[Field]FieldState

func NewStates() States {
	s := make(States, len(Fields))
	for _, f := range Fields {
		s[f] = StateIdle
	}
	return s
}

func (s States) Edit(f Field) {
	s[f] = StateEditing
}

// Apply records the outcome of a validation run. Fields before the failing
// one passed, the failing one is invalid and fields after it are untouched.
func (s States) Apply(err error) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		for _, f := range Fields {
			s[f] = StateValidated
		}
		return
	}
	for _, f := range Fields {
		if f == verr.Field {
			s[f] = StateInvalid
			return
		}
		s[f] = StateValidated
	}
}

func (s States) Reset() {
	for _, f := range Fields {
		s[f] = StateIdle
	}
}

// Onboard validates a first-time submission and creates the user's profile.
// Nothing is written when validation fails or the overspend warning is not
// acknowledged.
func Onboard(ctx context.Context, store models.ProfileStore, session *models.Session, values Values, acknowledgeOverspend bool) (Parsed, error) {
	parsed, err := Validate(values)
	if err != nil {
		return Parsed{}, err
	}
	if err := CheckOverspend(parsed, acknowledgeOverspend); err != nil {
		return parsed, err
	}

	fields := parsed.Fields()
	email := session.Email
	fields.Email = &email

	if err := store.CreateOrMerge(ctx, session.UserID, fields); err != nil {
		return parsed, fmt.Errorf("onboarding: %w", err)
	}
	return parsed, nil
}
