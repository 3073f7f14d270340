// Package views models each page as a small state machine:
// loading -> loaded | needs_onboarding | error.
package views

import (
	"errors"
	"fmt"
)

type State string

const (
	StateLoading         State = "loading"
	StateLoaded          State = "loaded"
	StateNeedsOnboarding State = "needs_onboarding"
	StateError           State = "error"
)

const OnboardingPath = "/onboarding"

var ErrInvalidTransition = errors.New("invalid view state transition")

// Machine holds the current state of one view load. Only loading may move
// to another state; the terminal states are final.
type Machine struct {
	state  State
	reason string
}

func NewMachine() *Machine {
	return &Machine{state: StateLoading}
}

func (m *Machine) State() State { return m.state }

func (m *Machine) Reason() string { return m.reason }

func (m *Machine) transition(to State, reason string) error {
	if m.state != StateLoading {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, to)
	}
	m.state = to
	m.reason = reason
	return nil
}

func (m *Machine) Loaded() error { return m.transition(StateLoaded, "") }

func (m *Machine) NeedsOnboarding() error { return m.transition(StateNeedsOnboarding, "") }

func (m *Machine) Fail(reason string) error { return m.transition(StateError, reason) }
