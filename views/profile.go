package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/forms"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const profileLoadFailed = "Failed to load profile"

type ProfileView struct {
	State    State              `json:"state"`
	Error    string             `json:"error,omitempty"`
	Redirect string             `json:"redirect,omitempty"`
	Form     *forms.EditorState `json:"form,omitempty"`
}

// ProfileEditors keeps one edit form per user between requests.
type ProfileEditors struct {
	mu      sync.Mutex
	editors map[string]*forms.Editor
	now     func() time.Time
}

func NewProfileEditors(now func() time.Time) *ProfileEditors {
	if now == nil {
		now = time.Now
	}
	return &ProfileEditors{
		editors: make(map[string]*forms.Editor),
		now:     now,
	}
}

// Open returns the user's editor, loading the stored profile the first time.
func (p *ProfileEditors) Open(ctx context.Context, store models.ProfileStore, userID string) (*forms.Editor, ProfileView) {
	p.mu.Lock()
	editor, ok := p.editors[userID]
	p.mu.Unlock()
	if ok {
		state := editor.State()
		return editor, ProfileView{State: StateLoaded, Form: &state}
	}

	m := NewMachine()
	profile, err := store.Read(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			_ = m.NeedsOnboarding()
			return nil, ProfileView{State: m.State(), Redirect: OnboardingPath}
		}
		logger.Get().Error("error loading profile", zap.String("user_id", userID), zap.Error(err))
		_ = m.Fail(profileLoadFailed)
		return nil, ProfileView{State: m.State(), Error: m.Reason()}
	}

	p.mu.Lock()
	if existing, ok := p.editors[userID]; ok {
		editor = existing
	} else {
		editor = forms.NewEditor(*profile, p.now)
		p.editors[userID] = editor
	}
	p.mu.Unlock()

	_ = m.Loaded()
	state := editor.State()
	return editor, ProfileView{State: m.State(), Form: &state}
}

// Discard drops the user's editor, e.g. on sign-out.
func (p *ProfileEditors) Discard(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.editors, userID)
}

func decimals(p models.UserProfile) (income, expenses, emi decimal.Decimal) {
	return decimal.NewFromFloat(p.Income), decimal.NewFromFloat(p.Expenses), decimal.NewFromFloat(p.EMI)
}
