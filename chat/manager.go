// Package chat keeps the in-memory advisor conversations of signed-in users.
// Turns are never persisted; closing a session discards them.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/finance"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/llm"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/observability"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/sse"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/views"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ErrorTurnText = "I apologize, but I'm having trouble processing your request right now. " +
		"This could be due to API connectivity issues. Please try again in a moment."
	UnconfiguredMessage = "Gemini API key is not configured. Please add GEMINI_API_KEY to your .env file."

	welcomeTemplate = "Hi %s! 👋 I'm your AI wealth advisor. I can see you earn %s per month. " +
		"I'm here to help you with financial planning, investment advice, budgeting tips, " +
		"and achieving your goals. What would you like to discuss today?"
	loadFailed = "Failed to load profile"
)

var Suggestions = []string{
	"How can I save more money each month?",
	"What investments should I consider?",
	"How can I reduce my expenses?",
	"Should I pay off my loans faster?",
	"Help me create a budget plan",
}

var (
	ErrEmptyMessage          = errors.New("message is empty")
	ErrAssistantUnconfigured = errors.New(UnconfiguredMessage)
	ErrRequestInFlight       = errors.New("a request is already in flight")
	ErrSessionNotFound       = errors.New("chat session not found")
	ErrSessionClosed         = errors.New("chat session closed")
	ErrUnknownSuggestion     = errors.New("unknown suggestion")
	ErrSuggestionsHidden     = errors.New("suggestions are no longer available")
)

type session struct {
	id       string
	userID   string
	profile  models.UserProfile
	turns    []models.ChatTurn
	input    string
	inFlight bool
}

// View is what the chat page renders.
type View struct {
	State       views.State       `json:"state"`
	Error       string            `json:"error,omitempty"`
	Redirect    string            `json:"redirect,omitempty"`
	SessionID   string            `json:"sessionId,omitempty"`
	Turns       []models.ChatTurn `json:"turns,omitempty"`
	Input       string            `json:"input"`
	Sending     bool              `json:"sending"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*session
	store     models.ProfileStore
	assistant llm.Assistant
	hub       *sse.Hub
	metrics   *observability.Metrics
	now       func() time.Time
}

func NewManager(store models.ProfileStore, assistant llm.Assistant, hub *sse.Hub, metrics *observability.Metrics) *Manager {
	if metrics == nil {
		metrics = observability.Default
	}
	if hub == nil {
		hub = sse.NewHub()
	}
	return &Manager{
		sessions:  make(map[string]*session),
		store:     store,
		assistant: assistant,
		hub:       hub,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (m *Manager) Hub() *sse.Hub { return m.hub }

// Open reads the user's profile and starts a session seeded with the
// welcome turn. A user has at most one live session; opening a new one
// discards the previous one. Without a profile the view asks for onboarding.
func (m *Manager) Open(ctx context.Context, userID string) View {
	vm := views.NewMachine()
	profile, err := m.store.Read(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			_ = vm.NeedsOnboarding()
			return View{State: vm.State(), Redirect: views.OnboardingPath}
		}
		logger.Get().Error("error loading profile for chat", zap.String("user_id", userID), zap.Error(err))
		_ = vm.Fail(loadFailed)
		return View{State: vm.State(), Error: vm.Reason()}
	}

	s := &session{
		id:      uuid.NewString(),
		userID:  userID,
		profile: *profile,
		turns:   []models.ChatTurn{models.NewTurn(models.RoleAssistant, Welcome(*profile), m.now())},
	}

	m.mu.Lock()
	replaced := m.userSessions(userID)
	for _, id := range replaced {
		delete(m.sessions, id)
	}
	m.sessions[s.id] = s
	view := s.view()
	m.mu.Unlock()

	for _, id := range replaced {
		m.hub.Close(id)
		m.metrics.ActiveChatSessions.Dec()
		logger.Get().Debug("chat session replaced", zap.String("user_id", userID), zap.String("session_id", id))
	}
	m.metrics.ActiveChatSessions.Inc()
	logger.Get().Info("chat session opened", zap.String("user_id", userID), zap.String("session_id", s.id))
	_ = vm.Loaded()
	view.State = vm.State()
	return view
}

func Welcome(p models.UserProfile) string {
	return fmt.Sprintf(welcomeTemplate, p.Name, finance.Rupees(decimal.NewFromFloat(p.Income)))
}

func (m *Manager) View(userID, sessionID string) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(userID, sessionID)
	if err != nil {
		return View{}, err
	}
	return s.view(), nil
}

// Subscribe attaches an event stream to a live session of userID.
func (m *Manager) Subscribe(userID, sessionID string) (*sse.ClientStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookup(userID, sessionID); err != nil {
		return nil, err
	}
	return m.hub.Subscribe(sessionID), nil
}

// Send appends the user turn, asks the assistant and appends its reply. An
// assistant failure becomes an error turn; the session stays usable.
func (m *Manager) Send(ctx context.Context, userID, sessionID, text string) (View, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return View{}, ErrEmptyMessage
	}

	m.mu.Lock()
	s, err := m.lookup(userID, sessionID)
	if err != nil {
		m.mu.Unlock()
		return View{}, err
	}
	if !m.assistant.Configured() {
		m.mu.Unlock()
		return View{}, ErrAssistantUnconfigured
	}
	if s.inFlight {
		m.mu.Unlock()
		return View{}, ErrRequestInFlight
	}
	history := append([]models.ChatTurn(nil), s.turns...)
	userTurn := models.NewTurn(models.RoleUser, text, m.now())
	s.turns = append(s.turns, userTurn)
	s.input = ""
	s.inFlight = true
	profile := s.profile
	m.mu.Unlock()

	m.hub.Publish(sessionID, userTurn)

	reply, askErr := m.assistant.Ask(ctx, text, profile, history)

	var turn models.ChatTurn
	if askErr != nil {
		logger.Get().Warn("assistant call failed",
			zap.String("session_id", sessionID),
			zap.Error(askErr))
		turn = models.NewTurn(models.RoleAssistant, ErrorTurnText, m.now())
		turn.Error = true
	} else {
		turn = models.NewTurn(models.RoleAssistant, reply, m.now())
	}

	m.mu.Lock()
	if _, open := m.sessions[sessionID]; !open {
		m.mu.Unlock()
		logger.Get().Debug("dropping reply for closed chat session", zap.String("session_id", sessionID))
		return View{}, ErrSessionClosed
	}
	s.turns = append(s.turns, turn)
	s.inFlight = false
	view := s.view()
	m.mu.Unlock()

	m.hub.Publish(sessionID, turn)
	return view, nil
}

// UseSuggestion puts a suggested question in the input without sending it.
func (m *Manager) UseSuggestion(userID, sessionID, suggestion string) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(userID, sessionID)
	if err != nil {
		return View{}, err
	}
	if !s.showSuggestions() {
		return View{}, ErrSuggestionsHidden
	}
	for _, q := range Suggestions {
		if q == suggestion {
			s.input = q
			return s.view(), nil
		}
	}
	return View{}, ErrUnknownSuggestion
}

// Close discards the session. A reply still in flight is dropped.
func (m *Manager) Close(userID, sessionID string) error {
	m.mu.Lock()
	_, err := m.lookup(userID, sessionID)
	if err == nil {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.hub.Close(sessionID)
	m.metrics.ActiveChatSessions.Dec()
	logger.Get().Info("chat session closed", zap.String("user_id", userID), zap.String("session_id", sessionID))
	return nil
}

// CloseUser discards every session of userID, e.g. on sign-out.
func (m *Manager) CloseUser(userID string) {
	m.mu.Lock()
	ids := m.userSessions(userID)
	m.mu.Unlock()

	for _, id := range ids {
		_ = m.Close(userID, id)
	}
}

// lookup must be called with m.mu held. Sessions of other users are
// reported as not found.
func (m *Manager) lookup(userID, sessionID string) (*session, error) {
	s, ok := m.sessions[sessionID]
	if !ok || s.userID != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// userSessions must be called with m.mu held.
func (m *Manager) userSessions(userID string) []string {
	var ids []string
	for id, s := range m.sessions {
		if s.userID == userID {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *session) showSuggestions() bool {
	return len(s.turns) == 1 && !s.inFlight
}

func (s *session) view() View {
	v := View{
		State:     views.StateLoaded,
		SessionID: s.id,
		Turns:     append([]models.ChatTurn(nil), s.turns...),
		Input:     s.input,
		Sending:   s.inFlight,
	}
	if s.showSuggestions() {
		v.Suggestions = append([]string(nil), Suggestions...)
	}
	return v
}
