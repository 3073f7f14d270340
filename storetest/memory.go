// Package storetest provides an in-memory ProfileStore for tests.
package storetest

import (
	"context"
	"sync"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
)

// Memory applies the same merge/update semantics as the Mongo adapter
// against a map. Err, when set, is returned by every call.
type Memory struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
	Err      error
	Calls    map[string]int
	Now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]models.UserProfile),
		Calls:    make(map[string]int),
		Now:      time.Now,
	}
}

var _ models.ProfileStore = (*Memory)(nil)

// Put seeds a stored profile.
func (m *Memory) Put(p models.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
}

func (m *Memory) Count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[op]
}

func (m *Memory) Get(userID string) (models.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	return p, ok
}

func (m *Memory) CreateOrMerge(_ context.Context, userID string, fields models.ProfileFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["create_or_merge"]++
	if m.Err != nil {
		return m.Err
	}

	now := m.Now().UTC()
	p, ok := m.profiles[userID]
	if !ok {
		p = models.UserProfile{UserID: userID, CreatedAt: now}
		if fields.Email != nil {
			p.Email = *fields.Email
		}
	}
	apply(&p, fields, now)
	m.profiles[userID] = p
	return nil
}

func (m *Memory) Read(_ context.Context, userID string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["read"]++
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	return &p, nil
}

func (m *Memory) Update(_ context.Context, userID string, fields models.ProfileFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["update"]++
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return models.ErrProfileNotFound
	}
	apply(&p, fields, m.Now().UTC())
	m.profiles[userID] = p
	return nil
}

func apply(p *models.UserProfile, f models.ProfileFields, now time.Time) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Income != nil {
		p.Income = *f.Income
	}
	if f.Expenses != nil {
		p.Expenses = *f.Expenses
	}
	if f.EMI != nil {
		p.EMI = *f.EMI
	}
	if f.ShortTermGoals != nil {
		p.ShortTermGoals = *f.ShortTermGoals
	}
	if f.LongTermGoals != nil {
		p.LongTermGoals = *f.LongTermGoals
	}
	p.UpdatedAt = now
}
