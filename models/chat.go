package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one message of a chat session. Turns live in memory only.
type ChatTurn struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Error     bool      `json:"error,omitempty"`
}

func NewTurn(role Role, text string, at time.Time) ChatTurn {
	return ChatTurn{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		Timestamp: at,
	}
}
