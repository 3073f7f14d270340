package sse

import (
	"testing"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlySessionSubscribers(t *testing.T) {
	h := NewHub()
	a := h.Subscribe("chat-a")
	b := h.Subscribe("chat-b")

	turn := models.NewTurn(models.RoleUser, "hello", time.Now())
	h.Publish("chat-a", turn)

	select {
	case got := <-a.Turns:
		assert.Equal(t, turn.ID, got.ID)
	default:
		t.Fatal("expected a turn on chat-a")
	}
	assert.Empty(t, b.Turns)
}

func TestHub_CloseEndsStreams(t *testing.T) {
	h := NewHub()
	s := h.Subscribe("chat-a")
	require.Equal(t, 1, h.Subscribers("chat-a"))

	h.Close("chat-a")

	_, open := <-s.Done
	assert.False(t, open)
	assert.Zero(t, h.Subscribers("chat-a"))
}

func TestHub_UnsubscribeAndFullBuffer(t *testing.T) {
	h := NewHub()
	s := h.Subscribe("chat-a")

	for i := 0; i < streamBuffer+5; i++ {
		h.Publish("chat-a", models.NewTurn(models.RoleAssistant, "x", time.Now()))
	}
	assert.Len(t, s.Turns, streamBuffer)

	h.Unsubscribe("chat-a", s)
	assert.Zero(t, h.Subscribers("chat-a"))
	h.Unsubscribe("chat-a", s)
}
