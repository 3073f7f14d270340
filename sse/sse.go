// Package sse fans chat turns out to the event streams subscribed to a
// chat session.
package sse

import (
	"sync"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"go.uber.org/zap"
)

const streamBuffer = 32

// ClientStream is one subscriber. Done is closed when the chat session ends.
type ClientStream struct {
	Turns chan models.ChatTurn
	Done  chan struct{}
}

type Hub struct {
	mu      sync.RWMutex
	streams map[string]map[*ClientStream]struct{}
}

func NewHub() *Hub {
	return &Hub{streams: make(map[string]map[*ClientStream]struct{})}
}

func (h *Hub) Subscribe(sessionID string) *ClientStream {
	stream := &ClientStream{
		Turns: make(chan models.ChatTurn, streamBuffer),
		Done:  make(chan struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.streams[sessionID] == nil {
		h.streams[sessionID] = make(map[*ClientStream]struct{})
	}
	h.streams[sessionID][stream] = struct{}{}
	return stream
}

func (h *Hub) Unsubscribe(sessionID string, stream *ClientStream) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.streams[sessionID]
	if !ok {
		return
	}
	delete(subs, stream)
	if len(subs) == 0 {
		delete(h.streams, sessionID)
	}
}

// Publish delivers turn to every subscriber of sessionID. A subscriber whose
// buffer is full misses the turn.
func (h *Hub) Publish(sessionID string, turn models.ChatTurn) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for stream := range h.streams[sessionID] {
		select {
		case stream.Turns <- turn:
		default:
			logger.Get().Warn("dropping turn for slow stream",
				zap.String("session_id", sessionID),
				zap.String("turn_id", turn.ID.String()))
		}
	}
}

// Close ends every stream of sessionID.
func (h *Hub) Close(sessionID string) {
	h.mu.Lock()
	subs := h.streams[sessionID]
	delete(h.streams, sessionID)
	h.mu.Unlock()

	for stream := range subs {
		close(stream.Done)
	}
}

func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[sessionID])
}
