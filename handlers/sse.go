package handlers

import (
	"io"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const keepAliveInterval = 15 * time.Second

// HandleChatEvents streams every turn appended to the chat session as an
// SSE "turn" event until the session closes or the client goes away.
func (a *API) HandleChatEvents(c *gin.Context) {
	userID := session(c).UserID
	sessionID := c.Param("id")

	stream, err := a.chats.Subscribe(userID, sessionID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	hub := a.chats.Hub()
	logger.Get().Info("SSE connection established", zap.String("session_id", sessionID))
	defer func() {
		hub.Unsubscribe(sessionID, stream)
		logger.Get().Info("SSE connection closed", zap.String("session_id", sessionID))
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	c.SSEvent("ready", gin.H{"sessionId": sessionID})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case turn := <-stream.Turns:
			c.SSEvent("turn", turn)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-stream.Done:
			c.SSEvent("closed", gin.H{"sessionId": sessionID})
			return false
		case <-c.Request.Context().Done():
			return false
		}
	})
}
