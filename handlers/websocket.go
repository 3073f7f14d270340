package handlers

import (
	"errors"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/chat"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const readTimeout = 60 * time.Second

type wsReply struct {
	View  *chat.View `json:"view,omitempty"`
	Error string     `json:"error,omitempty"`
}

// HandleChatWebsocket accepts {"message": "..."} frames and answers each
// with the updated chat view or an error.
func (a *API) HandleChatWebsocket(c *gin.Context) {
	userID := session(c).UserID
	sessionID := c.Param("id")

	if _, err := a.chats.View(userID, sessionID); err != nil {
		respondChatError(c, err)
		return
	}

	conn, err := a.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Warn("failed to upgrade connection", zap.Error(err))
		return
	}
	logger.Get().Info("WebSocket connection established",
		zap.String("session_id", sessionID),
		zap.String("remote_addr", c.Request.RemoteAddr))

	defer func() {
		conn.Close()
		logger.Get().Info("WebSocket connection closed", zap.String("session_id", sessionID))
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			logger.Get().Warn("error setting read deadline", zap.Error(err))
			return
		}

		var req messageRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Get().Warn("websocket read failed", zap.String("session_id", sessionID), zap.Error(err))
			}
			return
		}

		view, sendErr := a.chats.Send(c.Request.Context(), userID, sessionID, req.Message)
		reply := wsReply{View: &view}
		if sendErr != nil {
			reply = wsReply{Error: sendErr.Error()}
		}
		if err := conn.WriteJSON(reply); err != nil {
			logger.Get().Warn("websocket write failed", zap.String("session_id", sessionID), zap.Error(err))
			return
		}
		if errors.Is(sendErr, chat.ErrSessionClosed) || errors.Is(sendErr, chat.ErrSessionNotFound) {
			return
		}
	}
}
