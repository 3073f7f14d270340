package handlers

import (
	"errors"
	"net/http"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/chat"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type messageRequest struct {
	Message string `json:"message"`
}

type suggestionRequest struct {
	Suggestion string `json:"suggestion" binding:"required"`
}

func (a *API) HandleOpenChat(c *gin.Context) {
	view := a.chats.Open(c.Request.Context(), session(c).UserID)
	status := viewStatus(view.State)
	if view.State == views.StateLoaded {
		status = http.StatusCreated
	}
	c.JSON(status, view)
}

func (a *API) HandleGetChat(c *gin.Context) {
	view, err := a.chats.View(session(c).UserID, c.Param("id"))
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (a *API) HandleSendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := a.chats.Send(c.Request.Context(), session(c).UserID, c.Param("id"), req.Message)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (a *API) HandleUseSuggestion(c *gin.Context) {
	var req suggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := a.chats.UseSuggestion(session(c).UserID, c.Param("id"), req.Suggestion)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (a *API) HandleCloseChat(c *gin.Context) {
	if err := a.chats.Close(session(c).UserID, c.Param("id")); err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat session closed"})
}

func chatErrorStatus(err error) int {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrUnknownSuggestion):
		return http.StatusBadRequest
	case errors.Is(err, chat.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrRequestInFlight),
		errors.Is(err, chat.ErrSuggestionsHidden):
		return http.StatusConflict
	case errors.Is(err, chat.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, chat.ErrAssistantUnconfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondChatError(c *gin.Context, err error) {
	status := chatErrorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Get().Error("chat request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
