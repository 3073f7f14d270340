package handlers

import (
	"net/http"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) HandleGetSession(c *gin.Context) {
	c.JSON(http.StatusOK, session(c))
}

// HandleLogout signs the user out at Supabase and revokes the token here
// until it expires. The user's chat sessions and edit form are dropped.
func (a *API) HandleLogout(c *gin.Context) {
	s := session(c)

	if a.logout != nil {
		if err := a.logout.Logout(c.Request.Context(), s.Token); err != nil {
			logger.Get().Warn("error signing out at auth provider",
				zap.String("user_id", s.UserID),
				zap.Error(err))
		}
	}

	expiresAt := time.Now().Add(time.Hour)
	if s.Claims != nil && s.Claims.ExpiresAt != nil {
		expiresAt = s.Claims.ExpiresAt.Time
	}
	a.verifier.Revocations().Revoke(s.Token, expiresAt)

	a.chats.CloseUser(s.UserID)
	a.editors.Discard(s.UserID)

	logger.Get().Info("user signed out", zap.String("user_id", s.UserID))
	c.JSON(http.StatusOK, gin.H{"redirect": middleware.LoginPath})
}
