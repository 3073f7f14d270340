package middleware

import (
	"net/http"
	"strings"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/auth"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionKey = "session"
	LoginPath  = "/login"
)

// AuthMiddleware attaches the verified session to the request when a valid
// Supabase token is present. Event streams and websockets pass it as the
// token query parameter.
func AuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c.Request)
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.Next()
			return
		}

		session, err := verifier.Verify(tokenString)
		if err != nil {
			logger.Get().Debug("rejected access token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.Next()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireSession is the route guard. Browser navigations are redirected to
// the login page; API calls get a 401 naming the same location.
func RequireSession(c *gin.Context) {
	if _, ok := SessionFrom(c); ok {
		c.Next()
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    "Missing or invalid token",
		"redirect": LoginPath,
	})
}

func SessionFrom(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.Session)
	return session, ok && session != nil
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
