// Package handlers exposes the views over HTTP.
package handlers

import (
	"context"
	"net/http"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/auth"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/chat"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/middleware"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/observability"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/views"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// LogoutClient ends a session at the auth provider.
type LogoutClient interface {
	Logout(ctx context.Context, accessToken string) error
}

type Options struct {
	Store    models.ProfileStore
	Chats    *chat.Manager
	Editors  *views.ProfileEditors
	Verifier *auth.Verifier
	Logout   LogoutClient

	CORSOrigin string
	Metrics    *observability.Metrics
	Gatherer   prometheus.Gatherer
}

type API struct {
	store    models.ProfileStore
	chats    *chat.Manager
	editors  *views.ProfileEditors
	verifier *auth.Verifier
	logout   LogoutClient
	upgrader websocket.Upgrader
}

func New(o Options) *API {
	if o.Editors == nil {
		o.Editors = views.NewProfileEditors(nil)
	}
	origin := o.CORSOrigin
	return &API{
		store:    o.Store,
		chats:    o.Chats,
		editors:  o.Editors,
		verifier: o.Verifier,
		logout:   o.Logout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				reqOrigin := r.Header.Get("Origin")
				return reqOrigin == "" || origin == "" || reqOrigin == origin
			},
		},
	}
}

// NewRouter builds the engine with every route of the API.
func NewRouter(o Options) *gin.Engine {
	if o.Metrics == nil {
		o.Metrics = observability.Default
	}
	api := New(o)

	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger(), o.Metrics.Middleware())
	router.Use(middleware.CorsMiddleware(o.CORSOrigin))
	router.Use(middleware.AuthMiddleware(o.Verifier))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if o.Gatherer != nil {
		router.GET("/metrics", observability.Handler(o.Gatherer))
	}

	group := router.Group("/api", middleware.RequireSession)
	{
		group.GET("/session", api.HandleGetSession)
		group.POST("/logout", api.HandleLogout)

		group.POST("/onboarding", api.HandleOnboarding)
		group.GET("/dashboard", api.HandleDashboard)

		group.GET("/profile", api.HandleGetProfile)
		group.PATCH("/profile", api.HandleEditProfile)
		group.PUT("/profile", api.HandleSaveProfile)
		group.POST("/profile/reset", api.HandleResetProfile)

		group.POST("/chat/sessions", api.HandleOpenChat)
		group.GET("/chat/sessions/:id", api.HandleGetChat)
		group.DELETE("/chat/sessions/:id", api.HandleCloseChat)
		group.POST("/chat/sessions/:id/messages", api.HandleSendMessage)
		group.POST("/chat/sessions/:id/suggestion", api.HandleUseSuggestion)
		group.GET("/chat/sessions/:id/events", api.HandleChatEvents)
		group.GET("/chat/sessions/:id/ws", api.HandleChatWebsocket)
	}

	return router
}

func session(c *gin.Context) *models.Session {
	s, _ := middleware.SessionFrom(c)
	return s
}

func viewStatus(state views.State) int {
	if state == views.StateError {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
