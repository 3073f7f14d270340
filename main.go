package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/auth"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/chat"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/config"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/handlers"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/llm"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/mongodb"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/observability"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/sse"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/views"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, envFileFound, err := config.Load()
	if err != nil {
		// logger is not configured yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Development, logger.LogLevel(cfg.LogLevel)); err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if !envFileFound {
		log.Warn(".env file not found")
	}
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongodb.Close(client)

	store := mongodb.NewProfileStore(client.Database(cfg.MongoDatabase), metrics)

	assistant := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiAPIURL, cfg.GeminiTimeout, metrics)
	if !cfg.ChatEnabled() {
		log.Warn("GEMINI_API_KEY not set, chat is disabled")
	}

	router := handlers.NewRouter(handlers.Options{
		Store:      store,
		Chats:      chat.NewManager(store, assistant, sse.NewHub(), metrics),
		Editors:    views.NewProfileEditors(nil),
		Verifier:   auth.NewVerifier(cfg.SupabaseJWTSecret, cfg.TokenIssuer(), nil),
		Logout:     auth.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey),
		CORSOrigin: cfg.CORSOrigin,
		Metrics:    metrics,
		Gatherer:   reg,
	})
	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		log.Warn("error setting trusted proxies", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error shutting down server", zap.Error(err))
	}
}
