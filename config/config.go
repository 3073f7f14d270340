package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultMongoDatabase = "wealthai"
	defaultGeminiURL     = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	defaultCORSOrigin    = "http://localhost:5173"
)

type Config struct {
	Port        string
	Development bool
	LogLevel    string

	MongoURI      string
	MongoDatabase string

	SupabaseURL       string
	SupabaseJWTSecret string
	SupabaseAnonKey   string

	GeminiAPIKey  string
	GeminiAPIURL  string
	GeminiTimeout time.Duration

	CORSOrigin string
}

// Load reads the .env file if present and builds the configuration from the
// process environment. The Gemini key is optional; without it chat is disabled.
func Load() (*Config, bool, error) {
	envFileFound := godotenv.Load() == nil

	cfg := &Config{
		Port:              getEnv("PORT", defaultPort),
		Development:       strings.EqualFold(os.Getenv("APP_ENV"), "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     getEnv("MONGO_DATABASE", defaultMongoDatabase),
		SupabaseURL:       strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),
		SupabaseAnonKey:   os.Getenv("SUPABASE_ANON_KEY"),
		GeminiAPIKey:      apiKey(os.Getenv("GEMINI_API_KEY")),
		GeminiAPIURL:      getEnv("GEMINI_API_URL", defaultGeminiURL),
		GeminiTimeout:     30 * time.Second,
		CORSOrigin:        getEnv("CORS_ORIGIN", defaultCORSOrigin),
	}

	if raw := os.Getenv("GEMINI_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, envFileFound, fmt.Errorf("invalid GEMINI_TIMEOUT %q: %w", raw, err)
		}
		cfg.GeminiTimeout = d
	}

	if err := cfg.validate(); err != nil {
		return nil, envFileFound, err
	}
	return cfg, envFileFound, nil
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI environment variable not set")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET environment variable not set")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL environment variable not set")
	}
	return nil
}

// ChatEnabled reports whether a generative-text API key was provided.
func (c *Config) ChatEnabled() bool {
	return c.GeminiAPIKey != ""
}

// TokenIssuer is the issuer claim Supabase puts on access tokens.
func (c *Config) TokenIssuer() string {
	return c.SupabaseURL + "/auth/v1"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// apiKey treats the literal "undefined" left behind by templated env files as unset.
func apiKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "undefined" {
		return ""
	}
	return raw
}
