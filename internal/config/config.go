// Package config loads runtime configuration from the environment. A .env
// file in the working directory is honored when present; real environment
// variables win over it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server configures the gateway binary.
type Server struct {
	Addr        string
	DatabaseURL string
	TokenSecret string
	TokenTTL    time.Duration
	CORSOrigins []string

	RateLimitPerSecond int
	RateLimitBurst     int

	// Seed admin credentials; both empty disables seeding.
	AdminEmail    string
	AdminPassword string
}

// Client configures the operator CLI.
type Client struct {
	GatewayURL    string
	RemoteTimeout time.Duration
	SessionPath   string

	// Local-mode settings; used when GatewayURL is empty or as the
	// fallback target.
	DatabaseURL string
	TokenSecret string
}

// LoadServer reads the server configuration. DATABASE_URL and TOKEN_SECRET
// are mandatory.
func LoadServer() (Server, error) {
	loadDotenv()

	cfg := Server{
		Addr:               getenv("ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		TokenSecret:        os.Getenv("TOKEN_SECRET"),
		TokenTTL:           getenvDuration("TOKEN_TTL", 0),
		CORSOrigins:        splitList(os.Getenv("CORS_ORIGINS")),
		RateLimitPerSecond: getenvInt("RATE_LIMIT_RPS", 50),
		RateLimitBurst:     getenvInt("RATE_LIMIT_BURST", 100),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}
	if cfg.DatabaseURL == "" {
		return Server{}, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.TokenSecret == "" {
		return Server{}, fmt.Errorf("config: TOKEN_SECRET is required")
	}
	return cfg, nil
}

// LoadClient reads the CLI configuration. Nothing is mandatory; with no
// GATEWAY_URL and no DATABASE_URL the CLI runs against in-memory stores.
func LoadClient() Client {
	loadDotenv()

	return Client{
		GatewayURL:    strings.TrimRight(os.Getenv("GATEWAY_URL"), "/"),
		RemoteTimeout: getenvDuration("GATEWAY_TIMEOUT", 10*time.Second),
		SessionPath:   os.Getenv("SESSION_PATH"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		TokenSecret:   os.Getenv("TOKEN_SECRET"),
	}
}

func loadDotenv() {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
