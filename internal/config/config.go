package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Storage backend selectors for BOOKINGS_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	HTTPAddr            string
	FrontendBaseURL     string
	BookingsBackend     string
	BookingsDir         string
	DBDSN               string
	StripeSecretKey     string
	StripeWebhookSecret string
	AdminKeyHash        string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :4242)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":4242")

	// Base URL of the frontend, used for checkout redirect targets and CORS.
	cfg.FrontendBaseURL = getEnv("FRONTEND_BASE_URL", "http://localhost:5173")

	// Booking storage backend (default: file)
	cfg.BookingsBackend = getEnv("BOOKINGS_BACKEND", BackendFile)
	switch cfg.BookingsBackend {
	case BackendFile:
		cfg.BookingsDir = getEnv("BOOKINGS_DIR", "bookings")
	case BackendPostgres:
		cfg.DBDSN = os.Getenv("DB_DSN")
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when BOOKINGS_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown BOOKINGS_BACKEND %q", cfg.BookingsBackend)
	}

	// Stripe credentials are required; refusing to start beats silently
	// creating sessions with a placeholder key.
	cfg.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	cfg.StripeWebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}

	// Bcrypt hash of the admin API key protecting the bookings listing.
	cfg.AdminKeyHash = os.Getenv("ADMIN_KEY_HASH")
	if cfg.AdminKeyHash == "" {
		return nil, fmt.Errorf("ADMIN_KEY_HASH is required")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}
