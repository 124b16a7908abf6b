package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"knowvalue.app/server/core/db"
)

type Config struct {
	OTel        OTelConfig
	WorkOS      WorkOSConfig
	Stripe      StripeConfig
	Storage     StorageConfig
	Events      EventsConfig
	Marketplace MarketplaceConfig
	Env         string
	Port        string
	// AppBaseURL is the public origin of the web app; checkout redirects land here.
	AppBaseURL     string
	DashboardURL   string
	DB             db.Config
	MigrateOnStart bool
}

type WorkOSConfig struct {
	APIKey      string
	ClientID    string
	RedirectURI string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

type StorageConfig struct {
	Driver        string // "local" or "oss"
	LocalDir      string
	PublicBaseURL string
	OSSEndpoint   string
	OSSAccessKey  string
	OSSSecretKey  string
	OSSBucket     string
}

type EventsConfig struct {
	RedisURL       string
	RedisStream    string
	RedisGroup     string
	RedisDLQStream string
	RedisConsumer  string
}

type MarketplaceConfig struct {
	// CheckoutSessionTTL bounds how long a gateway checkout session stays payable.
	CheckoutSessionTTL time.Duration
	// NegotiationTTL is the age after which a PENDING negotiation is swept. Zero disables it.
	NegotiationTTL time.Duration
	SweepCron      string
	RateLimitRPS   float64
	RateLimitBurst int
}

type ServiceType string

const (
	ServiceTypeServer  ServiceType = "server"
	ServiceTypeWorker  ServiceType = "worker"
	ServiceTypeMigrate ServiceType = "migrate"
)

// Gateway limits on checkout session expiry.
const (
	minCheckoutSessionTTL = 30 * time.Minute
	maxCheckoutSessionTTL = 24 * time.Hour
)

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.server for the API server
//   - .env.worker for the background worker
//
// Falls back to .env if service-specific file doesn't exist.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("APP_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	cfg := Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:3000"),
		DashboardURL:   getEnv("DASHBOARD_URL", "http://localhost:3000"),
		MigrateOnStart: getEnvBool("DB_MIGRATE_ON_START", false),
		DB: db.Config{
			DSN:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvInt32("DB_MAX_CONNS", 10),
			MinConns: getEnvInt32("DB_MIN_CONNS", 2),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "knowvalue-"+string(serviceType)),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		WorkOS: WorkOSConfig{
			APIKey:      getEnv("WORKOS_API_KEY", ""),
			ClientID:    getEnv("WORKOS_CLIENT_ID", ""),
			RedirectURI: getEnv("WORKOS_REDIRECT_URI", "http://localhost:8080/auth/callback"),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			Currency:      getEnv("STRIPE_CURRENCY", "jpy"),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", "local"),
			LocalDir:      getEnv("STORAGE_LOCAL_DIR", "./data/uploads"),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", "http://localhost:8080/uploads"),
			OSSEndpoint:   getEnv("OSS_ENDPOINT", ""),
			OSSAccessKey:  getEnv("OSS_ACCESS_KEY_ID", ""),
			OSSSecretKey:  getEnv("OSS_ACCESS_KEY_SECRET", ""),
			OSSBucket:     getEnv("OSS_BUCKET", ""),
		},
		Events: EventsConfig{
			RedisURL:       getEnv("REDIS_URL", ""),
			RedisStream:    getEnv("REDIS_STREAM", "knowvalue_events"),
			RedisGroup:     getEnv("REDIS_CONSUMER_GROUP", "knowvalue_workers"),
			RedisDLQStream: getEnv("REDIS_DLQ_STREAM", "knowvalue_events_dlq"),
			RedisConsumer:  getEnv("REDIS_CONSUMER_NAME", hostnameOr("worker")),
		},
		Marketplace: MarketplaceConfig{
			CheckoutSessionTTL: getEnvDuration("CHECKOUT_SESSION_TTL", time.Hour),
			NegotiationTTL:     getEnvDuration("NEGOTIATION_TTL", 0),
			SweepCron:          getEnv("SWEEP_CRON", "*/10 * * * *"),
			RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 5),
			RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		},
	}

	if cfg.DB.DSN == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	ttl := cfg.Marketplace.CheckoutSessionTTL
	if ttl < minCheckoutSessionTTL || ttl > maxCheckoutSessionTTL {
		return Config{}, fmt.Errorf("CHECKOUT_SESSION_TTL must be between %s and %s, got %s",
			minCheckoutSessionTTL, maxCheckoutSessionTTL, ttl)
	}

	if serviceType == ServiceTypeServer && !cfg.WorkOS.Enabled() {
		return Config{}, fmt.Errorf("WORKOS_API_KEY and WORKOS_CLIENT_ID are required")
	}

	if cfg.Storage.Driver == "oss" && !cfg.Storage.OSSEnabled() {
		return Config{}, fmt.Errorf("OSS_ENDPOINT, OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET and OSS_BUCKET are required for the oss driver")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c WorkOSConfig) Enabled() bool {
	return c.APIKey != "" && c.ClientID != ""
}

// CheckoutEnabled reports whether checkout sessions can be created.
func (c StripeConfig) CheckoutEnabled() bool {
	return c.SecretKey != ""
}

func (c StripeConfig) WebhookEnabled() bool {
	return c.WebhookSecret != ""
}

func (c StorageConfig) OSSEnabled() bool {
	return c.OSSEndpoint != "" && c.OSSAccessKey != "" && c.OSSSecretKey != "" && c.OSSBucket != ""
}

func (c EventsConfig) Enabled() bool {
	return c.RedisURL != ""
}

func (c MarketplaceConfig) SweepEnabled() bool {
	return c.NegotiationTTL > 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt32(key string, fallback int32) int32 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(i)
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func hostnameOr(fallback string) string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return fallback
}
