package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr     string
	BaseURL      string
	PostgresDSN  string
	RedisAddr    string
	KafkaBrokers []string
	ServiceName  string
	Currency     string

	SessionSecret       string
	StripeSecretKey     string
	StripeWebhookSecret string
}

// Insecure fallbacks for local development. Startup logs a warning when
// they are in effect; only the Stripe API key is a hard requirement.
const (
	DefaultSessionSecret = "dev-session-secret-change-me"
	DefaultWebhookSecret = "whsec_dev_change_me"
)

func Load() Config {
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		BaseURL:      strings.TrimRight(getenv("BASE_URL", "http://localhost:8080"), "/"),
		PostgresDSN:  os.Getenv("POSTGRES_DSN"), // empty -> built-in seed catalog
		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")), // empty -> log-only confirmations
		ServiceName:  getenv("SERVICE_NAME", "storefront-web"),
		Currency:     getenv("CURRENCY", "jpy"),

		SessionSecret:       getenv("SESSION_SECRET", DefaultSessionSecret),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: getenv("STRIPE_WEBHOOK_SECRET", DefaultWebhookSecret),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
