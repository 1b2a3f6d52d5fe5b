package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string

	SecretKey string
	TokenTTL  time.Duration

	StripeSecretKey       string
	WebhookEndpointSecret string

	FrontendURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	MailtrapAPIToken string
	CloudinaryURL    string
}

// Load reads configuration from the environment. Startup fails fast when a
// critical variable is missing.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getEnv("PORT", "8080"),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 10 << 20, // 10MB, profile pictures arrive as data URIs

		MongoURI:    getEnv("MONGO_URI", ""),
		MongoDBName: getEnv("MONGO_DB_NAME", "foodista"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SecretKey: getEnv("SECRET_KEY", ""),
		TokenTTL:  24 * time.Hour,

		StripeSecretKey:       getEnv("STRIPE_SECRET_KEY", ""),
		WebhookEndpointSecret: getEnv("WEBHOOK_ENDPOINT_SECRET", ""),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", ""),

		MailtrapAPIToken: getEnv("MAILTRAP_API_TOKEN", ""),
		CloudinaryURL:    getEnv("CLOUDINARY_URL", ""),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	required := map[string]string{
		"MONGO_URI":               cfg.MongoURI,
		"SECRET_KEY":              cfg.SecretKey,
		"STRIPE_SECRET_KEY":       cfg.StripeSecretKey,
		"WEBHOOK_ENDPOINT_SECRET": cfg.WebhookEndpointSecret,
	}
	var missing []string
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if len(cfg.SecretKey) < 32 {
		return nil, fmt.Errorf("SECRET_KEY must be at least 32 characters long")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
