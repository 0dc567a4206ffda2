package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string
	MongoURI   string
	MongoDB    string

	RedisHost     string
	RedisPort     string
	SessionSecret  string
	TokenSecret    string
	IdentitySecret string
	CORSOrigins    []string

	PaymentGateway  string
	StoreID         string
	StorePassword   string
	GatewayBaseURL  string
	StripeSecretKey string
	StripeAPIURL    string
	PaymentCurrency string
	CoinsPerUnit    int64
	ServerURL       string
	ClientURL       string

	OpenAIAPIKey  string
	OpenAIBaseURL string

	LogLevel string
	LogFile  string
}

// Load reads the process environment, after merging an optional .env file.
func Load() *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "microtask"),
		DBPassword: getEnv("DB_PASS", "microtask"),
		DBName:     getEnv("DB_NAME", "microtaskearning"),
		SQLitePath: getEnv("SQLITE_PATH", "microtask.db"),
		MongoURI:   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGO_DB", "microtaskearning"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		TokenSecret:    getEnv("ACCESS_TOKEN_SECRET", "default-token-secret-change-me"),
		IdentitySecret: getEnv("IDENTITY_SHARED_SECRET", ""),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")),

		PaymentGateway:  strings.ToLower(getEnv("PAYMENT_GATEWAY", "hosted")),
		StoreID:         getEnv("STORE_ID", ""),
		StorePassword:   getEnv("STORE_PASSWORD", ""),
		GatewayBaseURL:  getEnv("GATEWAY_BASE_URL", "https://sandbox.sslcommerz.com"),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		StripeAPIURL:    getEnv("STRIPE_API_URL", ""),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "USD"),
		CoinsPerUnit:    getEnvInt("COINS_PER_UNIT", 10),
		ServerURL:       strings.TrimRight(getEnv("SERVER_URL", "http://localhost:8000"), "/"),
		ClientURL:       strings.TrimRight(getEnv("CLIENT_URL", "http://localhost:5173"), "/"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// IsProduction reports whether cookies must be issued for cross-site HTTPS use.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
