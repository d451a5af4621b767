package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	OTLP    OTLPConfig
	Backend BackendConfig
	Cart    CartConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type OTLPConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

// BackendConfig points at the remote store service
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CartConfig selects where the persisted cart blob lives. Backend is either
// "file" or "redis"; StorageKey is the fixed key the blob is stored under.
type CartConfig struct {
	StorageBackend string
	FilePath       string
	RedisURL       string
	StorageKey     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		OTLP: OTLPConfig{
			Enabled:     getBool("OTEL_EXPORT_ENABLED", true),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront-admin-api"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:4000/api"),
			Timeout: getSeconds("BACKEND_TIMEOUT_SECONDS", 10),
		},
		Cart: CartConfig{
			StorageBackend: getEnv("CART_STORAGE", "file"),
			FilePath:       getEnv("CART_FILE_PATH", "data/cart.json"),
			RedisURL:       getEnv("CART_REDIS_URL", "redis://localhost:6379/0"),
			StorageKey:     getEnv("CART_STORAGE_KEY", "ecommerce-cart"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func getSeconds(key string, defaultValue int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(defaultValue) * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defaultValue) * time.Second
	}
	return time.Duration(n) * time.Second
}
