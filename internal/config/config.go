package config

import (
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	JWT    JWTConfig
	Events EventsConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// MongoConfig configures the document store. Backend "memory" swaps
// the Mongo repositories for in-process ones (local development
// without a running MongoDB).
type MongoConfig struct {
	Backend  string // mongo, memory
	URI      string
	Database string
	MaxConns int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// EventsConfig selects the bookAdded fan-out backend.
// Backend "memory" keeps events in-process; "redis" bridges them
// through a Redis pub/sub channel so multiple instances fan out
// to each other's websocket subscribers.
type EventsConfig struct {
	Backend      string // memory, redis
	RedisAddr    string
	RedisPass    string
	RedisDB      int
	RedisChannel string
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "library-catalog"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "4000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Mongo: MongoConfig{
			Backend:  getEnv("STORE_BACKEND", "mongo"),
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "library"),
			MaxConns: getEnvInt("MONGODB_MAX_CONNS", 20),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		Events: EventsConfig{
			Backend:      getEnv("EVENTS_BACKEND", "memory"),
			RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPass:    getEnv("REDIS_PASSWORD", ""),
			RedisDB:      getEnvInt("REDIS_DB", 0),
			RedisChannel: getEnv("REDIS_EVENTS_CHANNEL", "library:book_added"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
