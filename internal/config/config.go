package config

import (
	"os"
	"strconv"
	"time"
)

// Storage backend selection values. The backend is always chosen
// explicitly; there is no silent fallback on bad credentials.
const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env            string
	ServerPort     string
	StorageBackend string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	TokenTTL       time.Duration
	ExportDir      string
	ExportBaseURL  string
	SwaggerHost    string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		Env:            getEnv("APP_ENV", "development"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageMySQL),
		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/timetrack?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 24*time.Hour),
		ExportDir:      os.Getenv("EXPORT_DIR"),
		ExportBaseURL:  getEnv("EXPORT_BASE_URL", "http://localhost:8080"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether the service runs with production hardening
// (internal error details elided from responses).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
