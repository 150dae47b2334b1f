package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	MongoURI           string
	MongoDBName        string
	RedisAddr          string
	RedisPassword      string
	KafkaBrokers       []string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	LogLevel           string
}

// LoadEnv reads a .env file from the working directory when one exists.
// It reports whether a file was loaded; variables already set win.
func LoadEnv() bool {
	return godotenv.Load(".env") == nil
}

// Load builds the configuration from the environment. Storage, cache and
// event backends stay disabled when their address is empty.
func Load() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		MongoURI:           getEnv("MONGO_URI", ""),
		MongoDBName:        getEnv("MONGO_DB_NAME", "remindwell"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "")),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:    getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: getInt64("MAX_REQUEST_BODY_SIZE", 1<<20), // 1MB
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if n, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
