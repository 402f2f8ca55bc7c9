// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Forward  ForwardConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Env      string
}

type DatabaseConfig struct {
	Path string
}

type ServerConfig struct {
	Port         string
	MaxBodyBytes int64
}

type ForwardConfig struct {
	URL   string
	Token string
}

type AdminConfig struct {
	Token string
}

type RedisConfig struct {
	URL string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	config := &Config{
		Database: DatabaseConfig{
			Path: getEnv("WEBHOOK_DB_PATH", "webhooks.db"),
		},
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			MaxBodyBytes: getEnvInt64("MAX_BODY_BYTES", 1<<20),
		},
		Forward: ForwardConfig{
			URL:   getEnv("FORWARD_WEBHOOK_URL", ""),
			Token: getEnv("FORWARD_WEBHOOK_TOKEN", ""),
		},
		Admin: AdminConfig{
			Token: strings.TrimSpace(getEnv("ADMIN_TOKEN", "")),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Env: getEnv("ENVIRONMENT", "development"),
	}

	return config, nil
}

// AdminProtected reports whether mutating endpoints require an admin token.
func (c *Config) AdminProtected() bool {
	return c.Admin.Token != ""
}

// ForwardingEnabled reports whether ingested webhooks are relayed downstream.
func (c *Config) ForwardingEnabled() bool {
	return c.Forward.URL != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
