package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port     int
	LogLevel string
	LogDir   string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir string

	// AdminUsernames get the privileged-access flag at signup.
	AdminUsernames []string

	// OutboxInterval controls how often pending outbox events are drained.
	OutboxInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),
		LogDir:     getEnv("LOG_DIR", "logs"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "cybermarket"),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL value: %w", err)
	}
	cfg.TokenTTL = ttl

	interval, err := time.ParseDuration(getEnv("OUTBOX_INTERVAL", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOX_INTERVAL value: %w", err)
	}
	cfg.OutboxInterval = interval

	admins := getEnv("ADMIN_USERNAMES", "admin,superadmin,root")
	for _, name := range strings.Split(admins, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.AdminUsernames = append(cfg.AdminUsernames, strings.ToLower(name))
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsAdminUsername reports whether the username is on the admin list.
func (c *Config) IsAdminUsername(username string) bool {
	lower := strings.ToLower(username)
	for _, name := range c.AdminUsernames {
		if name == lower {
			return true
		}
	}
	return false
}
