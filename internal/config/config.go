package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Register RegisterConfig
}

type ServerConfig struct {
	Port               string
	Host               string
	Env                string
	CORSAllowedOrigins []string
}

// StorageConfig selects where the root state blob lives.
type StorageConfig struct {
	Driver string // sqlite, postgres or memory
	Path   string // SQLite file
	Key    string
}

type DatabaseConfig struct {
	URL           string // Full database URL
	Host          string
	Port          int
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MaxRetries    int
	RetryInterval time.Duration
}

type RegisterConfig struct {
	VerifyTotals bool
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			Host:               getEnv("HOST", "localhost"),
			Env:                getEnv("ENV", "development"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3001"}),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
			Path:   getEnv("STORAGE_PATH", "kassierer.db"),
			Key:    getEnv("STORAGE_KEY", "kassierer_app_v1"),
		},
		Database: parseDatabaseConfig(),
		Register: RegisterConfig{
			VerifyTotals: getEnvAsBool("VERIFY_TOTALS", false),
		},
	}

	switch config.Storage.Driver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", config.Storage.Driver)
	}

	return config, nil
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// DSN returns the connection string for the database, preferring a full
// DATABASE_URL when one was given.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func parseDatabaseConfig() DatabaseConfig {
	// Check if DATABASE_URL is provided
	var config DatabaseConfig
	if databaseURL := getEnv("DATABASE_URL", ""); databaseURL != "" {
		config = parseDatabaseURL(databaseURL)
	} else {
		// Fall back to individual environment variables
		config = DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "kassierer"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		}
	}
	config.MaxRetries = getEnvAsInt("DB_MAX_RETRIES", 30)
	config.RetryInterval = getEnvAsDuration("DB_RETRY_INTERVAL", 2*time.Second)
	return config
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL: databaseURL,
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	if u.Port() != "" {
		config.Port, _ = strconv.Atoi(u.Port())
	} else {
		config.Port = 5432 // Default PostgreSQL port
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	config.DBName = strings.TrimPrefix(u.Path, "/")

	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
