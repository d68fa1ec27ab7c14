package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Budget backends.
const (
	BudgetMemory = "memory"
	BudgetRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// MigrationsDir holds *.sql files applied after the automatic migration.
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// External recipe provider
	SpoonacularAPIKey  string
	SpoonacularBaseURL string
	ExternalQuota      int
	ExternalWindow     time.Duration
	BudgetBackend      string
	ExternalCacheSize  int

	// Search and collection tuning
	CollectionExternalCap int
	SearchLocalShareCap   int

	// Per-caller search rate limit, enforced only when Redis is configured.
	// A limit of zero disables it.
	SearchRateLimit  int
	SearchRateWindow time.Duration

	// Recipe images
	S3BucketName string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// A .env file is a development convenience; it never overrides the real environment.
	if env == Development || env == Test {
		_ = godotenv.Load()
	}

	var src source
	switch env {
	case CI:
		src = source{useSecrets: false}
	case Development, Test:
		src = source{useSecrets: true}
	case Production:
		src = source{useSecrets: true, secretsFirst: true}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg, err := src.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}
	cfg.Environment = env

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// source resolves one setting from environment variables and Docker secrets.
type source struct {
	useSecrets   bool
	secretsFirst bool
}

func (s source) get(envVar, fallback string) string {
	secretName := strings.ToLower(envVar)
	if s.useSecrets && s.secretsFirst {
		if v := readSecret(secretName); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	if s.useSecrets && !s.secretsFirst {
		if v := readSecret(secretName); v != "" {
			return v
		}
	}
	return fallback
}

func (s source) getInt(envVar string, fallback int) (int, error) {
	raw := s.get(envVar, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError{Field: envVar, Message: fmt.Sprintf("not an integer: %q", raw)}
	}
	return n, nil
}

func (s source) getDuration(envVar string, fallback time.Duration) (time.Duration, error) {
	raw := s.get(envVar, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, ValidationError{Field: envVar, Message: fmt.Sprintf("not a duration: %q", raw)}
	}
	return d, nil
}

func (s source) load() (*Config, error) {
	cfg := &Config{
		ServerPort:         s.get("SERVER_PORT", "8080"),
		ServerHost:         s.get("SERVER_HOST", "0.0.0.0"),
		CORSOrigins:        splitList(s.get("CORS_ORIGINS", "http://localhost:5173")),
		DBHost:             s.get("DB_HOST", "localhost"),
		DBPort:             s.get("DB_PORT", "5432"),
		DBUser:             s.get("DB_USER", "postgres"),
		DBPassword:         s.get("DB_PASSWORD", ""),
		DBName:             s.get("DB_NAME", "mealboard"),
		DBSSLMode:          s.get("DB_SSL_MODE", "disable"),
		MigrationsDir:      s.get("MIGRATIONS_DIR", "migrations"),
		RedisHost:          s.get("REDIS_HOST", "localhost"),
		RedisPort:          s.get("REDIS_PORT", "6379"),
		RedisPassword:      s.get("REDIS_PASSWORD", ""),
		RedisURL:           s.get("REDIS_URL", ""),
		JWTSecret:          s.get("JWT_SECRET", ""),
		SpoonacularAPIKey:  s.get("SPOONACULAR_API_KEY", ""),
		SpoonacularBaseURL: s.get("SPOONACULAR_BASE_URL", "https://api.spoonacular.com"),
		BudgetBackend:      strings.ToLower(s.get("BUDGET_BACKEND", BudgetMemory)),
		S3BucketName:       s.get("S3_BUCKET_NAME", ""),
		AWSRegion:          s.get("AWS_REGION", ""),
	}

	var err error
	if cfg.RedisDB, err = s.getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ExternalQuota, err = s.getInt("EXTERNAL_QUOTA", 150); err != nil {
		return nil, err
	}
	if cfg.ExternalWindow, err = s.getDuration("EXTERNAL_WINDOW", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ExternalCacheSize, err = s.getInt("EXTERNAL_CACHE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.CollectionExternalCap, err = s.getInt("COLLECTION_EXTERNAL_CAP", 5); err != nil {
		return nil, err
	}
	if cfg.SearchLocalShareCap, err = s.getInt("SEARCH_LOCAL_SHARE_CAP", 6); err != nil {
		return nil, err
	}
	if cfg.SearchRateLimit, err = s.getInt("SEARCH_RATE_LIMIT", 60); err != nil {
		return nil, err
	}
	if cfg.SearchRateWindow, err = s.getDuration("SEARCH_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
