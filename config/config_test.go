package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	for _, key := range []string{
		"SERVER_PORT", "DB_HOST", "DB_PASSWORD", "JWT_SECRET", "REDIS_URL",
		"SPOONACULAR_API_KEY", "EXTERNAL_QUOTA", "EXTERNAL_WINDOW", "BUDGET_BACKEND",
		"EXTERNAL_CACHE_SIZE", "COLLECTION_EXTERNAL_CAP", "SEARCH_LOCAL_SHARE_CAP",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 150, cfg.ExternalQuota)
	assert.Equal(t, 24*time.Hour, cfg.ExternalWindow)
	assert.Equal(t, BudgetMemory, cfg.BudgetBackend)
	assert.Equal(t, 256, cfg.ExternalCacheSize)
	assert.Equal(t, 5, cfg.CollectionExternalCap)
	assert.Equal(t, 6, cfg.SearchLocalShareCap)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("EXTERNAL_QUOTA", "40")
	t.Setenv("EXTERNAL_WINDOW", "1h")
	t.Setenv("BUDGET_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 40, cfg.ExternalQuota)
	assert.Equal(t, time.Hour, cfg.ExternalWindow)
	assert.Equal(t, BudgetRedis, cfg.BudgetBackend)
	assert.Contains(t, cfg.DSN(), "host=db.internal")
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	isolate(t)
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spoonacular_api_key"), []byte("key-123"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
	assert.Equal(t, "key-123", cfg.SpoonacularAPIKey)
}

func TestLoadConfigDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("SPOONACULAR_API_KEY=dotenv-key\n"), 0o600))
	// godotenv never overrides a variable that is already set, even to "".
	require.NoError(t, os.Unsetenv("SPOONACULAR_API_KEY"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.SpoonacularAPIKey)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	isolate(t)
	t.Setenv("EXTERNAL_QUOTA", "many")

	_, err := LoadConfig()
	require.Error(t, err)
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "EXTERNAL_QUOTA", verr.Field)
}

func TestValidateConfigProductionRequirements(t *testing.T) {
	cfg := &Config{
		Environment:         Production,
		ExternalQuota:       150,
		ExternalWindow:      time.Hour,
		SearchLocalShareCap: 6,
		BudgetBackend:       BudgetMemory,
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "SPOONACULAR_API_KEY")

	cfg.DBPassword, cfg.JWTSecret, cfg.SpoonacularAPIKey = "pw", "secret", "key"
	assert.NoError(t, ValidateConfig(cfg))

	cfg.BudgetBackend = "etcd"
	assert.Error(t, ValidateConfig(cfg))
}

func TestResolveImage(t *testing.T) {
	var gotKey string
	s := &S3Config{
		BucketName: "recipes",
		presign: func(_ context.Context, key string, expiry time.Duration) (string, error) {
			gotKey = key
			return "https://signed.example/" + key, nil
		},
	}
	ctx := context.Background()

	url, err := s.ResolveImage(ctx, "https://cdn.example/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/a.jpg", url)

	url, err = s.ResolveImage(ctx, "s3://recipes/images/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "images/b.jpg", gotKey)
	assert.Equal(t, "https://signed.example/images/b.jpg", url)

	var unset *S3Config
	url, err = unset.ResolveImage(ctx, "images/c.jpg")
	require.NoError(t, err)
	assert.Empty(t, url)
}
