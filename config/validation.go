package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredSecrets lists settings that must be non-empty per environment.
var requiredSecrets = map[Environment][]string{
	Development: {},
	Test:        {},
	CI:          {"DB_PASSWORD", "JWT_SECRET"},
	Production:  {"DB_PASSWORD", "JWT_SECRET", "SPOONACULAR_API_KEY"},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs []error

	values := map[string]string{
		"DB_PASSWORD":         cfg.DBPassword,
		"JWT_SECRET":          cfg.JWTSecret,
		"SPOONACULAR_API_KEY": cfg.SpoonacularAPIKey,
	}
	for _, key := range requiredSecrets[cfg.Environment] {
		if values[key] == "" {
			errs = append(errs, ValidationError{Field: key, Message: "is required in " + string(cfg.Environment)})
		}
	}

	if cfg.ExternalQuota <= 0 {
		errs = append(errs, ValidationError{Field: "EXTERNAL_QUOTA", Message: "must be positive"})
	}
	if cfg.ExternalWindow <= 0 {
		errs = append(errs, ValidationError{Field: "EXTERNAL_WINDOW", Message: "must be positive"})
	}
	if cfg.ExternalCacheSize < 0 {
		errs = append(errs, ValidationError{Field: "EXTERNAL_CACHE_SIZE", Message: "must not be negative"})
	}
	if cfg.CollectionExternalCap < 0 {
		errs = append(errs, ValidationError{Field: "COLLECTION_EXTERNAL_CAP", Message: "must not be negative"})
	}
	if cfg.SearchLocalShareCap <= 0 {
		errs = append(errs, ValidationError{Field: "SEARCH_LOCAL_SHARE_CAP", Message: "must be positive"})
	}

	switch cfg.BudgetBackend {
	case BudgetMemory:
	case BudgetRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			errs = append(errs, ValidationError{Field: "REDIS_URL", Message: "redis budget backend needs REDIS_URL or REDIS_HOST"})
		}
	default:
		errs = append(errs, ValidationError{Field: "BUDGET_BACKEND", Message: fmt.Sprintf("unknown backend %q", cfg.BudgetBackend)})
	}

	return errors.Join(errs...)
}
