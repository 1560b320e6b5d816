package config

import (
	"fmt"
	"strings"

	"passforge/backend/internal/password"
)

// validateConfiguration validates the complete configuration
func (cm *ConfigManager) validateConfiguration(config *Config) error {
	if err := validateConfig(config); err != nil {
		return err
	}

	if err := cm.validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server configuration error: %w", err)
	}

	if err := cm.validateDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("database configuration error: %w", err)
	}

	if err := cm.validateGeneratorConfig(&config.Generator); err != nil {
		return fmt.Errorf("generator configuration error: %w", err)
	}

	if err := cm.validateMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("metrics configuration error: %w", err)
	}

	if err := cm.validateAuthConfig(&config.Auth); err != nil {
		return fmt.Errorf("auth configuration error: %w", err)
	}

	if config.Dictionary.Watch && config.Dictionary.Path == "" {
		return fmt.Errorf("dictionary configuration error: watch requires a path")
	}

	return nil
}

// validateServerConfig validates server configuration
func (cm *ConfigManager) validateServerConfig(config *ServerConfig) error {
	if config.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}

	if config.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate limit requests per second must be positive when rate limiting is enabled")
		}
		if config.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate limit burst must be positive when rate limiting is enabled")
		}
	}

	return nil
}

// validateDatabaseConfig validates database configuration
func (cm *ConfigManager) validateDatabaseConfig(config *DatabaseConfig) error {
	if config.Enabled && config.Path == "" {
		return fmt.Errorf("database path is required when the audit store is enabled")
	}
	return nil
}

// validateGeneratorConfig validates generator configuration
func (cm *ConfigManager) validateGeneratorConfig(config *GeneratorConfig) error {
	if _, err := password.ParsePreset(config.DefaultPreset); err != nil {
		return fmt.Errorf("invalid default preset: %w", err)
	}

	if config.MaxParallel > config.MaxBatch {
		cm.logger.Warnw("max_parallel exceeds max_batch, extra workers will idle",
			"max_parallel", config.MaxParallel,
			"max_batch", config.MaxBatch,
		)
	}

	return nil
}

// validateMetricsConfig validates metrics configuration
func (cm *ConfigManager) validateMetricsConfig(config *MetricsConfig) error {
	if config.Enabled && !strings.HasPrefix(config.Path, "/") {
		return fmt.Errorf("metrics path must start with '/': %q", config.Path)
	}
	return nil
}

// validateAuthConfig validates token auth configuration
func (cm *ConfigManager) validateAuthConfig(config *AuthConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.Secret == "" {
		return fmt.Errorf("auth secret is required when token auth is enabled")
	}

	if len(config.Secret) < 32 {
		return fmt.Errorf("auth secret must be at least 32 characters long")
	}

	if config.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}

	return nil
}
