package config

import (
	"github.com/spf13/viper"
)

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.graceful_timeout", "30s")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_second", 20.0)
	v.SetDefault("server.rate_limit.burst", 40)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output_path", "logs/passforge.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.enable_console", true)
	v.SetDefault("logger.enable_file", false)

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.path", "data/passforge.db")
	v.SetDefault("database.log_level", "warn")

	// Dictionary defaults
	v.SetDefault("dictionary.path", "")
	v.SetDefault("dictionary.watch", false)

	// Generator defaults
	v.SetDefault("generator.default_preset", "custom")
	v.SetDefault("generator.max_batch", 100)
	v.SetDefault("generator.max_parallel", 4)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Auth defaults
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "passforge")
	v.SetDefault("auth.token_ttl", "720h")
}
