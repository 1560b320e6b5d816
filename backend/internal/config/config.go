package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is prepended to every environment override, e.g. PASSFORGE_SERVER_PORT.
const EnvPrefix = "PASSFORGE"

type Config struct {
	Server     ServerConfig     `json:"server" mapstructure:"server"`
	Logger     LoggerConfig     `json:"logger" mapstructure:"logger"`
	Database   DatabaseConfig   `json:"database" mapstructure:"database"`
	Dictionary DictionaryConfig `json:"dictionary" mapstructure:"dictionary"`
	Generator  GeneratorConfig  `json:"generator" mapstructure:"generator"`
	Metrics    MetricsConfig    `json:"metrics" mapstructure:"metrics"`
	Auth       AuthConfig       `json:"auth" mapstructure:"auth"`
}

type ServerConfig struct {
	Host            string          `json:"host" mapstructure:"host" validate:"required"`
	Port            int             `json:"port" mapstructure:"port" validate:"min=1,max=65535"`
	Environment     string          `json:"environment" mapstructure:"environment" validate:"oneof=development staging production test"`
	ReadTimeout     time.Duration   `json:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `json:"write_timeout" mapstructure:"write_timeout"`
	GracefulTimeout time.Duration   `json:"graceful_timeout" mapstructure:"graceful_timeout"`
	CORSOrigins     []string        `json:"cors_origins" mapstructure:"cors_origins"`
	RateLimit       RateLimitConfig `json:"rate_limit" mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled           bool    `json:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64 `json:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `json:"burst" mapstructure:"burst"`
}

type LoggerConfig struct {
	Level         string `json:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format        string `json:"format" mapstructure:"format" validate:"oneof=json console"`
	OutputPath    string `json:"output_path" mapstructure:"output_path"`
	MaxSize       int    `json:"max_size" mapstructure:"max_size" validate:"min=0"`
	MaxBackups    int    `json:"max_backups" mapstructure:"max_backups" validate:"min=0"`
	MaxAge        int    `json:"max_age" mapstructure:"max_age" validate:"min=0"`
	Compress      bool   `json:"compress" mapstructure:"compress"`
	EnableConsole bool   `json:"enable_console" mapstructure:"enable_console"`
	EnableFile    bool   `json:"enable_file" mapstructure:"enable_file"`
}

type DatabaseConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Path     string `json:"path" mapstructure:"path"`
	LogLevel string `json:"log_level" mapstructure:"log_level" validate:"oneof=silent error warn info"`
}

type DictionaryConfig struct {
	Path  string `json:"path" mapstructure:"path"`
	Watch bool   `json:"watch" mapstructure:"watch"`
}

type GeneratorConfig struct {
	DefaultPreset string `json:"default_preset" mapstructure:"default_preset"`
	MaxBatch      int    `json:"max_batch" mapstructure:"max_batch" validate:"min=1,max=1000"`
	MaxParallel   int    `json:"max_parallel" mapstructure:"max_parallel" validate:"min=1,max=64"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// AuthConfig guards the /api/v1 routes with HS256 bearer tokens when enabled.
type AuthConfig struct {
	Enabled  bool          `json:"enabled" mapstructure:"enabled"`
	Secret   string        `json:"-" mapstructure:"secret"`
	Issuer   string        `json:"issuer" mapstructure:"issuer"`
	TokenTTL time.Duration `json:"token_ttl" mapstructure:"token_ttl"`
}

// ConfigManager manages the complete configuration lifecycle
type ConfigManager struct {
	config     *Config
	configFile string
	envFiles   []string
	logger     *zap.SugaredLogger
}

// Option customizes a ConfigManager.
type Option func(*ConfigManager)

// WithConfigFile reads exactly this file instead of searching the default paths.
func WithConfigFile(path string) Option {
	return func(cm *ConfigManager) { cm.configFile = path }
}

// WithEnvFiles overrides the .env files loaded before reading the environment.
func WithEnvFiles(files ...string) Option {
	return func(cm *ConfigManager) { cm.envFiles = files }
}

// NewConfigManager creates a new configuration manager
func NewConfigManager(logger *zap.SugaredLogger, opts ...Option) *ConfigManager {
	cm := &ConfigManager{
		logger:   logger,
		envFiles: []string{".env"},
	}
	for _, opt := range opts {
		opt(cm)
	}
	return cm
}

// Load loads and validates the complete configuration
func (cm *ConfigManager) Load() (*Config, error) {
	cm.loadEnvFiles()

	config, err := cm.loadConfiguration()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cm.validateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cm.config = config
	cm.logger.Info("Configuration loaded and validated successfully")

	return config, nil
}

// loadEnvFiles loads .env files; variables already set in the process win.
func (cm *ConfigManager) loadEnvFiles() {
	for _, file := range cm.envFiles {
		if err := godotenv.Load(file); err != nil {
			cm.logger.Debugw("No env file loaded", "file", file, "error", err)
		}
	}
}

// loadConfiguration loads configuration from multiple sources
func (cm *ConfigManager) loadConfiguration() (*Config, error) {
	v := viper.New()

	if cm.configFile != "" {
		v.SetConfigFile(cm.configFile)
	} else {
		v.SetConfigName("passforge")
		v.AddConfigPath("./config")
		v.AddConfigPath("../config")
		v.AddConfigPath("../../config")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		cm.logger.Warn("Configuration file not found, using defaults and environment variables")
	} else {
		cm.logger.Infof("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return &config, nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// ReloadConfig reloads the configuration
func (cm *ConfigManager) ReloadConfig() error {
	newConfig, err := cm.Load()
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	cm.config = newConfig
	cm.logger.Info("Configuration reloaded successfully")
	return nil
}

// Address is the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
