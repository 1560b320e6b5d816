package main

import (
	"fmt"
	"os"

	"passforge/backend/internal/config"
	"passforge/backend/internal/dictionary"
	"passforge/backend/internal/service"
	"passforge/backend/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "passforge",
		Short: "Generate compliant passwords and estimate password strength",
		Long: `passforge draws passwords from a cryptographically secure source, enforces
composition rules (minimum counts, no repeats, no sequences, no dictionary words)
and estimates the strength of any password.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: search ./config, ../config, ../../config for passforge.*)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newGenerateCmd(opts),
		newAnalyzeCmd(opts),
		newPresetsCmd(),
		newServeCmd(opts),
		newConfigCmd(opts),
		newTokenCmd(opts),
	)

	return root
}

// cliLogger logs to stderr so stdout stays clean for passwords and JSON.
func (o *globalOptions) cliLogger() *zap.SugaredLogger {
	logger, err := utils.NewSugaredLogger(&config.LoggerConfig{
		Level:         o.logLevel,
		Format:        "console",
		EnableConsole: true,
	})
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger
}

func (o *globalOptions) loadConfig(logger *zap.SugaredLogger) (*config.Config, error) {
	var opts []config.Option
	if o.configFile != "" {
		if _, err := os.Stat(o.configFile); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		opts = append(opts, config.WithConfigFile(o.configFile))
	}
	return config.NewConfigManager(logger, opts...).Load()
}

// newLocalService builds a service without audit store or metrics for one-shot commands.
func newLocalService(cfg *config.Config, logger *zap.SugaredLogger) *service.PasswordService {
	words := dictionary.NewStore(cfg.Dictionary.Path, logger)
	return service.NewPasswordService(cfg.Generator, words, nil, nil, logger)
}
