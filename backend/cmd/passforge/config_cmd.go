package main

import (
	"encoding/json"
	"fmt"
	"io"

	"passforge/backend/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := global.cliLogger()
			defer logger.Sync()

			if _, err := global.loadConfig(logger); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	})

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration after defaults, files and environment are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := global.cliLogger()
			defer logger.Sync()

			cfg, err := global.loadConfig(logger)
			if err != nil {
				return err
			}
			return showConfig(cmd.OutOrStdout(), cfg, format)
		},
	}
	show.Flags().StringVar(&format, "format", "json", "output format: json, text")
	cmd.AddCommand(show)

	return cmd
}

func showConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case "text":
		fmt.Fprintf(w, "Environment: %s\n", cfg.Server.Environment)
		fmt.Fprintf(w, "Server:      %s\n", cfg.Address())
		fmt.Fprintf(w, "Logger:      %s (%s)\n", cfg.Logger.Level, cfg.Logger.Format)
		if cfg.Database.Enabled {
			fmt.Fprintf(w, "Audit store: %s\n", cfg.Database.Path)
		} else {
			fmt.Fprintln(w, "Audit store: disabled")
		}
		dict := cfg.Dictionary.Path
		if dict == "" {
			dict = "built-in"
		}
		fmt.Fprintf(w, "Dictionary:  %s (watch=%t)\n", dict, cfg.Dictionary.Watch)
		fmt.Fprintf(w, "Generator:   preset=%s max_batch=%d max_parallel=%d\n",
			cfg.Generator.DefaultPreset, cfg.Generator.MaxBatch, cfg.Generator.MaxParallel)
		if cfg.Metrics.Enabled {
			fmt.Fprintf(w, "Metrics:     %s\n", cfg.Metrics.Path)
		} else {
			fmt.Fprintln(w, "Metrics:     disabled")
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
