package main

import (
	"os"
	"os/signal"
	"syscall"

	"passforge/backend/internal/server"
	"passforge/backend/internal/utils"

	"github.com/spf13/cobra"
)

func newServeCmd(global *globalOptions) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap := global.cliLogger()
			cfg, err := global.loadConfig(bootstrap)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Server.Host = host
			}
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Root().PersistentFlags().Changed("log-level") {
				cfg.Logger.Level = global.logLevel
			}

			logger, err := utils.NewSugaredLogger(&cfg.Logger)
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Infow("Starting PassForge server",
				"address", cfg.Address(),
				"environment", cfg.Server.Environment,
				"default_preset", cfg.Generator.DefaultPreset,
				"audit_store", cfg.Database.Enabled,
			)

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}
