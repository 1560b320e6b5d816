package main

import (
	"errors"
	"fmt"
	"time"

	"passforge/backend/internal/auth"

	"github.com/spf13/cobra"
)

var errNoSecret = errors.New("auth.secret (PASSFORGE_AUTH_SECRET) must be set to at least 32 characters to issue tokens")

func newTokenCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API bearer tokens",
	}

	var (
		client string
		scopes []string
		ttl    time.Duration
	)
	issue := &cobra.Command{
		Use:     "issue",
		Short:   "Sign a bearer token for an API client",
		Example: `  PASSFORGE_AUTH_SECRET=... passforge token issue --client ci --scope generate --ttl 24h`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := global.cliLogger()
			defer logger.Sync()

			cfg, err := global.loadConfig(logger)
			if err != nil {
				return err
			}
			if len(cfg.Auth.Secret) < 32 {
				return errNoSecret
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.Auth.TokenTTL
			}

			tokens := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, ttl)
			token, expires, err := tokens.Issue(client, scopes)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "Token for %q expires %s\n", client, expires.UTC().Format(time.RFC3339))
			return nil
		},
	}
	issue.Flags().StringVar(&client, "client", "", "name of the API client")
	issue.Flags().StringSliceVar(&scopes, "scope", nil, "scopes to grant: generate, analyze (default all)")
	issue.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default auth.token_ttl)")
	_ = issue.MarkFlagRequired("client")

	cmd.AddCommand(issue)
	return cmd
}
