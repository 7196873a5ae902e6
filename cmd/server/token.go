package main

import (
	"errors"
	"fmt"
	"time"

	"eventreg/config"
	"eventreg/internal/auth"
	"eventreg/internal/domain"

	"github.com/spf13/cobra"
)

var (
	tokenEmail string
	tokenTTL   time.Duration
)

func issueTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint an admin API token",
		Long: `Mint a bearer token for the admin API, signed with JWT_SECRET.

Examples:
  server issue-token --email ops@example.org
  server issue-token --email ops@example.org --ttl 2h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenEmail == "" {
				return errors.New("--email is required")
			}
			cfg := config.Load()
			token, err := auth.GenerateAccessToken(&cfg.JWT, tokenEmail, domain.RoleAdmin, tokenTTL)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&tokenEmail, "email", "", "operator email recorded in the token")
	cmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY)")
	return cmd
}
