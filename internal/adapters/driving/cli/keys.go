package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

func newHashKeyCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "hash-key <key>",
		Short: "Hash a service key for the API_KEYS setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Auth == nil {
				return errors.New("auth adapter not configured")
			}
			hash, err := app.Auth.HashAPIKey(args[0])
			if err != nil {
				return fmt.Errorf("hash key: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", name, hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "service", "name recorded for callers using this key")
	return cmd
}

func newTokenCmd(app *App) *cobra.Command {
	var (
		subject string
		email   string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET (local testing)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Auth == nil {
				return errors.New("auth adapter not configured")
			}
			if subject == "" {
				return fmt.Errorf("%w: --subject is required", domain.ErrInvalidInput)
			}

			now := time.Now()
			token, err := app.Auth.GenerateToken(&domain.TokenClaims{
				Subject:   subject,
				Email:     email,
				IssuedAt:  now.Unix(),
				ExpiresAt: now.Add(ttl).Unix(),
			})
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "token subject (user ID)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
