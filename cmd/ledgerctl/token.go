package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/integration/adapters"
)

func newTokenCmd() *cobra.Command {
	var (
		userFlag string
		email    string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := uuid.New()
			if userFlag != "" {
				parsed, err := uuid.Parse(userFlag)
				if err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
				userID = parsed
			}

			if ttl <= 0 {
				ttl = cfg.JWT.AccessTokenExpiry
			}

			tokenService := adapters.NewTokenService(cfg.JWT.Secret)
			token, err := tokenService.IssueAccessToken(cmd.Context(), adapter.Principal{UserID: userID, Email: email}, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "user_id: %s\n", userID)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "user ID to embed (random when empty)")
	cmd.Flags().StringVar(&email, "email", "dev@bizledger.local", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY)")

	return cmd
}
