package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/middleware"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bot token for a Telegram user",
	Long:  "Signs a bearer token with auth.jwt_secret. The bot sends it as \"Authorization: Bearer <token>\" on behalf of the user.",
	RunE:  issueToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "user", "u", "", "Telegram user ID (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default auth.token_ttl)")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

func issueToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is not configured")
	}

	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}

	token, err := middleware.NewBotToken([]byte(cfg.Auth.JWTSecret), tokenSubject, ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
