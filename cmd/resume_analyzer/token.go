package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/callen/resume-analyzer/internal/config"
	"github.com/callen/resume-analyzer/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the mutating API routes",
	Long:  "Mint a signed bearer token using AUTH_TOKEN_SECRET. The server only checks tokens when the same secret is set.",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Who the token is minted for")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default: AUTH_TOKEN_TTL_HOURS)")

	tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	authCfg, err := config.LoadAuthFromEnv()
	if err != nil {
		return err
	}
	if authCfg == nil {
		return fmt.Errorf("AUTH_TOKEN_SECRET must be set to mint tokens")
	}

	token, err := server.NewTokenService(authCfg).GenerateToken(tokenSubject, tokenTTL)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintln(os.Stdout, token)
	return nil
}
