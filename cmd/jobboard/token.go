package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/server"
)

var tokenUserID string

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue a signed session token for a user",
	Long:  "Print a JWT signed with JWT_SECRET for local testing against the API. Send it as 'Authorization: Bearer <token>'.",
	RunE:  runIssueToken,
}

func init() {
	issueTokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User ID (UUID) to issue the token for (required)")
	_ = issueTokenCmd.MarkFlagRequired("user-id")
	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(tokenUserID)
	if err != nil {
		return fmt.Errorf("invalid --user-id: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(userID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
