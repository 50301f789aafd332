package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/db"
)

var (
	userName  string
	userEmail string
	userPhone string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an empty user profile in the database",
	RunE:  runCreateUser,
}

func init() {
	createUserCmd.Flags().StringVar(&userName, "name", "", "Display name")
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "Email address (required)")
	createUserCmd.Flags().StringVar(&userPhone, "phone", "", "Phone number")
	_ = createUserCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(createUserCmd)
}

func runCreateUser(cmd *cobra.Command, _ []string) error {
	email := strings.TrimSpace(userEmail)
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid --email %q", userEmail)
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	id, err := database.CreateUser(ctx, strings.TrimSpace(userName), email, strings.TrimSpace(userPhone))
	if err != nil {
		return err
	}
	log.Info().Str("user_id", id.String()).Str("email", email).Msg("created user")
	_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
	return err
}
