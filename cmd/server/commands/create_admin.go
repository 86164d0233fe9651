package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blogfolio/internal/db"
	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the admin account, or promote an existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := firstNonEmpty(adminName, cfg.AdminName)
		email := firstNonEmpty(adminEmail, cfg.AdminEmail)
		password := firstNonEmpty(adminPassword, cfg.AdminPassword)
		if name == "" || email == "" || password == "" {
			return errors.New("name, email and password are required (flags or ADMIN_* env)")
		}

		if err := db.Init(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.EnsureAdmin(db.DB, name, email, password); err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin account ready: %s\n", db.NormalizeEmail(email))
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Login password")
	rootCmd.AddCommand(createAdminCmd)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
