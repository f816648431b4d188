package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lnm-board/server/internal/config"
	"github.com/lnm-board/server/internal/domain/admins"
	"github.com/lnm-board/server/internal/storage/postgres"
)

var (
	superAdminName     string
	superAdminEmail    string
	superAdminPassword string
)

// superAdminCmd seeds the first super admin so a fresh deployment has
// someone who can approve registrations.
var superAdminCmd = &cobra.Command{
	Use:   "create-super-admin",
	Short: "Create a super admin account",
	Long: `Create a super admin account directly in the database.

Idempotent: if an account with the email already exists, nothing
changes.

Example:
  server create-super-admin --name "Root" --email root@campus.edu --password changeme1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg.Logging)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		pool, err := postgres.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer pool.Close()

		repo, err := postgres.NewRepository(pool)
		if err != nil {
			return err
		}

		service := admins.NewService(repo.Admins(), logger)
		if err := service.Bootstrap(ctx, admins.CreateParams{
			Name:     superAdminName,
			Email:    superAdminEmail,
			Password: superAdminPassword,
		}); err != nil {
			return err
		}
		fmt.Printf("super admin ready: %s\n", superAdminEmail)
		return nil
	},
}

func init() {
	superAdminCmd.Flags().StringVar(&superAdminName, "name", "", "display name")
	superAdminCmd.Flags().StringVar(&superAdminEmail, "email", "", "login email")
	superAdminCmd.Flags().StringVar(&superAdminPassword, "password", "", "login password")
	_ = superAdminCmd.MarkFlagRequired("name")
	_ = superAdminCmd.MarkFlagRequired("email")
	_ = superAdminCmd.MarkFlagRequired("password")
}
