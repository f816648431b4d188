package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lnm-board/server/internal/config"
	"github.com/lnm-board/server/internal/domain/events"
	"github.com/lnm-board/server/internal/storage/postgres"
)

// sweepCmd runs a single lifecycle sweep and exits. Useful for cron
// setups or for forcing a sweep after restoring a backup.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one lifecycle sweep and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg.Logging)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
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

		result, err := events.NewService(repo.Events(), logger).Sweep(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("sweep complete: %d reclassified, %d purged\n", result.Reclassified, result.Purged)
		return nil
	},
}
