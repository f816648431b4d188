package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lnm-board/server/internal/api"
	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/config"
	"github.com/lnm-board/server/internal/domain/admins"
	"github.com/lnm-board/server/internal/domain/events"
	"github.com/lnm-board/server/internal/domain/notices"
	"github.com/lnm-board/server/internal/images"
	"github.com/lnm-board/server/internal/jobs"
	"github.com/lnm-board/server/internal/metrics"
	"github.com/lnm-board/server/internal/storage/postgres"
)

var (
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bulletin board HTTP server",
	Long: `Start the HTTP server and begin accepting API requests.

On startup the server:
- Loads configuration from environment variables
- Seeds the super-admin account if SUPER_ADMIN_* env vars are set
- Runs a lifecycle sweep and schedules the periodic one
- Handles graceful shutdown on SIGINT/SIGTERM`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting bulletin board server")

	metrics.Init(Version, GitCommit)

	poolCtx, poolCancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := postgres.NewPool(poolCtx, cfg.Database.URL)
	poolCancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return err
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Server.BaseURL)
	adminsService := admins.NewService(repo.Admins(), logger)
	eventsService := events.NewService(repo.Events(), logger)
	noticesService := notices.NewService(repo.Notices())
	imageClient := images.NewClient(
		cfg.ImageHost.BaseURL,
		cfg.ImageHost.APIKey,
		cfg.ImageHost.Folder,
		images.WithTimeout(cfg.ImageHost.Timeout),
	)

	if err := bootstrapSuperAdmin(cfg, adminsService, logger); err != nil {
		logger.Error().Err(err).Msg("super admin bootstrap failed")
	}

	workers, err := jobs.NewWorkers(eventsService, logger)
	if err != nil {
		return fmt.Errorf("register workers: %w", err)
	}
	riverClient, err := jobs.NewClient(pool, workers)
	if err != nil {
		return fmt.Errorf("create river client: %w", err)
	}

	riverCtx, riverCancel := context.WithCancel(context.Background())
	defer riverCancel()
	if err := riverClient.Start(riverCtx); err != nil {
		return fmt.Errorf("start river workers: %w", err)
	}
	logger.Info().Msg("lifecycle sweep scheduled")
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			logger.Error().Err(err).Msg("river workers shutdown error")
		}
	}()

	router := api.NewRouter(api.Deps{
		Config:     cfg,
		Logger:     logger,
		Pool:       pool,
		Tokens:     tokens,
		Admins:     adminsService,
		AdminsRepo: repo.Admins(),
		Events:     eventsService,
		Notices:    noticesService,
		Images:     imageClient,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func bootstrapSuperAdmin(cfg config.Config, service *admins.Service, logger zerolog.Logger) error {
	bootstrap := cfg.Bootstrap
	if bootstrap.Name == "" || bootstrap.Email == "" || bootstrap.Password == "" {
		logger.Warn().Msg("super admin bootstrap env vars not fully set; skipping")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return service.Bootstrap(ctx, admins.CreateParams{
		Name:     bootstrap.Name,
		Email:    bootstrap.Email,
		Password: bootstrap.Password,
	})
}
