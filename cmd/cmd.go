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

	"tg-dating-backend/internal/config"
	"tg-dating-backend/internal/handlers"
	"tg-dating-backend/internal/kv"
	"tg-dating-backend/internal/metrics"
	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Run executes the datingsim command line
func Run() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "datingsim",
		Short:         "Dating simulation backend for the Telegram mini-app",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	})

	var userID int64
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe a user's simulation records and seed them again",
		RunE: func(cmd *cobra.Command, args []string) error {
			return reset(cmd.Context(), configPath, userID)
		},
	}
	resetCmd.Flags().Int64Var(&userID, "user", 0, "Platform user id whose records are reset")
	_ = resetCmd.MarkFlagRequired("user")
	cmd.AddCommand(resetCmd)

	return cmd
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	medium, err := openMedium(ctx, cfg)
	if err != nil {
		return err
	}
	defer medium.Close()

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize services
	wsHub := services.NewWSHub()
	sessions := services.NewSessionService(cfg.JWT.Secret)
	tenants := services.NewTenants(medium, services.Options{
		Latency:  services.Latency{Min: cfg.Latency.Min, Max: cfg.Latency.Max},
		Metrics:  m,
		Notifier: wsHub,
	})

	var photoService *services.PhotoService
	if cfg.AWS.S3Bucket != "" {
		photoService, err = services.NewPhotoService(ctx, services.PhotoOptions{
			Region:    cfg.AWS.Region,
			Bucket:    cfg.AWS.S3Bucket,
			AccessKey: cfg.AWS.AccessKey,
			SecretKey: cfg.AWS.SecretKey,
			Endpoint:  cfg.AWS.Endpoint,
			PublicURL: cfg.AWS.PublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to create photo service: %w", err)
		}
	} else {
		log.Warn().Msg("S3 bucket not configured, photo uploads disabled")
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Tenants:        tenants,
		Sessions:       sessions,
		Photos:         photoService,
		Events:         services.NewEventService(),
		Hub:            wsHub,
		Gatherer:       reg,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("storage", cfg.Storage.Driver).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}

func reset(ctx context.Context, configPath string, userID int64) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	medium, err := openMedium(ctx, cfg)
	if err != nil {
		return err
	}
	defer medium.Close()

	store, err := services.NewTenants(medium, services.Options{}).For(ctx, models.Identity{ID: userID})
	if err != nil {
		return err
	}
	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset records: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("Records reset")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogger(cfg.Log.Level)
	return cfg, nil
}

func openMedium(ctx context.Context, cfg *config.Config) (kv.Medium, error) {
	medium, err := kv.Open(ctx, kv.Options{
		Driver:      cfg.Storage.Driver,
		SQLitePath:  cfg.Storage.SQLitePath,
		PostgresDSN: cfg.Storage.Database.DSN(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("Storage opened")
	return medium, nil
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
