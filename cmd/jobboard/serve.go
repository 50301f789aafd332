package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/profile"
	"github.com/jonathan/jobboard/internal/resume"
	"github.com/jonathan/jobboard/internal/server"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/jonathan/jobboard/internal/storage"
)

var (
	serveAddr    string
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the resume endpoints:

  POST /resume/process           extract application autofill fields
  POST /resume/process-profile   extract a structured profile
  PUT  /resume/update-profile    reconcile extracted data into the profile
  GET  /profile                  read the caller's profile
  POST /profile/skills           add a skill
  DELETE /profile/skills/{id}    remove a skill

Without DATABASE_URL profiles are kept in memory.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides ADDR)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply pending database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := make(map[string]server.HealthCheck)

	store, closeStore, err := openProfileStore(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	locker, closeLocker, err := openLocker(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeLocker()

	var pipelineOpts []resume.Option
	if cfg.Storage.Enabled() {
		archive, err := storage.NewResumeArchive(ctx, cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("failed to connect to object storage: %w", err)
		}
		checks["storage"] = archive.Ping
		pipelineOpts = append(pipelineOpts, resume.WithArchive(archive))
		log.Info().Str("endpoint", cfg.Storage.Endpoint).Str("bucket", cfg.Storage.Bucket).Msg("archiving uploads")
	}

	pipeline, client, err := newExtraction(ctx, cfg, log, pipelineOpts...)
	if err != nil {
		return err
	}
	defer client.Close()

	var limits *ratelimit.Config
	if rl := ratelimit.LoadConfig(cfg.RateLimitRPS, cfg.RateLimitBurst); rl.Enabled {
		limits = rl
	}

	srv := server.New(server.Deps{
		Pipeline: pipeline,
		Profiles: profile.NewService(store, locker, log),
		JWT:      server.NewJWTService(jwtConfig),
		Logger:   log,
		Checks:   checks,
	}, server.Options{
		Addr:           cfg.Addr,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		RateLimit:      limits,
	})

	log.Info().
		Str("addr", cfg.Addr).
		Str("ocr", cfg.OCRBackend).
		Bool("rate_limit", limits != nil).
		Msg("starting server")

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// openProfileStore connects to Postgres, or falls back to memory when no
// database is configured.
func openProfileStore(ctx context.Context, cfg config.Config, log zerolog.Logger, checks map[string]server.HealthCheck) (profile.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, profiles are stored in memory")
		return profile.NewMemoryStore(), func() {}, nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if serveMigrate {
		if err := applyMigrations(ctx, database, log); err != nil {
			database.Close()
			return nil, nil, err
		}
	}

	checks["database"] = database.Ping
	return database, database.Close, nil
}

// openLocker returns a Redis-backed lock when REDIS_ADDR is set so that
// several replicas serialize profile writes. Nil means in-process locking.
func openLocker(ctx context.Context, cfg config.Config, log zerolog.Logger, checks map[string]server.HealthCheck) (profile.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.LockTTL()).Msg("using redis profile locks")

	return profile.NewRedisLocker(client, cfg.LockTTL()), func() { _ = client.Close() }, nil
}
