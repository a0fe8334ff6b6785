package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/artem13815/hr-trainer/docs"

	httpapi "github.com/artem13815/hr-trainer/api/http"
	"github.com/artem13815/hr-trainer/api/http/handlers"
	"github.com/artem13815/hr-trainer/pkg/config"
	"github.com/artem13815/hr-trainer/pkg/evaluation"
	"github.com/artem13815/hr-trainer/pkg/health"
	"github.com/artem13815/hr-trainer/pkg/health/checkers"
	"github.com/artem13815/hr-trainer/pkg/interview"
	"github.com/artem13815/hr-trainer/pkg/llm"
	"github.com/artem13815/hr-trainer/pkg/llm/openrouter"
	"github.com/artem13815/hr-trainer/pkg/logger"
	"github.com/artem13815/hr-trainer/pkg/persona"
	pgrepo "github.com/artem13815/hr-trainer/pkg/repository/postgres"
	"github.com/artem13815/hr-trainer/pkg/storage/postgres"
	redisstore "github.com/artem13815/hr-trainer/pkg/storage/redis"
	"github.com/artem13815/hr-trainer/pkg/training"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort != "" {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DatabaseURL, "up", log); err != nil {
			return err
		}
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		return err
	}
	defer pool.Close()

	var (
		locker interview.Locker = interview.NewKeyedMutex()
		checks                  = []health.Checker{checkers.NewPostgresChecker(pool)}
	)
	if cfg.RedisURL != "" {
		rdb, err := redisstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		locker = redisstore.NewLocker(rdb, cfg.LockTTL, log)
		checks = append(checks, checkers.NewRedisChecker(rdb))
		log.Info("using redis interview lock")
	}

	app := buildApp(cfg, log, pool, locker, health.NewService(checks...))

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}

func buildApp(cfg config.Config, log *logrus.Logger, pool *pgxpool.Pool, locker interview.Locker, readiness health.ReadinessUseCase) *fiber.App {
	client := openrouter.New(openrouter.Config{
		APIKey:   cfg.AIAPIKey,
		URL:      cfg.AIAPIURL,
		Model:    cfg.AIModel,
		AppTitle: cfg.AIAppTitle,
		Referer:  cfg.AIReferer,
	}, nil)
	model := llm.NewRetrying(client, llm.RetryConfig{
		Timeout:    cfg.AITimeout,
		MaxRetries: uint64(cfg.AIMaxRetries),
		BaseDelay:  cfg.AIRetryBaseDelay,
	}, log)

	interviewRepo := pgrepo.NewInterviewRepository(pool)
	interviewUC := interview.NewService(
		interviewRepo,
		persona.NewGenerator(model, log),
		evaluation.NewGenerator(model, log),
		locker,
		client.Model(),
		log,
	)
	reports := interview.NewReporting(interviewRepo, cfg.StaleAfter)
	trainingUC := training.NewService(pgrepo.NewTrainingRepository(pool))

	app := httpapi.NewApp(httpapi.Options{CORSOrigin: cfg.CORSOrigin, AccessLog: log.Writer()}, log)
	httpapi.Register(app, httpapi.Handlers{
		Health:    handlers.NewHealthHandler(readiness),
		Interview: handlers.NewInterviewHandler(interviewUC, reports),
		RH:        handlers.NewRHHandler(reports),
		Training:  handlers.NewTrainingHandler(trainingUC),
	}, httpapi.Limits{Window: cfg.RateLimitWindow, Max: cfg.RateLimitMax})

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)
	return app
}
