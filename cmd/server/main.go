package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"workoutapi/docs" // swagger docs
	"workoutapi/internal/auth"
	"workoutapi/internal/cache"
	"workoutapi/internal/config"
	"workoutapi/internal/db"
	"workoutapi/internal/events"
	"workoutapi/internal/handler"
	"workoutapi/internal/logging"
	"workoutapi/internal/mail"
	"workoutapi/internal/repository"
	"workoutapi/internal/router"
	"workoutapi/internal/service"
)

const (
	mailSendTimeout = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title Workout Tracker API
// @version 1.0
// @description Workout tracker API with email verified accounts, exercise logs, weekly plans and progress tracking.
// @host localhost:5003
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token from /user/login.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info")
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.New(cfg.LogLevel)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			logger.Warn().Err(err).Msg("drop tables")
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, running without cache and session revocation")
	}

	mailQueue := mail.NewQueue(newSender(cfg, logger), logger.With().Str("component", "mail").Logger(), cfg.MailQueue, mailSendTimeout)
	publisher := newPublisher(cfg, logger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	exerciseRepo := repository.NewExerciseRepository(gormDB)
	planRepo := repository.NewWorkoutPlanRepository(gormDB)
	performanceRepo := repository.NewPerformanceRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		jwtService,
		sessionStore,
		mailQueue,
		publisher,
		cacheClient,
		logger,
		service.AuthConfig{
			VerificationTTL:  cfg.VerificationTokenTTL,
			SessionTTL:       cfg.SessionTokenTTL,
			VerificationLink: cfg.VerificationLink,
		},
	)
	exerciseService := service.NewExerciseService(exerciseRepo, logger)
	planService := service.NewWorkoutPlanService(planRepo)
	performanceService := service.NewPerformanceService(performanceRepo, publisher, logger)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(e, logger, authService, router.Handlers{
		User:        handler.NewUserHandler(authService, logger, cfg.VerifyRedirectURL),
		Exercise:    handler.NewExerciseHandler(exerciseService, logger),
		WorkoutPlan: handler.NewWorkoutPlanHandler(planService, logger),
		Performance: handler.NewPerformanceHandler(performanceService, logger),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info().Str("addr", addr).Msg("server listening, swagger at /swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	if err := mailQueue.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("mail queue not drained")
	}
	if err := publisher.Close(); err != nil {
		logger.Warn().Err(err).Msg("event publisher close")
	}
	if err := cacheClient.Close(); err != nil {
		logger.Warn().Err(err).Msg("redis close")
	}
	logger.Info().Msg("server closed")
}

// newSender picks SMTP delivery when a host is configured and log delivery otherwise.
func newSender(cfg *config.Config, logger zerolog.Logger) mail.Sender {
	if cfg.SMTPHost == "" {
		logger.Warn().Msg("SMTP_HOST not set, verification emails are logged instead of sent")
		return mail.NewLogSender(logger)
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
}

func newPublisher(cfg *config.Config, logger zerolog.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NopPublisher{}
	}
	return events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger))
}
