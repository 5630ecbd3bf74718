package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/examportal/examportal-backend/internal/config"
	"github.com/examportal/examportal-backend/internal/database"
	"github.com/examportal/examportal-backend/internal/handler"
	"github.com/examportal/examportal-backend/internal/logger"
	"github.com/examportal/examportal-backend/internal/repository"
	"github.com/examportal/examportal-backend/internal/router"
	"github.com/examportal/examportal-backend/internal/service"
	"github.com/examportal/examportal-backend/internal/validator"
	"github.com/examportal/examportal-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Exam Portal Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories.
	adminRepo := repository.NewAdminRepository(pool)
	candidateRepo := repository.NewCandidateRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	resultRepo := repository.NewResultRepository(pool)

	// Services.
	statsCache := service.NewRedisStatsCache(rdb)
	submissionBus := service.NewRedisSubmissionBus(rdb)
	authService := service.NewAuthService(cfg, rdb)
	adminService := service.NewAdminService(adminRepo, authService)
	candidateService := service.NewCandidateService(candidateRepo)
	questionService := service.NewQuestionService(questionRepo)
	examService := service.NewExamService(candidateRepo, questionRepo, resultRepo, statsCache, submissionBus)

	// Handlers.
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, candidateService, adminService),
		Question:   handler.NewQuestionHandler(questionService),
		Exam:       handler.NewExamHandler(examService),
		HallTicket: handler.NewHallTicketHandler(candidateService),
		Candidate:  handler.NewCandidateHandler(candidateService, authService),
		AdminUser:  handler.NewAdminUserHandler(adminService),
		Monitor:    handler.NewMonitorHandler(submissionBus, log, cfg.AllowedOrigins),
	}

	// Background worker keeping the statistics cache warm.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	statsWorker := worker.NewStatsWorker(examService, statsCache, cfg.StatsRefreshInterval, log)
	go statsWorker.Start(workerCtx)

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
