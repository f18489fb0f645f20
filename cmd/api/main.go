package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stackit-hq/stackit-api/internal/api"
	"github.com/stackit-hq/stackit-api/internal/core/service"
	"github.com/stackit-hq/stackit-api/internal/infrastructure/config"
	mongodb "github.com/stackit-hq/stackit-api/internal/infrastructure/db/mongo"
	redisdb "github.com/stackit-hq/stackit-api/internal/infrastructure/db/redis"
	"github.com/stackit-hq/stackit-api/internal/infrastructure/queue"
	"github.com/stackit-hq/stackit-api/internal/infrastructure/storage"
	"github.com/stackit-hq/stackit-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	tagRepo := mongodb.NewTagRepository(db)
	questionRepo := mongodb.NewQuestionRepository(db)
	answerRepo := mongodb.NewAnswerRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":     userRepo.EnsureIndexes,
		"tags":      tagRepo.EnsureIndexes,
		"questions": questionRepo.EnsureIndexes,
		"answers":   answerRepo.EnsureIndexes,
		"comments":  commentRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL)
	resetTokenStore := redisdb.NewResetTokenStore(rdb)

	objectStorage := storage.NewClient(storage.Config{
		BaseURL:      cfg.Cloudinary.BaseURL,
		CloudName:    cfg.Cloudinary.CloudName,
		UploadPreset: cfg.Cloudinary.UploadPreset,
	}, log)

	viewDispatcher := queue.NewViewDispatcher(cfg.ViewWorkers, questionRepo, log)
	viewDispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessionStore, resetTokenStore, cfg.JWTSecret, cfg.SessionTTL, log)
	questionService := service.NewQuestionService(questionRepo, tagRepo, objectStorage, log)
	feedService := service.NewFeedService(questionRepo, tagRepo, answerRepo, log)
	detailService := service.NewDetailService(questionRepo, answerRepo, commentRepo, tagRepo, viewDispatcher, log)
	adminService := service.NewAdminService(userRepo, log)

	e := api.NewRouter(api.Services{
		Auth:     authService,
		Composer: questionService,
		Feed:     feedService,
		Detail:   detailService,
		Admin:    adminService,
	}, api.Options{
		JWTSecret: cfg.JWTSecret,
		Mongo:     db,
		Redis:     rdb,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
