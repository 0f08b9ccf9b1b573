package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"

	api "taskmanager-backend/cmd/api"
	authdomain "taskmanager-backend/internal/auth/domain"
	authRepo "taskmanager-backend/internal/auth/repository"
	authUsecase "taskmanager-backend/internal/auth/usecase"
	taskdomain "taskmanager-backend/internal/task/domain"
	taskRepo "taskmanager-backend/internal/task/repository"
	taskUsecase "taskmanager-backend/internal/task/usecase"
	"taskmanager-backend/pkg/config"
	"taskmanager-backend/pkg/database"
	"taskmanager-backend/pkg/logger"
	"taskmanager-backend/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	log.Info("database connected", "driver", cfg.DBDriver)

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &taskdomain.Task{}); err != nil {
		return err
	}

	avatars, err := newAvatarStorage(ctx, cfg)
	if err != nil {
		return err
	}

	// The default avatar is served from the public directory.
	defaultsDir := filepath.Join(cfg.PublicDir, filepath.FromSlash(path.Dir(cfg.DefaultAvatarPath)))
	if err := storage.EnsureDir(defaultsDir); err != nil {
		return err
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)

	// Initialize use cases (dependency injection)
	tokens := authUsecase.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, tokens, avatars, cfg, log)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(taskRepository, log)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, taskUsecaseInstance, avatars, cfg, log)

	return handler.Run(ctx, ":"+cfg.Port)
}

func newAvatarStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == config.StorageS3 {
		opts := storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
			KeyPrefix: cfg.S3KeyPrefix,
		}
		client, err := storage.NewS3Client(ctx, opts)
		if err != nil {
			return nil, err
		}
		slog.Info("avatar storage", "backend", config.StorageS3, "bucket", cfg.S3Bucket)
		return storage.NewS3(client, opts), nil
	}

	local, err := storage.NewLocal(cfg.AvatarUploadPath, cfg.AvatarURLPrefix)
	if err != nil {
		return nil, err
	}
	slog.Info("avatar storage", "backend", config.StorageLocal, "dir", local.Dir())
	return local, nil
}
