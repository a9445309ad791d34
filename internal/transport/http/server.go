package http

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/edgomes/portfolio-backend/internal/config"
	"github.com/edgomes/portfolio-backend/internal/database"
	ghmirror "github.com/edgomes/portfolio-backend/internal/github"
	"github.com/edgomes/portfolio-backend/internal/handler"
	"github.com/edgomes/portfolio-backend/internal/repository"
	"github.com/edgomes/portfolio-backend/internal/service"
)

// newLogger writes human-readable output in development and JSON in
// production, keyed off APP_ENV.
func newLogger() zerolog.Logger {
	if os.Getenv("APP_ENV") == "production" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// Run wires the whole application and blocks serving HTTP.
func Run() error {
	log := newLogger()
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := database.Seed(ctx, db, cfg); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Media storage backend
	var storage service.Storage
	switch cfg.StorageBackend {
	case "s3":
		storage, err = service.NewObjectStorage(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to configure object storage: %w", err)
		}
	default:
		storage = service.NewLocalStorage(cfg.UploadDir)
	}

	// Services
	userService := service.NewUserService(userRepo, log)
	authService := service.NewAuthService(cfg)
	categoryService := service.NewCategoryService(categoryRepo, userRepo, log)
	projectService := service.NewProjectService(projectRepo, categoryRepo, userRepo, engagementRepo, log)
	engagementService := service.NewEngagementService(engagementRepo, projectRepo, userRepo, notificationRepo, log)
	mediaService := service.NewMediaService(storage, cfg.MaxUploadSize, log)

	// GitHub mirror
	ghClient := ghmirror.NewClient(ctx, cfg.GithubToken)
	mirror := ghmirror.NewMirror(ghClient, cfg.GithubUsername, cfg.GithubPinned, log)

	uploadDir := ""
	if cfg.StorageBackend != "s3" {
		uploadDir = cfg.UploadDir
	}

	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService, cfg),
		UserHandler:         handler.NewUserHandler(userService, projectService, mediaService, cfg.MaxUploadSize),
		ProjectHandler:      handler.NewProjectHandler(projectService, mediaService, cfg.MaxUploadSize),
		CategoryHandler:     handler.NewCategoryHandler(categoryService),
		EngagementHandler:   handler.NewEngagementHandler(engagementService),
		NotificationHandler: handler.NewNotificationHandler(engagementService),
		ShowcaseHandler:     handler.NewShowcaseHandler(mirror),
		JWTSecret:           cfg.JWTSecret,
		UploadDir:           uploadDir,
	})

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	return stdhttp.ListenAndServe(addr, router)
}
