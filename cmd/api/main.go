package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	api "github.com/soportek/helpdesk-service/internal/api/http"
	"github.com/soportek/helpdesk-service/internal/api/http/handlers"
	"github.com/soportek/helpdesk-service/internal/auth"
	"github.com/soportek/helpdesk-service/internal/config"
	"github.com/soportek/helpdesk-service/internal/events"
	"github.com/soportek/helpdesk-service/internal/observability"
	"github.com/soportek/helpdesk-service/internal/persistence"
	"github.com/soportek/helpdesk-service/internal/repository"
	"github.com/soportek/helpdesk-service/internal/service"
	"github.com/soportek/helpdesk-service/internal/storage"
	"github.com/soportek/helpdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	fileStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("attachment storage init failed", zap.Error(err))
	}

	pool := postgres.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(*cfg, userRepo, departmentRepo)
	directoryService := service.NewDirectoryService(departmentRepo, categoryRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		CommentRepo:    commentRepo,
		DepartmentRepo: departmentRepo,
		CategoryRepo:   categoryRepo,
		UserRepo:       userRepo,
		Files:          fileStore,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	messageService := service.NewMessageService(messageRepo)
	attachmentService := service.NewAttachmentService(attachmentRepo, ticketRepo, fileStore, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, ticketRepo, redis, logger, cfg.Notification)

	worker.NewNotificationWorker(notificationService).Start()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})

	metrics := observability.NewMetrics()
	api.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	api.RegisterRoutes(app, api.RouteConfig{
		Health:         handlers.NewHealthHandler(postgres, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Departments:    handlers.NewDepartmentsHandler(directoryService),
		Categories:     handlers.NewCategoriesHandler(directoryService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Messages:       handlers.NewMessagesHandler(messageService),
		Attachments:    handlers.NewAttachmentsHandler(attachmentService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", cfg.App.Addr()), zap.String("version", cfg.App.Version))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
