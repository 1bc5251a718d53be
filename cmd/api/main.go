package main

import (
	"time"

	"go.uber.org/zap"

	"collabhub/config"
	"collabhub/internal/cache"
	"collabhub/internal/handler"
	"collabhub/internal/httpserver"
	"collabhub/internal/mqhandler"
	"collabhub/internal/repository"
	"collabhub/internal/service/auth"
	"collabhub/internal/service/chat"
	"collabhub/internal/service/page"
	"collabhub/internal/service/project"
	"collabhub/internal/service/task"
	"collabhub/internal/service/team"
	"collabhub/pkg/db"
	"collabhub/pkg/logger"
	"collabhub/pkg/mq"
	"collabhub/pkg/outbox"
	redisclient "collabhub/pkg/redis"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting collabhub API...",
		zap.String("db_host", cfg.DB.Host),
		zap.String("port", cfg.Server.Port),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Redis
	rdb := redisclient.NewClient(cfg.Redis)
	defer rdb.Close()

	teamCache := cache.NewTeamCache(rdb, 10*time.Minute, log)
	avatarCache := cache.NewAvatarCache(rdb, time.Hour, log)

	// Repositories
	outboxRepo := outbox.NewRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn, log)
	teamRepo := repository.NewTeamRepository(dbConn, log)
	projectRepo := repository.NewProjectRepository(dbConn, outboxRepo, log)
	taskRepo := repository.NewTaskRepository(dbConn, log)
	chatRepo := repository.NewChatRepository(dbConn, log)
	pageRepo := repository.NewPageRepository(dbConn, log)

	// Services
	authService := auth.NewService(userRepo, cfg.JWT.Secret, log)
	teamService := team.NewService(teamRepo, userRepo, teamCache, log)
	projectService := project.NewService(projectRepo, log)
	taskService := task.NewService(taskRepo, projectRepo, log)
	chatService := chat.NewService(chatRepo, projectRepo, log)
	pageService := page.NewService(pageRepo, projectRepo, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	projectHandler := handler.NewProjectHandler(projectService, log)
	taskHandler := handler.NewTaskHandler(taskService, log)
	teamHandler := handler.NewTeamHandler(teamService, log)
	chatHandler := handler.NewChatHandler(chatService, log)
	pageHandler := handler.NewPageHandler(pageService, log)
	userHandler := handler.NewUserHandler(userRepo, avatarCache, log)

	// project.deleted consumer keeps the team cache honest after cascades
	if cfg.MQ.URL != "" {
		consumer, err := mq.NewConsumer(cfg.MQ.URL, "api.project_deleted", "project.deleted", log)
		if err != nil {
			log.Fatal("Failed to init project.deleted consumer", zap.Error(err))
		}
		defer consumer.Close()

		projectDeletedHandler := mqhandler.NewProjectDeletedHandler(teamCache, log)
		consumer.SetHandler(projectDeletedHandler.Handle)
		go func() {
			if err := consumer.StartConsuming(); err != nil {
				log.Error("project.deleted consumer stopped", zap.Error(err))
			}
		}()
	} else {
		log.Warn("MQ_URL not configured, project.deleted consumer disabled")
	}

	// Router
	router := httpserver.NewRouter(
		authHandler,
		projectHandler,
		taskHandler,
		teamHandler,
		chatHandler,
		pageHandler,
		userHandler,
		cfg.JWT.Secret,
		dbConn,
	)

	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
