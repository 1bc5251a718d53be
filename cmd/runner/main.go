package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"collabhub/config"
	"collabhub/internal/mqhandler"
	"collabhub/internal/repository"
	"collabhub/internal/service/sweeper"
	"collabhub/pkg/db"
	"collabhub/pkg/logger"
	"collabhub/pkg/mq"
	"collabhub/pkg/outbox"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting collabhub runner...",
		zap.String("db_host", cfg.DB.Host),
		zap.String("mq_url", cfg.MQ.URL),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	// MQ publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Outbox dispatcher drains project.deleted (and future) events
	outboxRepo := outbox.NewRepository(dbConn)
	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, log)
	go dispatcher.Start(ctx)

	// Due-date sweeper - runs every 1 minute
	taskRepo := repository.NewTaskRepository(dbConn, log)
	dueSweeper := sweeper.NewSweeper(taskRepo, publisher, log)
	go dueSweeper.Run(ctx, 1*time.Minute)

	// task.due consumer
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "runner.task_due", "task.due", log)
	if err != nil {
		log.Fatal("Failed to init task.due consumer", zap.Error(err))
	}
	defer consumer.Close()

	taskDueHandler := mqhandler.NewTaskDueHandler(log)
	consumer.SetHandler(taskDueHandler.Handle)
	go func() {
		if err := consumer.StartConsuming(); err != nil {
			log.Error("task.due consumer stopped", zap.Error(err))
		}
	}()

	log.Info("Runner started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down runner...")
	cancel()
}
