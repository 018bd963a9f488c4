package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/cache"
	"github.com/Yahya-git/To-Do-List-MS/pkg/db"
	"github.com/Yahya-git/To-Do-List-MS/pkg/logger"
	"github.com/Yahya-git/To-Do-List-MS/pkg/mq"
	pkgredis "github.com/Yahya-git/To-Do-List-MS/pkg/redis"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/config"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/handler"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/httpserver"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/repository"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/service/reminder"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/service/report"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting tasks-service...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("users_service_url", cfg.UsersServiceURL),
	)

	log.Info("Initializing database connection...")
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()
	log.Info("Database connection established successfully")

	redisClient := pkgredis.NewClient(cfg.Redis)
	defer redisClient.Close()

	log.Info("Initializing MQ publisher...", zap.String("mq_url", cfg.MQ.URL))
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	taskRepo := repository.NewTaskRepository(dbConn, log)
	reportRepo := repository.NewReportRepository(dbConn, log)
	attachmentRepo := repository.NewAttachmentRepository(dbConn, log)

	usersClient := report.NewUsersClient(cfg.UsersServiceURL, time.Duration(cfg.HTTPClientTimeoutSeconds)*time.Second)
	reportCache := cache.New(redisClient, log)
	reportService := report.NewService(
		reportRepo,
		reportCache,
		usersClient,
		time.Duration(cfg.CacheExpirySeconds)*time.Second,
		log,
	)

	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()

	reminderScheduler := reminder.NewScheduler(taskRepo, publisher, 5*time.Minute, log)
	go reminderScheduler.Start(schedulerCtx)
	log.Info("Reminder scheduler started")

	taskHandler := handler.NewTaskHandler(taskRepo, attachmentRepo, usersClient, cfg.MaxTasks, log)
	reportHandler := handler.NewReportHandler(reportService)
	router := httpserver.NewRouter(taskHandler, reportHandler, log, dbConn, redisClient)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("tasks-service is fully initialized and running",
		zap.String("addr", addr),
		zap.Int("max_tasks", cfg.MaxTasks),
		zap.Int("cache_expiry_seconds", cfg.CacheExpirySeconds),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down tasks-service gracefully...")
	schedulerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("tasks-service shutdown complete")
}
