package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	contracts "github.com/Yahya-git/To-Do-List-MS/contracts/mq"
	"github.com/Yahya-git/To-Do-List-MS/pkg/db"
	"github.com/Yahya-git/To-Do-List-MS/pkg/logger"
	"github.com/Yahya-git/To-Do-List-MS/pkg/mq"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/config"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/handler"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/httpserver"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/repository"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/service/auth"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/service/mailer"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting users-service...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("smtp_host", cfg.SMTP.Host),
	)

	log.Info("Initializing database connection...")
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()
	log.Info("Database connection established successfully")

	userRepo := repository.NewUserRepository(dbConn, log)
	verificationRepo := repository.NewVerificationRepository(dbConn, log)

	mailService := mailer.NewMailer(mailer.NewSMTPSender(cfg.SMTP), cfg.GatewayURL, log)
	authService := auth.NewService(
		userRepo,
		verificationRepo,
		mailService,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpireTimeMinutes)*time.Minute,
		time.Duration(cfg.TokenExpiryMinutes)*time.Minute,
		cfg.TemporaryPasswordLength,
		log,
	)

	// MQ consumer for due-task reminders published by tasks-service.
	log.Info("Initializing MQ consumer...",
		zap.String("queue", "task.reminder_due.q"),
		zap.String("routing_key", contracts.RoutingKeyTaskReminderDue),
	)
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "task.reminder_due.q", contracts.RoutingKeyTaskReminderDue, log)
	if err != nil {
		log.Fatal("Failed to init consumer", zap.Error(err))
	}
	defer consumer.Close()

	reminderHandler := mailer.NewReminderHandler(userRepo, mailService, log)
	consumer.SetHandler(reminderHandler.Handle)

	go func() {
		log.Info("Starting task.reminder_due consumer...")
		if err := consumer.StartConsuming(); err != nil {
			log.Fatal("Reminder consumer failed", zap.Error(err))
		}
	}()

	userHandler := handler.NewUserHandler(authService, userRepo, log)
	authHandler := handler.NewAuthHandler(authService)
	router := httpserver.NewRouter(userHandler, authHandler, log, dbConn, consumer)

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

	log.Info("users-service is fully initialized and running", zap.String("addr", addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down users-service gracefully...")
	consumer.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("users-service shutdown complete")
}
