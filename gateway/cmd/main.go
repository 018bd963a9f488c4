package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/gateway/internal/config"
	"github.com/Yahya-git/To-Do-List-MS/gateway/internal/handler"
	"github.com/Yahya-git/To-Do-List-MS/gateway/internal/httpserver"
	"github.com/Yahya-git/To-Do-List-MS/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting gateway...",
		zap.String("users_service_url", cfg.UsersServiceURL),
		zap.String("tasks_service_url", cfg.TasksServiceURL),
	)

	proxy := handler.NewProxy(
		cfg.UsersServiceURL,
		cfg.TasksServiceURL,
		time.Duration(cfg.HTTPClientTimeoutSeconds)*time.Second,
		log,
	)
	router := httpserver.NewRouter(proxy, cfg.JWT.Secret, log)

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

	log.Info("gateway is fully initialized and running", zap.String("addr", addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gateway gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("gateway shutdown complete")
}
