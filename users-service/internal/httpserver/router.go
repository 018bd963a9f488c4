package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/httpserver"
	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
	"github.com/Yahya-git/To-Do-List-MS/pkg/mq"
	"github.com/Yahya-git/To-Do-List-MS/users-service/internal/handler"
)

func NewRouter(userHandler *handler.UserHandler, authHandler *handler.AuthHandler, logger *zap.Logger, db *pgxpool.Pool, consumer *mq.Consumer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpserver.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		if consumer != nil && !consumer.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public: registration, login and the mail-driven token flows.
	r.POST("/users", userHandler.Create)
	r.POST("/login", authHandler.Login)
	r.GET("/verify-email", userHandler.VerifyEmail)
	r.GET("/users/:id/reset-password-request", userHandler.ResetPasswordRequest)
	r.GET("/users/:id/reset-password", userHandler.ResetPassword)

	// Protected: requires the identity headers set by the gateway.
	authed := r.Group("/", identity.Middleware())
	authed.GET("/users", userHandler.GetCurrent)
	authed.PUT("/users/:id", userHandler.Update)

	return r
}
