package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/httpserver"
	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/handler"
)

func NewRouter(taskHandler *handler.TaskHandler, reportHandler *handler.ReportHandler, logger *zap.Logger, db *pgxpool.Pool, redisClient *redis.Client) *gin.Engine {
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
		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(500, gin.H{"status": "redis_not_ready", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Everything below requires the identity headers set by the gateway.
	authed := r.Group("/", identity.Middleware())

	tasks := authed.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/similar", taskHandler.Similar)
		tasks.GET("/all", taskHandler.All)
		tasks.GET("/:id", taskHandler.Get)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/file", taskHandler.UploadFile)
		tasks.GET("/:id/file/:file_id", taskHandler.DownloadFile)
	}

	reportsGroup := authed.Group("/reports")
	{
		reportsGroup.GET("/count", reportHandler.Count)
		reportsGroup.GET("/average", reportHandler.Average)
		reportsGroup.GET("/overdue", reportHandler.Overdue)
		reportsGroup.GET("/max", reportHandler.DateMax)
		reportsGroup.GET("/day", reportHandler.DayOfWeek)
	}

	return r
}
