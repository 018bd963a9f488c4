package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/gateway/internal/handler"
	"github.com/Yahya-git/To-Do-List-MS/pkg/httpserver"
)

func NewRouter(proxy *handler.Proxy, jwtSecret string, logger *zap.Logger) *gin.Engine {
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

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public: registration, login and the mail-driven token flows.
	r.POST("/users", proxy.ForwardUsers)
	r.POST("/login", proxy.ForwardUsers)
	r.GET("/verify-email", proxy.ForwardUsers)
	r.GET("/users/:id/reset-password-request", proxy.ForwardUsers)
	r.GET("/users/:id/reset-password", proxy.ForwardUsers)

	// Protected: valid bearer token required.
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/users", proxy.ForwardUsers)
		auth.PUT("/users/:id", proxy.ForwardUsers)

		auth.POST("/tasks", proxy.ForwardTaskWrite)
		auth.GET("/tasks", proxy.ForwardTasks)
		auth.GET("/tasks/similar", proxy.ForwardTasks)
		auth.GET("/tasks/all", proxy.ForwardTasks)
		auth.GET("/tasks/:id", proxy.ForwardTasks)
		auth.PUT("/tasks/:id", proxy.ForwardTaskWrite)
		auth.DELETE("/tasks/:id", proxy.ForwardTasks)
		auth.POST("/tasks/:id/file", proxy.ForwardTasks)
		auth.GET("/tasks/:id/file/:file_id", proxy.ForwardTasks)

		auth.GET("/reports/count", proxy.ForwardTasks)
		auth.GET("/reports/average", proxy.ForwardTasks)
		auth.GET("/reports/overdue", proxy.ForwardTasks)
		auth.GET("/reports/max", proxy.ForwardTasks)
		auth.GET("/reports/day", proxy.ForwardTasks)
	}

	return r
}
