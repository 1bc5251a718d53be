package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"collabhub/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
	teamHandler *handler.TeamHandler,
	chatHandler *handler.ChatHandler,
	pageHandler *handler.PageHandler,
	userHandler *handler.UserHandler,
	jwtSecret string,
	db *pgxpool.Pool,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/profile", authHandler.Profile)

		auth.GET("/projects", projectHandler.List)
		auth.POST("/projects", projectHandler.Create)
		auth.GET("/projects/:id", projectHandler.Get)
		auth.PUT("/projects/:id", projectHandler.Update)
		auth.DELETE("/projects/:id", projectHandler.Delete)

		auth.GET("/projects/:id/chat", chatHandler.List)
		auth.POST("/projects/:id/chat", chatHandler.Post)

		auth.GET("/tasks", taskHandler.List)
		auth.POST("/tasks", taskHandler.Create)
		auth.GET("/tasks/:id", taskHandler.Get)
		auth.PUT("/tasks/:id", taskHandler.Update)
		auth.DELETE("/tasks/:id", taskHandler.Delete)

		auth.GET("/teams", teamHandler.GetByOwner)
		auth.POST("/teams", teamHandler.Create)
		auth.GET("/teams/:id", teamHandler.Get)
		auth.PUT("/teams/:id", teamHandler.Update)
		auth.POST("/teams/:id/members", teamHandler.AddMember)

		auth.POST("/pages", pageHandler.Create)
		auth.GET("/pages/:id", pageHandler.Get)
		auth.PUT("/pages/:id", pageHandler.Update)
		auth.DELETE("/pages/:id", pageHandler.Delete)

		auth.GET("/users/avatar", userHandler.Avatar)
		auth.GET("/users/exists", userHandler.Exists)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
