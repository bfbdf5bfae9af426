package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanameee/bloglist-backend/internal/shared/middleware"
	"github.com/hanameee/bloglist-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", healthCheckHandler(c))

	// ========================================
	// POST ROUTES
	// ========================================
	posts := router.Group("/posts")
	{
		posts.GET("", c.PostHandler.List)
		posts.GET("/stats", c.PostHandler.Stats)
		// Update needs no token; liking a post is a public action.
		posts.PUT("/:id", c.PostHandler.Update)

		posts.POST("", middleware.Auth(c.Guard), c.PostHandler.Create)
		posts.DELETE("/:id", middleware.Auth(c.Guard), c.PostHandler.Delete)
	}

	// ========================================
	// ACCOUNT ROUTES
	// ========================================
	accounts := router.Group("/accounts")
	{
		accounts.POST("", c.AccountHandler.Register)
		accounts.GET("", c.AccountHandler.List)
	}

	router.POST("/login", c.AccountHandler.Login)

	return router
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			// Degraded cache still serves traffic; only the database is
			// load-bearing.
			redisStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
