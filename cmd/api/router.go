package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"starwars-api/internal/shared/middleware"
	"starwars-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	// Request bodies carrying fields the DTOs don't declare are rejected.
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))

	c.CharacterHandler.RegisterRoutes(router)

	return router
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		dbStatus := "ok"
		statusCode := http.StatusOK
		if err := appCtx.HealthCheck(ctx); err != nil {
			status = "degraded"
			dbStatus = "error: " + err.Error()
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"services": gin.H{
				"database": dbStatus,
				"driver":   appCtx.Config.Database.Driver,
			},
		})
	}
}
