package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/graph/loader"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(c.Reporter),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(c.Metrics),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.ErrorReport(c.Reporter),
	)

	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

	// mỗi request GraphQL có bộ dataloader riêng
	router.POST("/graphql", loader.Middleware(c.LoaderSources, c.Metrics), c.GraphHandler.Serve)

	// đường dẫn cũ mà frontend đang gọi
	router.GET("/presignedUrl", c.UploadHandler.PresignedURL)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c.Config.App.Version, probesFor(c), c.DB.Stats))

		setupUploadRoutes(v1, c)
		setupBookRoutes(v1, c)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	return router
}

// ========================================
// UPLOAD ROUTES
// ========================================
func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	uploads := v1.Group("/uploads")
	{
		uploads.GET("/presigned-url", c.UploadHandler.PresignedURLEnvelope)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("/export", c.ExportHandler.Export)
	}
}

// ========================================
// HEALTH CHECK
// ========================================

// probe là một dependency cần ping; critical=false thì lỗi chỉ làm status "degraded"
type probe struct {
	name     string
	critical bool
	check    func(ctx context.Context) error
}

func probesFor(c *container.Container) []probe {
	return []probe{
		{name: "postgres", critical: true, check: c.DB.Ping},
		{name: "mongo", critical: true, check: c.Mongo.Ping},
		{name: "redis", critical: false, check: c.Redis.HealthCheck},
		{name: "minio", critical: false, check: c.Storage.HealthCheck},
	}
}

func healthCheckHandler[S any](version string, probes []probe, poolStats func() (S, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		statusCode := http.StatusOK
		services := gin.H{}

		for _, p := range probes {
			if err := p.check(ctx); err != nil {
				services[p.name] = "error: " + err.Error()
				status = "degraded"
				if p.critical {
					statusCode = http.StatusServiceUnavailable
				}
				continue
			}
			services[p.name] = "ok"
		}

		health := gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
			"services":  services,
		}
		if poolStats != nil {
			if stats, err := poolStats(); err == nil {
				health["db_pool"] = stats
			}
		}

		c.JSON(statusCode, health)
	}
}
