package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/capeworks/feedhub/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/news", handler.GetNews)
	r.GET("/traffic", handler.GetTraffic)
	r.GET("/industry", handler.GetIndustry)
	r.GET("/news/image", handler.GetNewsImage)

	r.GET("/social/posts", handler.GetSocialPosts)
	r.GET("/social/photos", handler.GetSocialPhotos)

	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "FeedHub",
			"version":     cfg.GetVersion(),
			"description": "Regional news, traffic, and industry feed aggregator with Facebook page content",
			"endpoints": map[string]string{
				"news":     "/news",
				"traffic":  "/traffic",
				"industry": "/industry?limit=<1-20>",
				"image":    "/news/image?u=<article url>",
				"posts":    "/social/posts",
				"photos":   "/social/photos?limit=<1-50>",
				"health":   "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
