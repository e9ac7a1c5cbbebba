package api

import (
	"github.com/gin-gonic/gin"

	"github.com/MEKSAAA/Anti-Fake/internal/api/auth"
	"github.com/MEKSAAA/Anti-Fake/internal/api/detection"
	"github.com/MEKSAAA/Anti-Fake/internal/api/editorial"
	"github.com/MEKSAAA/Anti-Fake/internal/api/generation"
	"github.com/MEKSAAA/Anti-Fake/internal/api/statistics"
)

// Handlers groups the constructed endpoint handlers for route setup.
type Handlers struct {
	Auth       *auth.Handler
	Detection  *detection.Handler
	Generation *generation.Handler
	Editorial  *editorial.Handler
	StaticDir  string
}

// SetupRouter configures all routes.
func SetupRouter(r *gin.Engine, h *Handlers) {
	r.Use(CORSMiddleware())

	// Saved and generated images are served straight from disk.
	r.Static("/static", h.StaticDir)

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Anti-Fake API is running",
		})
	})

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/send_code", h.Auth.SendCode)
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login/password", h.Auth.LoginPassword)
		authRoutes.POST("/login/code", h.Auth.LoginCode)
	}

	api := r.Group("/api")
	{
		detectionGroup := api.Group("/detection")
		{
			detectionGroup.POST("/text-detection", h.Detection.TextDetection)
			detectionGroup.POST("/image-detection", h.Detection.ImageDetection)
			detectionGroup.GET("/history/:user_id", h.Detection.History)
		}

		generationGroup := api.Group("/generation")
		{
			generationGroup.GET("/styles", h.Generation.Styles)
			generationGroup.POST("/generate", h.Generation.Generate)
			generationGroup.GET("/history/:user_id", h.Generation.History)
		}

		statisticsGroup := api.Group("/statistics")
		{
			statisticsGroup.GET("/global", statistics.Global)
			statisticsGroup.GET("/user/:user_id", statistics.User)
			statisticsGroup.GET("/trend", statistics.Trend)
			statisticsGroup.GET("/detection-types", statistics.DetectionTypes)
			statisticsGroup.GET("/recent-detections", statistics.RecentDetections)
		}

		titleGroup := api.Group("/title")
		{
			titleGroup.GET("/styles", h.Editorial.TitleStyles)
			titleGroup.POST("/generate", h.Editorial.GenerateTitle)
			titleGroup.GET("/history/:user_id", h.Editorial.TitleHistory)
		}

		summaryGroup := api.Group("/summary")
		{
			summaryGroup.GET("/types", h.Editorial.SummaryTypes)
			summaryGroup.POST("/summarize", h.Editorial.Summarize)
			summaryGroup.GET("/history/:user_id", h.Editorial.SummaryHistory)
		}

		optimizationGroup := api.Group("/optimization")
		{
			optimizationGroup.GET("/styles", h.Editorial.TextStyles)
			optimizationGroup.POST("/optimize", h.Editorial.Optimize)
			optimizationGroup.GET("/history/:user_id", h.Editorial.OptimizationHistory)
		}
	}
}

// CORSMiddleware provides CORS support.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
