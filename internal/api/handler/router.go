package handler

import (
	"labourdesk/backend/internal/config"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const serviceName = "labourdesk-backend"

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(h *Handler, cfg config.HTTP) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false

	router.Use(gin.Recovery())
	router.Use(requestLogger(h.Logger))

	router.GET("/healthz", h.Healthz)

	router.Use(otelgin.Middleware(serviceName))

	if len(cfg.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = cfg.CORSOrigins
		}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
		corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
		router.Use(cors.New(corsConfig))
	}
	h.CORSOrigins = cfg.CORSOrigins

	secureConfig := secure.DefaultConfig()
	secureConfig.SSLRedirect = false
	secureConfig.IsDevelopment = cfg.Development
	router.Use(secure.New(secureConfig))

	api := router.Group("/api")
	{
		complaints := api.Group("/complaints")
		complaints.POST("", h.SubmitComplaint)
		complaints.GET("/track/:reference", h.TrackComplaint)
		complaints.GET("", h.RequireStaff(), h.ListComplaints)
		complaints.PATCH("/:reference", h.RequireStaff(), h.UpdateComplaint)

		api.POST("/contact", h.SubmitContact)

		api.POST("/newsletter", h.Subscribe)
		api.DELETE("/newsletter", h.Unsubscribe)

		api.POST("/chat", h.ChatReply)
		api.GET("/chat/ws", h.ServeChatWebSocket)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}

// requestLogger logs one line per request, at a level that follows the
// response status.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("http.method", c.Request.Method),
			zap.String("http.path", c.Request.URL.Path),
			zap.Int("http.status_code", status),
			zap.Int64("http.latency_ms", time.Since(start).Milliseconds()),
			zap.String("http.client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("http.error", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("HTTP request failed", fields...)
		case status >= 400:
			logger.Warn("HTTP request warning", fields...)
		default:
			logger.Info("HTTP request", fields...)
		}
	}
}
