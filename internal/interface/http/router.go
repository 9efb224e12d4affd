package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/weatherfit/internal/infra/config"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		public := api.Group("/auth")
		public.POST("/register", handler.Register)
		public.POST("/login", handler.Login)
		public.POST("/refresh", handler.Refresh)
	}

	secured := api.Group("")
	secured.Use(authMiddleware(handler.authSvc))
	{
		secured.GET("/auth/me", handler.Me)

		secured.GET("/wardrobe", handler.ListItems)
		secured.POST("/wardrobe", handler.CreateItem)
		secured.GET("/wardrobe/:id", handler.GetItem)
		secured.PUT("/wardrobe/:id", handler.UpdateItem)
		secured.DELETE("/wardrobe/:id", handler.DeleteItem)

		secured.GET("/locations", handler.ListLocations)
		secured.POST("/locations", handler.CreateLocation)
		secured.GET("/locations/default", handler.DefaultLocation)
		secured.GET("/locations/:id", handler.GetLocation)
		secured.PUT("/locations/:id", handler.UpdateLocation)
		secured.DELETE("/locations/:id", handler.DeleteLocation)

		secured.POST("/weather/recommendation", handler.Recommendation)
		secured.POST("/weather/forecast", handler.Forecast)
		secured.POST("/outfits/suggest", handler.SuggestOutfit)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

// requestID reuses a caller supplied id or mints a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"request_id", c.GetString(requestIDKey),
		)
	}
}
