package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"railchat/internal/service"
)

// BuildInfo is reported by /health and /version
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// RouterConfig gathers what the HTTP router serves
type RouterConfig struct {
	Assistant        *service.Assistant
	Auth             *service.AuthService
	Log              logrus.FieldLogger
	AllowedOrigins   string
	MaxMessageLength int
	Build            BuildInfo
}

// NewRouter wires every endpoint of the HTTP API
func NewRouter(cfg RouterConfig) *gin.Engine {
	chatHandler := NewChatHandler(cfg.Assistant, cfg.MaxMessageLength)
	authHandler := NewAuthHandler(cfg.Auth)
	ticketHandler := NewTicketHandler(cfg.Auth)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Log))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitOrigins(cfg.AllowedOrigins)
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "healthy",
			"service":         "railchat",
			"version":         cfg.Build.Version,
			"stations_loaded": cfg.Assistant.StationsLoaded(),
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    cfg.Build.Version,
			"build_time": cfg.Build.BuildTime,
			"git_commit": cfg.Build.GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/chat", chatHandler.Chat)
		apiV1.GET("/stations", chatHandler.Stations)

		apiV1.POST("/auth/register", authHandler.Register)
		apiV1.POST("/auth/login", authHandler.Login)

		private := apiV1.Group("", authHandler.RequireAuth())
		private.GET("/me", authHandler.Me)
		private.GET("/tickets", ticketHandler.List)
		private.POST("/tickets", ticketHandler.Reserve)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
			"hint":  "POST /api/v1/chat with {\"message\": \"...\"}",
		})
	})

	return router
}

func splitOrigins(s string) []string {
	origins := []string{}
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
