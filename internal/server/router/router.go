package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/config"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/server/handlers"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/server/middleware"
)

// New wires the Gin engine with required routes and middlewares.
func New(
	cfg config.CORSConfig,
	verifier middleware.TokenVerifier,
	authHandler *handlers.AuthHandler,
	newspaperHandler *handlers.NewspaperHandler,
	recordHandler *handlers.RecordHandler,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	api.POST("/auth/signin", authHandler.SignIn)
	api.GET("/auth/verify", authHandler.Verify)

	anyRole := middleware.Authorize(verifier, models.RoleUser, models.RoleAdmin)
	adminOnly := middleware.Authorize(verifier, models.RoleAdmin)

	newspapers := api.Group("/newspapers", anyRole)
	newspapers.GET("/:month/:year", newspaperHandler.List)
	newspapers.POST("", newspaperHandler.Create)
	newspapers.PUT("/:id", newspaperHandler.Update)
	newspapers.DELETE("/:id", newspaperHandler.Delete)

	records := api.Group("/records", anyRole)
	records.GET("/report/:month/:year", recordHandler.MonthlyReport)
	records.GET("/:date", recordHandler.ListByDate)
	records.POST("", recordHandler.Upsert)

	// Page routes consumed by the admin frontend.
	r.GET("/daily", anyRole, func(c *gin.Context) {
		identity, _ := middleware.CurrentUser(c)
		role := ""
		if identity != nil {
			role = identity.Role
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Hello %s, this is your Daily page.", role)})
	})
	r.GET("/", adminOnly, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Admin Home"})
	})
	r.GET("/setup", adminOnly, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Admin Setup"})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
