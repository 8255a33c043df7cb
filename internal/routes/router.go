package routes

import (
	"net/http"
	"path/filepath"

	"mindhaven/internal/config"
	"mindhaven/internal/database"
	"mindhaven/internal/logger"
	"mindhaven/internal/middleware"
	"mindhaven/internal/session"
	"mindhaven/internal/user/repository"
	"mindhaven/internal/user/service"
	"mindhaven/internal/web/handler"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *database.Database) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	sessionStore := session.NewPostgresStore(db.DB, cfg.Session.TTL)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
	router.Use(middleware.SessionMiddleware(&cfg.Session, sessionStore))

	router.LoadHTMLGlob(filepath.Join(cfg.Server.TemplateDir, "*.html"))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := repository.NewRepository(db)
	authService := service.NewService(userRepository, sessionStore)
	pageHandler := handler.NewPageHandler(authService, &cfg.Session)

	pageHandler.RegisterRoutes(router)

	logger.Info("All routes initialized")
	return router
}
