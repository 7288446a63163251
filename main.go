package main

import (
	"log/slog"
	"os"
	"time"

	"media-access/config"
	"media-access/database"
	authapi "media-access/internal/api/auth"
	routes "media-access/internal/app/http"
	"media-access/internal/domain/access"
	"media-access/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadEnv()

	logger := logging.Setup("media-access", cfg.LogFormat, nil)
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)
	database.InitDB(cfg.DBURL)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		DB:        database.DB,
		JWTSecret: cfg.JWTSecret,
		Policy:    access.MediaPolicy{},
		Logger:    logger,
		Google: authapi.GoogleConfig{
			ClientID:         cfg.GoogleClientID,
			ClientSecret:     cfg.GoogleClientSecret,
			RedirectURL:      cfg.GoogleRedirectURL,
			FrontendRedirect: cfg.GoogleFrontendRedirect,
		},
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
