package routes

import (
	"context"
	"log/slog"

	authapi "media-access/internal/api/auth"
	mediaapi "media-access/internal/api/media"
	userapi "media-access/internal/api/users"
	"media-access/internal/app/http/middleware"
	"media-access/internal/domain/access"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB        *gorm.DB
	JWTSecret string
	Policy    access.Policy
	Logger    *slog.Logger
	Google    authapi.GoogleConfig
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	userStore := userapi.NewGormStore(deps.DB)

	authHandler := authapi.NewHandler(userStore, deps.JWTSecret)
	userHandler := userapi.NewHandler(userStore)
	mediaHandler := mediaapi.NewHandler(mediaapi.NewGormStore(deps.DB), deps.Policy, deps.Logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)

	if deps.Google.Enabled() {
		google := authapi.NewGoogleHandler(context.Background(), deps.Google, userStore, authHandler)
		public.GET("/auth/google", google.Start)
		public.GET("/auth/google/callback", google.Callback)
	}

	// Authenticated
	auth := r.Group("/")
	auth.Use(
		middleware.AuthMiddleware(deps.JWTSecret),
		middleware.LoadPrincipal(userapi.PrincipalResolver(userStore)),
	)
	auth.GET("/me", userHandler.GetCurrentUser)

	// query args are bound as parameters, not stored; only writes are sanitized
	auth.GET("/media", mediaHandler.List)
	auth.POST("/media/query", mediaHandler.Query)
	auth.DELETE("/media/:id", mediaHandler.Delete)

	writes := auth.Group("/")
	writes.Use(middleware.SanitizeAndCleanInputMiddleware())
	writes.POST("/media", middleware.RequireCapability(access.CapUploadFiles), mediaHandler.Create)
	writes.PUT("/media/:id", mediaHandler.Update)
	writes.POST("/editor/posts/:id", mediaHandler.EditorSave)
}
