package app

import (
	"mdblog/internal/auth"
	"mdblog/internal/cache"
	"mdblog/internal/config"
	"mdblog/internal/handlers"
	"mdblog/internal/markdown"
	"mdblog/internal/media"
	"mdblog/internal/repo"
	"mdblog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	// Uploaded avatars.
	mediaStore := media.NewStore(cfg.Media.Dir)
	r.Static("/media", mediaStore.Root())

	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)

	articleRepo := repo.NewPGArticleRepo(db)
	articleCache := cache.NewArticleCache(rdb, cfg.Redis.DefaultTTL.Duration())
	articleSvc := service.NewArticleService(articleRepo, articleCache, markdown.NewRenderer())
	articleHandler := handlers.NewArticleHandler(articleSvc)

	profileRepo := repo.NewPGProfileRepo(db)
	profileSvc := service.NewProfileService(profileRepo, userRepo)
	profileHandler := handlers.NewProfileHandler(profileSvc, mediaStore)

	requireSession := auth.RequireSession(sessionStore)

	// Public pages. Static segments come before the id to keep the
	// route tree free of wildcard conflicts.
	r.GET("/articles", articleHandler.List)
	r.GET("/articles/detail/:id", articleHandler.Detail)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.Any("/logout", authHandler.Logout)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)

	// Authenticated pages; anonymous requests are redirected to /login.
	protected := r.Group("", requireSession)
	protected.GET("/articles/create", articleHandler.CreateForm)
	protected.POST("/articles/create", articleHandler.Create)
	protected.GET("/articles/update/:id", articleHandler.UpdateForm)
	protected.POST("/articles/update/:id", articleHandler.Update)
	// Delete endpoints answer non-POST verbs themselves with a plain
	// method-not-allowed message.
	protected.Any("/articles/delete/:id", articleHandler.Delete)
	protected.Any("/users/:id/delete", authHandler.DeleteAccount)
	protected.GET("/users/:id/profile", profileHandler.EditForm)
	protected.POST("/users/:id/profile", profileHandler.Edit)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":  "mdblog",
			"version":  cfg.App.Version,
			"env":      cfg.App.Env,
			"articles": "/articles",
			"health":   "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}
