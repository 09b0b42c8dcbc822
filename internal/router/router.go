package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ricogpa/ricogpa-backend/internal/config"
	"github.com/ricogpa/ricogpa-backend/internal/handler"
	"github.com/ricogpa/ricogpa-backend/internal/middleware"
	"github.com/ricogpa/ricogpa-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth   *handler.AuthHandler
	Course *handler.CourseHandler
	GPA    *handler.GPAHandler
	Admin  *handler.AdminHandler
	Stream *handler.StreamHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	tokens middleware.TokenValidator,
	handlers *Handlers,
	cfg *config.Config,
	rdb *redis.Client,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// Empty ALLOWED_ORIGINS allows every origin.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	requireJWT := middleware.RequireJWT(tokens)
	authLimiter := middleware.NewRateLimiter(rdb, "auth", cfg.AuthRateLimitPerMin, time.Minute, log)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authLimiter.Middleware(), handlers.Auth.Register)
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)

		auth.POST("/logout", requireJWT, handlers.Auth.Logout)
		auth.GET("/me", requireJWT, middleware.NoStore(), handlers.Auth.Me)
	}

	// ─── 2. GPA Group (JWT) ────────────────────────────────────────────
	gpaAPI := router.Group("/api/v1/gpa")
	gpaAPI.Use(requireJWT, middleware.NoStore())
	{
		gpaAPI.GET("/me", handlers.GPA.Me)
		gpaAPI.POST("/forecast", handlers.GPA.Forecast)

		courses := gpaAPI.Group("/courses")
		{
			courses.GET("", handlers.Course.List)
			courses.POST("", handlers.Course.Create)
			courses.PUT("/:id", handlers.Course.Update)
			courses.DELETE("/:id", handlers.Course.Delete)
		}
	}

	// ─── 3. Admin Group (JWT + Admin) ──────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(requireJWT, middleware.RequireAdmin(), middleware.NoStore(), middleware.DefaultBrotli())
	{
		adminAPI.GET("/users", handlers.Admin.ListUsers)
		adminAPI.DELETE("/users/:id", handlers.Admin.DeleteUser)
	}

	// ─── 4. WebSocket Group (Query Token) ──────────────────────────────
	wsAPI := router.Group("/ws/v1")
	wsAPI.Use(middleware.RequireWSJWT(tokens))
	{
		wsAPI.GET("/gpa/stream", handlers.Stream.SummaryStream)
	}

	return router
}
