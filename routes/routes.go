package routes

import (
	"strings"
	"time"

	"ecocropshare/handlers"
	"ecocropshare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(h *handlers.Handler, jwtSecret string, allowedOrigins []string, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Login is public but throttled per IP.
	loginLimiter := middleware.NewIPRateLimiter(rate.Every(time.Minute/10), 10)
	router.POST("/api/login", loginLimiter.Middleware(), h.Login)

	protected := router.Group("/api")
	protected.Use(middleware.JWTAuth(jwtSecret))

	protected.GET("/me", h.Me)
	protected.GET("/dashboard", h.Dashboard)

	protected.GET("/articles", h.ListArticles)
	protected.POST("/articles", h.CreateArticle)
	protected.GET("/articles/:id", h.GetArticle)
	protected.PUT("/articles/:id", h.UpdateArticle)
	protected.DELETE("/articles/:id", h.DeleteArticle)

	protected.GET("/posts", h.ListPosts)
	protected.POST("/posts", h.CreatePost)
	protected.GET("/posts/:id", h.GetPost)
	protected.PUT("/posts/:id", h.UpdatePost)
	protected.DELETE("/posts/:id", h.DeletePost)

	protected.GET("/requests", h.ListRequests)
	protected.POST("/requests", h.CreateRequest)
	protected.GET("/requests/:id", h.GetRequest)
	protected.PUT("/requests/:id", h.UpdateRequest)
	protected.DELETE("/requests/:id", h.DeleteRequest)

	protected.GET("/history", h.ListHistory)
	protected.POST("/history", h.CreateHistory)
	protected.DELETE("/history/:id", h.DeleteHistory)

	// Account management is superadmin territory, every verb.
	users := protected.Group("/users")
	users.Use(middleware.RequireSuperadmin())
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(404, gin.H{"message": "Endpoint not found", "path": c.Request.URL.Path})
			return
		}
		c.Next()
	})

	return router
}
