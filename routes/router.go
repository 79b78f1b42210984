package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ecoengage/service/config"
	"github.com/ecoengage/service/controllers"
	"github.com/ecoengage/service/middleware"
	"github.com/ecoengage/service/store"
	"github.com/ecoengage/service/utils"
)

// Stores bundles the persistence interfaces the router wires into controllers.
type Stores struct {
	Users       store.UserStore
	Posts       store.PostStore
	Comments    store.CommentStore
	Events      store.EventStore
	Initiatives store.InitiativeStore
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(s Stores) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	commentSync := store.NewCommentSync(s.Posts, s.Comments)

	authController := controllers.NewAuthController(s.Users)
	postController := controllers.NewPostController(s.Posts, commentSync)
	commentController := controllers.NewCommentController(s.Comments, commentSync)
	eventController := controllers.NewEventController(s.Events)
	initiativeController := controllers.NewInitiativeController(s.Initiatives)

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/signup", authController.SignUp)
	authGroup.POST("/signin", authController.SignIn)
	authGroup.POST("/forgotPassword", authController.ChangePassword)
	authGroup.GET("/user", middleware.AuthRequired(), authController.GetUser)
	authGroup.PATCH("/user", middleware.AuthRequired(), authController.UpdateUser)

	postsGroup := r.Group("/posts")
	postsGroup.GET("", postController.List)
	postsGroup.GET("/:id", postController.GetByID)
	postsGroup.POST("", middleware.AuthRequired(), postController.Create)
	postsGroup.GET("/user", middleware.AuthRequired(), postController.ListMine)
	postsGroup.PATCH("/:id", middleware.AuthRequired(), postController.Update)
	postsGroup.DELETE("/:id", middleware.AuthRequired(), postController.Delete)
	postsGroup.PATCH("/:id/toggle-like", middleware.AuthRequired(), postController.ToggleLike)

	commentsGroup := r.Group("/comments")
	commentsGroup.GET("", commentController.List)
	commentsGroup.GET("/:id", commentController.GetByID)
	commentsGroup.GET("/post/:postId", commentController.ListByPost)
	commentsGroup.POST("", middleware.AuthRequired(), commentController.Create)
	commentsGroup.POST("/post/:postId", middleware.AuthRequired(), commentController.CreateForPost)
	commentsGroup.PATCH("/:id", middleware.AuthRequired(), commentController.Update)
	commentsGroup.DELETE("/:id", middleware.AuthRequired(), commentController.Delete)

	eventsGroup := r.Group("/events")
	eventsGroup.GET("", eventController.List)
	eventsGroup.POST("", eventController.Create)
	eventsGroup.POST("/user", eventController.ListByUser)
	eventsGroup.GET("/:id", eventController.GetByID)
	eventsGroup.PATCH("/:id", eventController.Update)
	eventsGroup.DELETE("/:id", eventController.Delete)
	eventsGroup.PATCH("/:id/toggle-registration", middleware.AuthRequired(), eventController.ToggleRegistration)

	r.GET("/initiatives", initiativeController.List)

	return r
}
