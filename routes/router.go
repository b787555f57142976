package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/codesharehq/codeshare/config"
	"github.com/codesharehq/codeshare/controllers"
	"github.com/codesharehq/codeshare/middleware"
	"github.com/codesharehq/codeshare/models"
	"github.com/codesharehq/codeshare/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
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
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record PV after each request
	r.Use(middleware.PageViewRecorder(db))

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	postController := controllers.NewPostController(db)
	githubController := controllers.NewGitHubController(cfg)
	statsController := controllers.NewStatsController(db)

	// Feed, detail, and repository proxies answer with the raw shapes the
	// frontend consumes directly.
	r.GET("/posts", postController.ListPosts)
	r.GET("/posts/:id", postController.GetPost)
	r.GET("/repo-tree", githubController.RepoTree)
	r.GET("/repo-folder", githubController.RepoFolder)

	r.GET("/technologies", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"technologies": models.Technologies})
	})
	r.GET("/stats", statsController.GetStats)

	limited := r.Group("")
	limited.Use(middleware.RateLimitMiddleware())
	limited.POST("/posts", postController.CreatePost)
	limited.POST("/upload", postController.UploadScreenshot)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	return r
}
