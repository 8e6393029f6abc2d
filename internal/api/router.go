package api

import (
	"net/http"
	"time"

	"storybook-server/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// Handlers группирует все HTTP-обработчики сервиса.
type Handlers struct {
	Stories  *StoryHandler
	PDFs     *PDFHandler
	Children *ChildHandler
	Themes   *ThemeHandler
}

// NewRouter собирает gin-роутер: логирование, CORS, метрики, health-check и
// все маршруты API под /api.
func NewRouter(cfg *config.Config, handlers Handlers, logger *zap.Logger, taskLogger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(ZapLoggingMiddleware(logger))
	router.Use(TaskLoggerMiddleware(taskLogger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		logger.Info("AllowOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	apiGroup := router.Group("/api")

	// Каталог тем публичный, авторизация не нужна.
	handlers.Themes.RegisterRoutes(apiGroup)

	protected := apiGroup.Group("")
	protected.Use(AuthMiddleware(cfg.JWTSecret, logger))
	handlers.Stories.RegisterRoutes(protected)
	handlers.PDFs.RegisterRoutes(protected)
	handlers.Children.RegisterRoutes(protected)

	// Prometheus middleware регистрируется после маршрутов.
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	return router
}
