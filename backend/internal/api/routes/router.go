package routes

import (
	"net/http"

	"passforge/backend/internal/api/handlers"
	"passforge/backend/internal/api/middleware"
	"passforge/backend/internal/auth"
	"passforge/backend/internal/config"
	"passforge/backend/internal/database"
	"passforge/backend/internal/dictionary"
	"passforge/backend/internal/metrics"
	"passforge/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the router wires into handlers.
// DB, Dictionary, Metrics, RateLimiter, Tokens and AccessLogger may be nil.
// A nil Tokens leaves the API open.
type Dependencies struct {
	Config       *config.Config
	Service      *service.PasswordService
	DB           *database.Database
	Dictionary   *dictionary.Store
	Metrics      *metrics.Metrics
	RateLimiter  *middleware.RateLimiterStore
	Tokens       *auth.TokenService
	Logger       *zap.SugaredLogger
	AccessLogger *zap.SugaredLogger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	var recorder middleware.HTTPRecorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}

	// Global middleware (order matters!)
	router.Use(middleware.RequestID())                                      // Request IDs first so every log line carries one
	router.Use(middleware.Recovery(deps.Logger))                            // Panic recovery
	router.Use(middleware.Logger(deps.Logger, deps.AccessLogger, recorder)) // Request logging
	router.Use(middleware.SecurityHeaders())                                // Security headers
	router.Use(middleware.CORS(deps.Config.Server.CORSOrigins))             // CORS handling

	var pinger handlers.Pinger
	if deps.DB != nil {
		pinger = deps.DB
	}
	var words handlers.WordCounter
	if deps.Dictionary != nil {
		words = deps.Dictionary
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(pinger, words, deps.Logger)
	passwordHandler := handlers.NewPasswordHandler(deps.Service, deps.Logger)

	// Health check routes (no rate limiting)
	router.GET("/health", healthHandler.Health)
	health := router.Group("/health")
	{
		health.GET("/ready", healthHandler.Ready)
		health.GET("/live", healthHandler.Live) // Kubernetes liveness probe
	}

	if deps.Config.Metrics.Enabled && deps.Metrics != nil {
		router.GET(deps.Config.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(middleware.RateLimit(deps.RateLimiter))
	}
	if deps.Tokens != nil {
		v1.Use(middleware.AuthRequired(deps.Tokens, deps.Logger))
	}
	v1.Use(middleware.RequestValidator(deps.Logger))
	{
		v1.GET("/presets", passwordHandler.Presets)

		pw := v1.Group("/password")
		{
			pw.POST("/generate", middleware.RequireScope(auth.ScopeGenerate), passwordHandler.Generate)
			pw.POST("/analyze", middleware.RequireScope(auth.ScopeAnalyze), passwordHandler.Analyze)
			pw.POST("/check", middleware.RequireScope(auth.ScopeAnalyze), passwordHandler.Check)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Route not found",
		})
	})

	return router
}
