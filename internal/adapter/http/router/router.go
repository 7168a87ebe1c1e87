package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/newsdesk/news-classifier-web/internal/adapter/http/handler"
	"github.com/newsdesk/news-classifier-web/internal/adapter/http/middleware"
	"github.com/newsdesk/news-classifier-web/internal/infrastructure/metrics"
	"github.com/newsdesk/news-classifier-web/internal/usecase"
)

// Deps holds everything the router wires into handlers
type Deps struct {
	SessionUC      usecase.SessionUsecase
	ClassifierURL  string
	MaxUploadBytes int64
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Logger         *zap.Logger
}

// Setup creates and configures the Gin router
func Setup(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(deps.Metrics))

	// Page
	pageHandler := handler.NewPageHandler(deps.MaxUploadBytes, logger)
	router.GET("/", pageHandler.Index)

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.SessionUC, deps.ClassifierURL)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	sessionHandler := handler.NewSessionHandler(deps.SessionUC, deps.MaxUploadBytes)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.DELETE("/:id", sessionHandler.DeleteSession)
			sessions.PUT("/:id/text", sessionHandler.SetText)
			sessions.PUT("/:id/file", sessionHandler.SelectFile)
			sessions.DELETE("/:id/file", sessionHandler.ClearFile)
			sessions.POST("/:id/predict", sessionHandler.Predict)
			sessions.POST("/:id/predict-file", sessionHandler.PredictFile)
			sessions.POST("/:id/reset", sessionHandler.Reset)
			sessions.GET("/:id/events", sessionHandler.Events)
		}
	}

	return router
}
