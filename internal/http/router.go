package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/pactfit/pactfit-backend/internal/http/handlers"
	httpMW "github.com/pactfit/pactfit-backend/internal/http/middleware"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler     *httpH.AuthHandler
	AuthMiddleware  *httpMW.AuthMiddleware
	UserHandler     *httpH.UserHandler
	ContractHandler *httpH.ContractHandler
	WorkoutHandler  *httpH.WorkoutHandler
	RealtimeHandler *httpH.RealtimeHandler
	HealthHandler   *httpH.HealthHandler

	MediaRoot string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("pactfit"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Generated avatars and uploads
	if cfg.MediaRoot != "" {
		r.Static("/media", cfg.MediaRoot)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
			protected.POST("/sse/subscribe", cfg.RealtimeHandler.SSESubscribe)
			protected.POST("/sse/unsubscribe", cfg.RealtimeHandler.SSEUnsubscribe)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PUT("/me/name", cfg.UserHandler.UpdateDisplayName)
			protected.POST("/me/avatar", cfg.UserHandler.UploadAvatar)
		}

		// Contracts
		if cfg.ContractHandler != nil {
			protected.POST("/contracts", cfg.ContractHandler.Create)
			protected.GET("/contracts", cfg.ContractHandler.List)
			protected.GET("/contracts/:id", cfg.ContractHandler.Get)
			protected.POST("/contracts/:id/accept", cfg.ContractHandler.Accept)
			protected.POST("/contracts/:id/decline", cfg.ContractHandler.Decline)
			protected.POST("/contracts/:id/delete-request", cfg.ContractHandler.RequestDelete)
			protected.POST("/contracts/:id/delete-confirm", cfg.ContractHandler.ConfirmDelete)
			protected.POST("/contracts/:id/delete-cancel", cfg.ContractHandler.CancelDelete)
		}

		// Workouts
		if cfg.WorkoutHandler != nil {
			protected.POST("/contracts/:id/workouts/toggle", cfg.WorkoutHandler.Toggle)
			protected.GET("/contracts/:id/calendar", cfg.WorkoutHandler.Calendar)
			protected.GET("/contracts/:id/scheduled", cfg.WorkoutHandler.ScheduledDay)
		}
	}

	return r
}
