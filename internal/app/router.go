package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/pactfit/pactfit-backend/internal/http"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:             log,
		AuthHandler:     handlerset.Auth,
		AuthMiddleware:  mw.Auth,
		UserHandler:     handlerset.User,
		ContractHandler: handlerset.Contract,
		WorkoutHandler:  handlerset.Workout,
		RealtimeHandler: handlerset.Realtime,
		HealthHandler:   handlerset.Health,
		MediaRoot:       cfg.MediaRoot,
	})
}
