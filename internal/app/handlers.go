package app

import (
	"github.com/pactfit/pactfit-backend/internal/http/handlers"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
	"github.com/pactfit/pactfit-backend/internal/realtime"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Contract *handlers.ContractHandler
	Workout  *handlers.WorkoutHandler
	Realtime *handlers.RealtimeHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, sseHub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(serviceset.Auth),
		User:     handlers.NewUserHandler(serviceset.User),
		Contract: handlers.NewContractHandler(serviceset.Contract),
		Workout:  handlers.NewWorkoutHandler(serviceset.Workout),
		Realtime: handlers.NewRealtimeHandler(log, sseHub),
		Health:   handlers.NewHealthHandler(),
	}
}
