package app

import (
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
	"github.com/pactfit/pactfit-backend/internal/realtime"
	"github.com/pactfit/pactfit-backend/internal/realtime/bus"
	"github.com/pactfit/pactfit-backend/internal/services"
)

type Services struct {
	Avatar services.AvatarService

	Auth     services.AuthService
	User     services.UserService
	Contract services.ContractService
	Workout  services.WorkoutService

	// Bus is nil when running without redis; events then stay in-process.
	Bus bus.Bus
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, sseHub *realtime.SSEHub) (Services, error) {
	log.Info("Wiring services...")

	var emitter services.SSEEmitter
	var eventBus bus.Bus
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		b, err := bus.NewRedisBus(log)
		if err != nil {
			return Services{}, err
		}
		eventBus = b
		emitter = &services.RedisEmitter{Bus: b}
		log.Info("Realtime events via redis bus")
	} else {
		emitter = &services.HubEmitter{Hub: sseHub}
		log.Info("Realtime events via in-process hub")
	}

	contractNotifier := services.NewContractNotifier(log, emitter, reposet.User)
	userNotifier := services.NewUserNotifier(emitter)

	var avatarService services.AvatarService
	if strings.TrimSpace(os.Getenv("AVATAR_FONT")) != "" {
		mediaStore, err := services.NewLocalMediaStore(log)
		if err != nil {
			return Services{}, err
		}
		avatarService, err = services.NewAvatarService(db, log, reposet.User, mediaStore)
		if err != nil {
			return Services{}, err
		}
	} else {
		log.Warn("AVATAR_FONT not set, avatar generation disabled")
	}

	authService := services.NewAuthService(
		db, log,
		reposet.User, reposet.UserToken,
		avatarService,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	userService := services.NewUserService(db, log, reposet.User, reposet.Contract, avatarService, userNotifier)
	contractService := services.NewContractService(db, log, reposet.User, reposet.Contract, reposet.Workout, contractNotifier)
	workoutService := services.NewWorkoutService(db, log, reposet.User, reposet.Contract, reposet.Workout, contractNotifier)

	return Services{
		Avatar:   avatarService,
		Auth:     authService,
		User:     userService,
		Contract: contractService,
		Workout:  workoutService,
		Bus:      eventBus,
	}, nil
}
