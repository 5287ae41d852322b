package app

import (
	"gorm.io/gorm"

	"github.com/pactfit/pactfit-backend/internal/data/repos"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Contract  repos.ContractRepo
	Workout   repos.WorkoutRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Contract:  repos.NewContractRepo(db, log),
		Workout:   repos.NewWorkoutRepo(db, log),
	}
}
