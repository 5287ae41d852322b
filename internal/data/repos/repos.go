package repos

import (
	"github.com/pactfit/pactfit-backend/internal/data/repos/auth"
	"github.com/pactfit/pactfit-backend/internal/data/repos/contract"
	"github.com/pactfit/pactfit-backend/internal/data/repos/user"
	"github.com/pactfit/pactfit-backend/internal/data/repos/workout"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo
type ContractRepo = contract.ContractRepo
type WorkoutRepo = workout.WorkoutRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	return contract.NewContractRepo(db, baseLog)
}

func NewWorkoutRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutRepo {
	return workout.NewWorkoutRepo(db, baseLog)
}
