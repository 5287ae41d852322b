package workout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/pactfit/pactfit-backend/internal/domain"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
)

type WorkoutRepo interface {
	Create(ctx context.Context, tx *gorm.DB, workouts []*types.Workout) ([]*types.Workout, error)
	GetByContractIDs(ctx context.Context, tx *gorm.DB, contractIDs []uuid.UUID) ([]*types.Workout, error)
	GetByTriple(ctx context.Context, tx *gorm.DB, contractID, userID uuid.UUID, date string) (*types.Workout, error)
	DeleteByTriple(ctx context.Context, tx *gorm.DB, contractID, userID uuid.UUID, date string) error
	FullDeleteByContractIDs(ctx context.Context, tx *gorm.DB, contractIDs []uuid.UUID) error
}

type workoutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkoutRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutRepo {
	repoLog := baseLog.With("repo", "WorkoutRepo")
	return &workoutRepo{db: db, log: repoLog}
}

func (wr *workoutRepo) Create(ctx context.Context, tx *gorm.DB, workouts []*types.Workout) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if len(workouts) == 0 {
		return []*types.Workout{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&workouts).Error; err != nil {
		return nil, err
	}

	return workouts, nil
}

func (wr *workoutRepo) GetByContractIDs(ctx context.Context, tx *gorm.DB, contractIDs []uuid.UUID) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.Workout

	if len(contractIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("contract_id IN ?", contractIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByTriple returns nil without error when no record exists for the key.
func (wr *workoutRepo) GetByTriple(ctx context.Context, tx *gorm.DB, contractID, userID uuid.UUID, date string) (*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.Workout

	if err := transaction.WithContext(ctx).
		Where("contract_id = ? AND user_id = ? AND date = ?", contractID, userID, date).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (wr *workoutRepo) DeleteByTriple(ctx context.Context, tx *gorm.DB, contractID, userID uuid.UUID, date string) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("contract_id = ? AND user_id = ? AND date = ?", contractID, userID, date).
		Delete(&types.Workout{}).Error
}

func (wr *workoutRepo) FullDeleteByContractIDs(ctx context.Context, tx *gorm.DB, contractIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if len(contractIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("contract_id IN (?)", contractIDs).
		Delete(&types.Workout{}).Error
}
