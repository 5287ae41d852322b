package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pactfit/pactfit-backend/internal/data/repos"
	types "github.com/pactfit/pactfit-backend/internal/domain"
	"github.com/pactfit/pactfit-backend/internal/domain/contract"
	"github.com/pactfit/pactfit-backend/internal/domain/workout"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
	"github.com/pactfit/pactfit-backend/internal/requestdata"
)

// CalendarView is the per-contract attendance picture for the caller.
type CalendarView struct {
	ContractID   uuid.UUID                    `json:"contract_id"`
	Days         map[string]workout.DayStatus `json:"days"`
	Stats        workout.Stats                `json:"stats"`
	WeeklyTarget int                          `json:"weekly_target"`
}

type WorkoutService interface {
	ToggleWorkout(ctx context.Context, contractID uuid.UUID, date string) (bool, error)
	GetCalendar(ctx context.Context, contractID uuid.UUID) (*CalendarView, error)
	IsScheduledDay(ctx context.Context, contractID uuid.UUID, date string) (bool, error)
}

type workoutService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	contractRepo repos.ContractRepo
	workoutRepo  repos.WorkoutRepo
	notifier     ContractNotifier
}

func NewWorkoutService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	contractRepo repos.ContractRepo,
	workoutRepo repos.WorkoutRepo,
	notifier ContractNotifier,
) WorkoutService {
	serviceLog := log.With("service", "WorkoutService")
	return &workoutService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		contractRepo: contractRepo,
		workoutRepo:  workoutRepo,
		notifier:     notifier,
	}
}

func (ws *workoutService) requireUser(ctx context.Context, tx *gorm.DB) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: request data not set in context", ErrUnauthorized)
	}
	found, err := ws.userRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
	}
	return found[0], nil
}

func (ws *workoutService) requireAcceptedContract(ctx context.Context, tx *gorm.DB, user *types.User, contractID uuid.UUID) (*types.Contract, error) {
	found, err := ws.contractRepo.GetByIDs(ctx, tx, []uuid.UUID{contractID})
	if err != nil {
		return nil, fmt.Errorf("error fetching contract: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("%w: contract does not exist", ErrNotFound)
	}
	c := found[0]
	if !c.VisibleTo(user.ID, user.Email) {
		return nil, fmt.Errorf("%w: contract does not exist", ErrNotFound)
	}
	if c.Status != types.ContractAccepted {
		return nil, fmt.Errorf("%w: contract is not accepted", ErrConflict)
	}
	if !c.IsParty(user.ID) {
		return nil, fmt.Errorf("%w: not a party to this contract", ErrForbidden)
	}
	return c, nil
}

// ToggleWorkout flips the caller's completion for a date. Returns the new
// completed state. The read and write share one transaction so concurrent
// toggles on the same key settle on the unique index instead of duplicating.
func (ws *workoutService) ToggleWorkout(ctx context.Context, contractID uuid.UUID, date string) (bool, error) {
	if err := workout.ValidDate(date); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var completed bool
	var c *types.Contract
	var userID uuid.UUID
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ws.requireUser(ctx, tx)
		if err != nil {
			return err
		}
		userID = user.ID

		c, err = ws.requireAcceptedContract(ctx, tx, user, contractID)
		if err != nil {
			return err
		}

		existing, err := ws.workoutRepo.GetByTriple(ctx, tx, contractID, user.ID, date)
		if err != nil {
			return fmt.Errorf("error fetching workout: %w", err)
		}
		if existing != nil {
			if err := ws.workoutRepo.DeleteByTriple(ctx, tx, contractID, user.ID, date); err != nil {
				return fmt.Errorf("failed to remove workout: %w", err)
			}
			completed = false
			return nil
		}

		w := &types.Workout{
			ID:         uuid.New(),
			ContractID: contractID,
			UserID:     user.ID,
			Date:       date,
			Completed:  true,
		}
		if _, err := ws.workoutRepo.Create(ctx, tx, []*types.Workout{w}); err != nil {
			return fmt.Errorf("failed to record workout: %w", err)
		}
		completed = true
		return nil
	}); err != nil {
		return false, err
	}

	if ws.notifier != nil {
		ws.notifier.WorkoutToggled(c, userID, date, completed)
	}
	return completed, nil
}

func (ws *workoutService) GetCalendar(ctx context.Context, contractID uuid.UUID) (*CalendarView, error) {
	user, err := ws.requireUser(ctx, nil)
	if err != nil {
		return nil, err
	}
	c, err := ws.requireAcceptedContract(ctx, nil, user, contractID)
	if err != nil {
		return nil, err
	}

	records, err := ws.workoutRepo.GetByContractIDs(ctx, nil, []uuid.UUID{contractID})
	if err != nil {
		return nil, fmt.Errorf("failed to load workouts: %w", err)
	}

	days := workout.DeriveCalendar(user.ID, c.OtherParty(user.ID), records)

	sched, err := contract.ParseSchedule(c.Schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule: %w", err)
	}

	return &CalendarView{
		ContractID:   contractID,
		Days:         days,
		Stats:        workout.Summarize(days),
		WeeklyTarget: sched.WeeklyTarget(),
	}, nil
}

func (ws *workoutService) IsScheduledDay(ctx context.Context, contractID uuid.UUID, date string) (bool, error) {
	if err := workout.ValidDate(date); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	user, err := ws.requireUser(ctx, nil)
	if err != nil {
		return false, err
	}
	c, err := ws.requireAcceptedContract(ctx, nil, user, contractID)
	if err != nil {
		return false, err
	}
	sched, err := contract.ParseSchedule(c.Schedule)
	if err != nil {
		return false, fmt.Errorf("failed to parse schedule: %w", err)
	}
	day, err := time.Parse(workout.DateLayout, date)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return sched.IsScheduledDay(day), nil
}
