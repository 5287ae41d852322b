package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	types "github.com/pactfit/pactfit-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    "pw",
		DisplayName: "Test User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedContract(tb testing.TB, ctx context.Context, tx *gorm.DB, createdBy uuid.UUID, participantEmail string, status types.ContractStatus) *types.Contract {
	tb.Helper()
	sched, err := types.Schedule{Type: types.ScheduleFlexible, DaysPerWeek: 3}.JSON()
	if err != nil {
		tb.Fatalf("seed schedule: %v", err)
	}
	c := &types.Contract{
		ID:               uuid.New(),
		Title:            "morning runs",
		CreatedBy:        createdBy,
		CreatedByName:    "Test User",
		ParticipantEmail: participantEmail,
		Status:           status,
		Schedule:         sched,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contract: %v", err)
	}
	return c
}

func SeedWorkout(tb testing.TB, ctx context.Context, tx *gorm.DB, contractID, userID uuid.UUID, date string) *types.Workout {
	tb.Helper()
	w := &types.Workout{
		ID:         uuid.New(),
		ContractID: contractID,
		UserID:     userID,
		Date:       date,
		Completed:  true,
	}
	if err := tx.WithContext(ctx).Create(w).Error; err != nil {
		tb.Fatalf("seed workout: %v", err)
	}
	return w
}
