package workout

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical day key. Workouts are keyed by calendar day,
// not timestamp.
const DateLayout = "2006-01-02"

// Workout records that a user completed (or explicitly un-completed) a
// training day on a contract. At most one row exists per
// (contract, user, date).
type Workout struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workout_triple,priority:1;column:contract_id" json:"contract_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workout_triple,priority:2;column:user_id" json:"user_id"`
	Date       string    `gorm:"size:10;not null;uniqueIndex:idx_workout_triple,priority:3" json:"date"`
	Completed  bool      `gorm:"not null" json:"completed"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Workout) TableName() string { return "workout" }

// ValidDate rejects anything that is not a real YYYY-MM-DD day.
func ValidDate(date string) error {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	if t.Format(DateLayout) != date {
		return fmt.Errorf("invalid date %q", date)
	}
	return nil
}
