package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type ScheduleType string

const (
	ScheduleSpecific ScheduleType = "specific"
	ScheduleFlexible ScheduleType = "flexible"
)

// Weekday names as stored in specific schedules, keyed by time.Weekday.
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// Schedule is the training plan agreed at contract creation. Immutable after
// creation. Specific schedules flag individual weekdays; flexible schedules
// carry an advisory days-per-week count that is never enforced.
type Schedule struct {
	Type        ScheduleType    `json:"type"`
	Days        map[string]bool `json:"days,omitempty"`
	DaysPerWeek int             `json:"daysPerWeek,omitempty"`
}

func (s Schedule) Validate() error {
	switch s.Type {
	case ScheduleSpecific:
		selected := 0
		for _, on := range s.Days {
			if on {
				selected++
			}
		}
		if selected == 0 {
			return fmt.Errorf("select at least one training day")
		}
		for day := range s.Days {
			if !validWeekday(day) {
				return fmt.Errorf("unknown weekday %q", day)
			}
		}
		return nil
	case ScheduleFlexible:
		if s.DaysPerWeek < 1 || s.DaysPerWeek > 7 {
			return fmt.Errorf("days per week must be between 1 and 7")
		}
		return nil
	default:
		return fmt.Errorf("unknown schedule type %q", s.Type)
	}
}

// IsScheduledDay reports whether the given date is a training day. Flexible
// schedules treat every day as schedulable.
func (s Schedule) IsScheduledDay(t time.Time) bool {
	if s.Type == ScheduleFlexible {
		return true
	}
	return s.Days[weekdayNames[t.Weekday()]]
}

// WeeklyTarget is the displayed scheduled-days-per-week count.
func (s Schedule) WeeklyTarget() int {
	if s.Type == ScheduleFlexible {
		return s.DaysPerWeek
	}
	target := 0
	for _, on := range s.Days {
		if on {
			target++
		}
	}
	return target
}

func (s Schedule) JSON() (datatypes.JSON, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schedule: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func ParseSchedule(raw datatypes.JSON) (Schedule, error) {
	var s Schedule
	if len(raw) == 0 {
		return s, fmt.Errorf("empty schedule")
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("unmarshal schedule: %w", err)
	}
	return s, nil
}

func validWeekday(name string) bool {
	name = strings.ToLower(name)
	for _, wd := range weekdayNames {
		if wd == name {
			return true
		}
	}
	return false
}
