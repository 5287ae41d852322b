package workout

import (
	"github.com/google/uuid"
)

// DayStatus is one calendar cell from the viewer's perspective.
type DayStatus struct {
	SelfCompleted  bool `json:"self_completed"`
	OtherCompleted bool `json:"other_completed"`
}

// Stats summarizes a calendar for display.
type Stats struct {
	SelfTotal  int `json:"self_total"`
	OtherTotal int `json:"other_total"`
	BothTotal  int `json:"both_total"`
}

// DeriveCalendar folds a contract's workout records into per-day statuses as
// seen by selfID. Records from users who are neither self nor the counterpart
// are ignored, as are rows with Completed unset.
func DeriveCalendar(selfID uuid.UUID, otherID *uuid.UUID, records []*Workout) map[string]DayStatus {
	cal := make(map[string]DayStatus, len(records))
	for _, rec := range records {
		if rec == nil || !rec.Completed {
			continue
		}
		day := cal[rec.Date]
		switch {
		case rec.UserID == selfID:
			day.SelfCompleted = true
		case otherID != nil && rec.UserID == *otherID:
			day.OtherCompleted = true
		default:
			continue
		}
		cal[rec.Date] = day
	}
	return cal
}

// Summarize counts completed days per party over a derived calendar.
func Summarize(cal map[string]DayStatus) Stats {
	var st Stats
	for _, day := range cal {
		if day.SelfCompleted {
			st.SelfTotal++
		}
		if day.OtherCompleted {
			st.OtherTotal++
		}
		if day.SelfCompleted && day.OtherCompleted {
			st.BothTotal++
		}
	}
	return st
}
