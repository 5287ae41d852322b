package contract

import (
	"testing"
	"time"
)

func TestScheduleValidate(t *testing.T) {
	cases := []struct {
		name    string
		s       Schedule
		wantErr bool
	}{
		{"specific with days", Schedule{Type: ScheduleSpecific, Days: map[string]bool{"monday": true}}, false},
		{"specific no days selected", Schedule{Type: ScheduleSpecific, Days: map[string]bool{"monday": false}}, true},
		{"specific empty", Schedule{Type: ScheduleSpecific}, true},
		{"specific bad weekday", Schedule{Type: ScheduleSpecific, Days: map[string]bool{"moonday": true}}, true},
		{"flexible in range", Schedule{Type: ScheduleFlexible, DaysPerWeek: 3}, false},
		{"flexible zero", Schedule{Type: ScheduleFlexible}, true},
		{"flexible too many", Schedule{Type: ScheduleFlexible, DaysPerWeek: 8}, true},
		{"unknown type", Schedule{Type: "monthly"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestIsScheduledDay(t *testing.T) {
	// 2024-01-01 is a Monday.
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	specific := Schedule{Type: ScheduleSpecific, Days: map[string]bool{"monday": true, "tuesday": false}}
	if !specific.IsScheduledDay(monday) {
		t.Fatalf("monday should be scheduled")
	}
	if specific.IsScheduledDay(tuesday) {
		t.Fatalf("tuesday should not be scheduled")
	}

	flexible := Schedule{Type: ScheduleFlexible, DaysPerWeek: 2}
	for i := 0; i < 7; i++ {
		if !flexible.IsScheduledDay(monday.AddDate(0, 0, i)) {
			t.Fatalf("flexible schedules treat every day as schedulable")
		}
	}
}

func TestWeeklyTarget(t *testing.T) {
	specific := Schedule{Type: ScheduleSpecific, Days: map[string]bool{"monday": true, "friday": true, "sunday": false}}
	if got := specific.WeeklyTarget(); got != 2 {
		t.Fatalf("WeeklyTarget = %d, want 2", got)
	}
	flexible := Schedule{Type: ScheduleFlexible, DaysPerWeek: 4}
	if got := flexible.WeeklyTarget(); got != 4 {
		t.Fatalf("WeeklyTarget = %d, want 4", got)
	}
}

func TestScheduleJSONRoundTrip(t *testing.T) {
	in := Schedule{Type: ScheduleSpecific, Days: map[string]bool{"wednesday": true}}
	raw, err := in.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out, err := ParseSchedule(raw)
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if out.Type != ScheduleSpecific || !out.Days["wednesday"] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if _, err := ParseSchedule(nil); err == nil {
		t.Fatalf("expected error for empty schedule")
	}
}
