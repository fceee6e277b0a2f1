package entity

import (
	"testing"
	"time"
)

func TestHHMM(t *testing.T) {
	cases := map[string]string{
		"09:00":    "09:00",
		"09:00:00": "09:00",
		"9:00":     "9:00",
		"":         "",
	}
	for in, want := range cases {
		if got := HHMM(in); got != want {
			t.Errorf("HHMM(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAppointmentOverlaps(t *testing.T) {
	a := &Appointment{StartTime: "09:45", EndTime: "10:30"}

	if !a.Overlaps("09:00", "10:00") {
		t.Error("partial overlap at the front should overlap")
	}
	if !a.Overlaps("10:00", "10:45") {
		t.Error("partial overlap at the back should overlap")
	}
	if !a.Overlaps("09:00", "11:00") {
		t.Error("containing interval should overlap")
	}
	if !a.Overlaps("10:00", "10:15") {
		t.Error("contained interval should overlap")
	}

	// Half-open intervals: touching boundaries do not overlap.
	if a.Overlaps("09:00", "09:45") {
		t.Error("interval ending at start should not overlap")
	}
	if a.Overlaps("10:30", "11:15") {
		t.Error("interval beginning at end should not overlap")
	}
}

func TestAppointmentOverlapsScannedTimes(t *testing.T) {
	// Time columns come back from the database with seconds attached.
	a := &Appointment{StartTime: "09:45:00", EndTime: "10:30:00"}

	if a.Overlaps("09:00", "09:45") {
		t.Error("HH:MM:SS end boundary should still not overlap")
	}
	if !a.Overlaps("10:00", "10:45") {
		t.Error("HH:MM:SS times should still detect overlap")
	}
}

func TestWeekdayOf(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // 2024-01-01 is a Monday
	if got := WeekdayOf(monday); got != WeekdayMonday {
		t.Errorf("WeekdayOf(monday) = %d, want %d", got, WeekdayMonday)
	}

	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	if got := WeekdayOf(sunday); got != WeekdaySunday {
		t.Errorf("WeekdayOf(sunday) = %d, want %d", got, WeekdaySunday)
	}
}

func TestWeekdayKeyFor(t *testing.T) {
	for key, day := range WeekdayKeys {
		if got := WeekdayKeyFor(day); got != key {
			t.Errorf("WeekdayKeyFor(%d) = %q, want %q", day, got, key)
		}
	}
	if got := WeekdayKeyFor(7); got != "" {
		t.Errorf("WeekdayKeyFor(7) = %q, want empty", got)
	}
}

func TestAppointmentStatus(t *testing.T) {
	if !AppointmentStatusPending.IsValid() {
		t.Error("pending should be valid")
	}
	if AppointmentStatus("archived").IsValid() {
		t.Error("unknown status should be invalid")
	}
	if got := AppointmentStatusCompleted.Label(); got != "Realizada" {
		t.Errorf("completed label = %q, want Realizada", got)
	}
	if got := len(AllStatuses()); got != 5 {
		t.Errorf("AllStatuses() has %d entries, want 5", got)
	}
}
