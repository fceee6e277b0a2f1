package usecase

import (
	"testing"
	"time"

	"kine-booking-api/internal/domain/entity"
)

// mondayDate is a known Monday used across the slot tests.
var mondayDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func window(start, end string) entity.Availability {
	return entity.Availability{Day: entity.WeekdayMonday, StartTime: start, EndTime: end}
}

func booked(start, end string) entity.Appointment {
	return entity.Appointment{
		Date:      mondayDate,
		StartTime: start,
		EndTime:   end,
		Status:    entity.AppointmentStatusConfirmed,
	}
}

func TestBuildSlotsSplitsWindow(t *testing.T) {
	slots := buildSlots([]entity.Availability{window("09:00", "10:30")}, nil, mondayDate)

	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if slots[0].StartTime != "09:00" || slots[0].EndTime != "09:45" {
		t.Errorf("first slot = %s-%s, want 09:00-09:45", slots[0].StartTime, slots[0].EndTime)
	}
	if slots[1].StartTime != "09:45" || slots[1].EndTime != "10:30" {
		t.Errorf("second slot = %s-%s, want 09:45-10:30", slots[1].StartTime, slots[1].EndTime)
	}
}

func TestBuildSlotsDropsBookedInterval(t *testing.T) {
	slots := buildSlots(
		[]entity.Availability{window("09:00", "10:30")},
		[]entity.Appointment{booked("09:45", "10:30")},
		mondayDate,
	)

	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	if slots[0].StartTime != "09:00" {
		t.Errorf("remaining slot starts at %s, want 09:00", slots[0].StartTime)
	}
}

func TestBuildSlotsPendingBlocksToo(t *testing.T) {
	// An unconfirmed request already holds its interval.
	pending := booked("09:00", "09:45")
	pending.Status = entity.AppointmentStatusPending

	slots := buildSlots(
		[]entity.Availability{window("09:00", "10:30")},
		[]entity.Appointment{pending},
		mondayDate,
	)

	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	if slots[0].StartTime != "09:45" {
		t.Errorf("remaining slot starts at %s, want 09:45", slots[0].StartTime)
	}
}

func TestBuildSlotsWindowTooShort(t *testing.T) {
	slots := buildSlots([]entity.Availability{window("09:00", "09:30")}, nil, mondayDate)
	if len(slots) != 0 {
		t.Errorf("got %d slots from a 30-minute window, want 0", len(slots))
	}
}

func TestBuildSlotsPartialTrailingRemainder(t *testing.T) {
	// 09:00-10:00 fits exactly one slot; the 15-minute remainder is dropped.
	slots := buildSlots([]entity.Availability{window("09:00", "10:00")}, nil, mondayDate)
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	if slots[0].EndTime != "09:45" {
		t.Errorf("slot ends at %s, want 09:45", slots[0].EndTime)
	}
}

func TestBuildSlotsMultipleWindows(t *testing.T) {
	slots := buildSlots([]entity.Availability{
		window("09:00", "09:45"),
		window("15:00", "16:30"),
	}, nil, mondayDate)

	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	if slots[1].StartTime != "15:00" || slots[2].StartTime != "15:45" {
		t.Errorf("afternoon slots start at %s and %s, want 15:00 and 15:45",
			slots[1].StartTime, slots[2].StartTime)
	}
}

func TestBuildSlotsScannedWindowTimes(t *testing.T) {
	// Windows read back from the database carry seconds.
	slots := buildSlots([]entity.Availability{window("09:00:00", "10:30:00")}, nil, mondayDate)
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
}

func TestBuildSlotsAdjacentAppointmentDoesNotBlock(t *testing.T) {
	slots := buildSlots(
		[]entity.Availability{window("09:00", "09:45")},
		[]entity.Appointment{booked("08:15", "09:00")},
		mondayDate,
	)
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
}

func TestBuildSlotsDuration(t *testing.T) {
	slots := buildSlots([]entity.Availability{window("08:00", "18:00")}, nil, mondayDate)
	for _, s := range slots {
		start, _ := time.Parse("15:04", s.StartTime)
		end, _ := time.Parse("15:04", s.EndTime)
		if end.Sub(start) != SlotMinutes*time.Minute {
			t.Errorf("slot %s-%s is not %d minutes", s.StartTime, s.EndTime, SlotMinutes)
		}
	}
}

func TestBuildSlotsDatetimeAnchoredToDate(t *testing.T) {
	slots := buildSlots([]entity.Availability{window("09:00", "09:45")}, nil, mondayDate)
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	want := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	if !slots[0].Datetime.Equal(want) {
		t.Errorf("slot datetime = %v, want %v", slots[0].Datetime, want)
	}
}

func TestValidateSlotDuration(t *testing.T) {
	if err := validateSlotDuration("09:00", "09:45"); err != nil {
		t.Errorf("45-minute slot rejected: %v", err)
	}
	if err := validateSlotDuration("09:00", "10:00"); err != ErrInvalidSlotDuration {
		t.Errorf("60-minute slot: got %v, want ErrInvalidSlotDuration", err)
	}
	if err := validateSlotDuration("09:00", "09:30"); err != ErrInvalidSlotDuration {
		t.Errorf("30-minute slot: got %v, want ErrInvalidSlotDuration", err)
	}
}
