package entity

import (
	"time"

	"github.com/google/uuid"
)

// Weekday numbering is Monday-based: 0 = Monday .. 6 = Sunday.
const (
	WeekdayMonday = iota
	WeekdayTuesday
	WeekdayWednesday
	WeekdayThursday
	WeekdayFriday
	WeekdaySaturday
	WeekdaySunday
)

// WeekdayKeys maps the short day keys accepted in bulk availability
// payloads to Monday-based weekday numbers.
var WeekdayKeys = map[string]int{
	"mon": WeekdayMonday,
	"tue": WeekdayTuesday,
	"wed": WeekdayWednesday,
	"thu": WeekdayThursday,
	"fri": WeekdayFriday,
	"sat": WeekdaySaturday,
	"sun": WeekdaySunday,
}

// WeekdayOf converts a calendar date to the Monday-based weekday number.
func WeekdayOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekdayKeyFor returns the short key for a Monday-based weekday number,
// or "" if the number is out of range.
func WeekdayKeyFor(day int) string {
	for key, d := range WeekdayKeys {
		if d == day {
			return key
		}
	}
	return ""
}

// Availability is a recurring weekly window during which a kinesiologist
// is bookable. Times are local time-of-day in HH:MM, no date component.
type Availability struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	KinesiologistID uuid.UUID `gorm:"type:uuid;not null;index" json:"kinesiologist_id"`
	Day             int       `gorm:"type:smallint;not null;index" json:"day"`
	StartTime       string    `gorm:"type:time;not null" json:"start_time"`
	EndTime         string    `gorm:"type:time;not null" json:"end_time"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Kinesiologist KinesiologistProfile `gorm:"foreignKey:KinesiologistID" json:"kinesiologist,omitempty"`
}

func (Availability) TableName() string {
	return "availabilities"
}
