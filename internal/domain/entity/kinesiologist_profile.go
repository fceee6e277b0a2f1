package entity

import "github.com/google/uuid"

// KinesiologistProfile represents kinesiologist-specific profile data.
// Name is the public display name shown to patients and may differ from
// the user's full name.
type KinesiologistProfile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Specialty   string    `gorm:"type:varchar(100);index" json:"specialty,omitempty"`
	Box         string    `gorm:"type:varchar(50)" json:"box,omitempty"`
	ImageURL    string    `gorm:"type:text" json:"image_url,omitempty"`

	// Relationships
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availabilities []Availability `gorm:"foreignKey:KinesiologistID" json:"availabilities,omitempty"`
	Appointments   []Appointment  `gorm:"foreignKey:KinesiologistID" json:"appointments,omitempty"`
}

func (KinesiologistProfile) TableName() string {
	return "kinesiologist_profiles"
}
