package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

var statusLabels = map[AppointmentStatus]string{
	AppointmentStatusPending:   "Pendiente",
	AppointmentStatusConfirmed: "Confirmada",
	AppointmentStatusCancelled: "Cancelada",
	AppointmentStatusRejected:  "Rechazada",
	AppointmentStatusCompleted: "Realizada",
}

// IsValid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable label for the status.
func (s AppointmentStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// AllStatuses lists every valid appointment status.
func AllStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled,
		AppointmentStatusRejected,
		AppointmentStatusCompleted,
	}
}

// Appointment represents a booked 45-minute session between a patient
// and a kinesiologist. Start/end are local time-of-day in HH:MM on Date.
type Appointment struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	KinesiologistID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"kinesiologist_id"`
	PatientID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	Date             time.Time         `gorm:"type:date;not null;index" json:"date"`
	StartTime        string            `gorm:"type:time;not null" json:"start_time"`
	EndTime          string            `gorm:"type:time;not null" json:"end_time"`
	Status           AppointmentStatus `gorm:"type:appointment_status;not null;default:'pending';index" json:"status"`
	KineComment      *string           `gorm:"type:text" json:"kine_comment,omitempty"`
	CommentUpdatedAt *time.Time        `json:"comment_updated_at,omitempty"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Kinesiologist KinesiologistProfile `gorm:"foreignKey:KinesiologistID" json:"kinesiologist,omitempty"`
	Patient       PatientProfile       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsOwnedBy reports whether the appointment belongs to the given kinesiologist.
func (a *Appointment) IsOwnedBy(kinesiologistID uuid.UUID) bool {
	return a.KinesiologistID == kinesiologistID
}

// HHMM truncates a time-of-day string to HH:MM. Time columns scan back
// from Postgres as HH:MM:SS; comparisons and output always use HH:MM.
func HHMM(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// Overlaps reports whether the half-open interval [start, end) overlaps
// the appointment's [StartTime, EndTime). Normalized HH:MM strings
// compare correctly as strings.
func (a *Appointment) Overlaps(start, end string) bool {
	return HHMM(a.StartTime) < HHMM(end) && HHMM(a.EndTime) > HHMM(start)
}
