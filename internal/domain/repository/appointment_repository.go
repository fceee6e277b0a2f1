package repository

import (
	"time"

	"kine-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindByKinesiologistAndDate returns the appointments for one calendar
	// date ordered by start_time, regardless of status.
	FindByKinesiologistAndDate(db *gorm.DB, kinesiologistID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	// FindByKinesiologist returns all appointments ordered by date, start_time.
	FindByKinesiologist(db *gorm.DB, kinesiologistID uuid.UUID) ([]entity.Appointment, error)
	// HasOverlap reports whether any appointment for the kinesiologist on
	// date overlaps the half-open interval [start, end).
	HasOverlap(db *gorm.DB, kinesiologistID uuid.UUID, date time.Time, start, end string) (bool, error)
	// FindUpcoming returns appointments on a later date, or today with
	// start_time >= nowTime, ordered ascending.
	FindUpcoming(db *gorm.DB, kinesiologistID uuid.UUID, today time.Time, nowTime string) ([]entity.Appointment, error)
	// FindHistoryByPatient returns the patient's appointments in reverse
	// chronological order.
	FindHistoryByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error
	// CompleteWithComment sets status to completed and stores the comment
	// with its timestamp in a single update.
	CompleteWithComment(db *gorm.DB, id uuid.UUID, comment string, at time.Time) error
}
