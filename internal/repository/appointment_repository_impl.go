package repository

import (
	"errors"
	"time"

	"kine-booking-api/internal/domain/entity"
	domainRepo "kine-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Kinesiologist.User").Preload("Patient.User").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByKinesiologistAndDate(db *gorm.DB, kinesiologistID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("kinesiologist_id = ? AND date = ?", kinesiologistID, date.Format("2006-01-02")).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByKinesiologist(db *gorm.DB, kinesiologistID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Where("kinesiologist_id = ?", kinesiologistID).
		Order("date ASC, start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// HasOverlap uses the half-open interval test: an existing appointment
// [s, e) overlaps [start, end) iff s < end AND e > start. No status
// filter: pending and even cancelled sessions keep blocking the slot.
func (r *appointmentRepository) HasOverlap(db *gorm.DB, kinesiologistID uuid.UUID, date time.Time, start, end string) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("kinesiologist_id = ? AND date = ? AND start_time < ? AND end_time > ?",
			kinesiologistID, date.Format("2006-01-02"), end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) FindUpcoming(db *gorm.DB, kinesiologistID uuid.UUID, today time.Time, nowTime string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	day := today.Format("2006-01-02")
	err := db.Preload("Patient.User").
		Where("kinesiologist_id = ?", kinesiologistID).
		Where("date > ? OR (date = ? AND start_time >= ?)", day, day, nowTime).
		Order("date ASC, start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindHistoryByPatient(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Kinesiologist.User").
		Where("patient_id = ?", patientID).
		Order("date DESC, start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) CompleteWithComment(db *gorm.DB, id uuid.UUID, comment string, at time.Time) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             entity.AppointmentStatusCompleted,
			"kine_comment":       comment,
			"comment_updated_at": at,
		}).Error
}
