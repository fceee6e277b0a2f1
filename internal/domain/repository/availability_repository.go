package repository

import (
	"kine-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	Create(db *gorm.DB, availability *entity.Availability) error
	CreateBatch(db *gorm.DB, availabilities []*entity.Availability) error
	// FindByKinesiologist returns all windows ordered by day, start_time.
	FindByKinesiologist(db *gorm.DB, kinesiologistID uuid.UUID) ([]entity.Availability, error)
	// FindByKinesiologistAndDay returns the windows for one weekday
	// ordered by start_time, the order slot generation depends on.
	FindByKinesiologistAndDay(db *gorm.DB, kinesiologistID uuid.UUID, day int) ([]entity.Availability, error)
	DeleteByKinesiologist(db *gorm.DB, kinesiologistID uuid.UUID) error
}
