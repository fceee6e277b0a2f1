package repository

import (
	"kine-booking-api/internal/domain/entity"
	domainRepo "kine-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) Create(db *gorm.DB, availability *entity.Availability) error {
	return db.Create(availability).Error
}

func (r *availabilityRepository) CreateBatch(db *gorm.DB, availabilities []*entity.Availability) error {
	if len(availabilities) == 0 {
		return nil
	}
	return db.Create(availabilities).Error
}

func (r *availabilityRepository) FindByKinesiologist(db *gorm.DB, kinesiologistID uuid.UUID) ([]entity.Availability, error) {
	var availabilities []entity.Availability
	err := db.Where("kinesiologist_id = ?", kinesiologistID).
		Order("day ASC, start_time ASC").
		Find(&availabilities).Error
	if err != nil {
		return nil, err
	}
	return availabilities, nil
}

func (r *availabilityRepository) FindByKinesiologistAndDay(db *gorm.DB, kinesiologistID uuid.UUID, day int) ([]entity.Availability, error) {
	var availabilities []entity.Availability
	err := db.Where("kinesiologist_id = ? AND day = ?", kinesiologistID, day).
		Order("start_time ASC").
		Find(&availabilities).Error
	if err != nil {
		return nil, err
	}
	return availabilities, nil
}

func (r *availabilityRepository) DeleteByKinesiologist(db *gorm.DB, kinesiologistID uuid.UUID) error {
	return db.Where("kinesiologist_id = ?", kinesiologistID).Delete(&entity.Availability{}).Error
}
