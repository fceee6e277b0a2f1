package repository

import (
	"kine-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KinesiologistProfileRepository interface {
	Create(db *gorm.DB, profile *entity.KinesiologistProfile) error
	FindAll(db *gorm.DB) ([]entity.KinesiologistProfile, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.KinesiologistProfile, error)
	// FindByUserIDForUpdate locks the profile row for the duration of the
	// surrounding transaction. Used as the per-clinician serialization
	// point during booking.
	FindByUserIDForUpdate(db *gorm.DB, userID uuid.UUID) (*entity.KinesiologistProfile, error)
	Update(db *gorm.DB, profile *entity.KinesiologistProfile) error
}
