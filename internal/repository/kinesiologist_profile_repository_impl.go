package repository

import (
	"errors"

	"kine-booking-api/internal/domain/entity"
	domainRepo "kine-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kinesiologistProfileRepository struct{}

func NewKinesiologistProfileRepository() domainRepo.KinesiologistProfileRepository {
	return &kinesiologistProfileRepository{}
}

func (r *kinesiologistProfileRepository) Create(db *gorm.DB, profile *entity.KinesiologistProfile) error {
	return db.Create(profile).Error
}

func (r *kinesiologistProfileRepository) FindAll(db *gorm.DB) ([]entity.KinesiologistProfile, error) {
	var profiles []entity.KinesiologistProfile
	err := db.Preload("User").Order("name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *kinesiologistProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.KinesiologistProfile, error) {
	var profile entity.KinesiologistProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *kinesiologistProfileRepository) FindByUserIDForUpdate(db *gorm.DB, userID uuid.UUID) (*entity.KinesiologistProfile, error) {
	var profile entity.KinesiologistProfile
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *kinesiologistProfileRepository) Update(db *gorm.DB, profile *entity.KinesiologistProfile) error {
	return db.Omit("User").Save(profile).Error
}
