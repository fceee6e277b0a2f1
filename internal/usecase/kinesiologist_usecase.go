package usecase

import (
	"context"
	"errors"

	"kine-booking-api/internal/converter"
	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/delivery/http/middleware"
	"kine-booking-api/internal/domain/entity"
	"kine-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email is already registered")

type KinesiologistUsecase interface {
	List(ctx context.Context) (*dto.KinesiologistListResponse, error)
	Create(ctx context.Context, req *dto.CreateKinesiologistRequest) (*dto.KinesiologistResponse, error)
	GetProfile(ctx context.Context) (*dto.KinesiologistResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateKinesiologistProfileRequest) (*dto.KinesiologistResponse, error)
}

type kinesiologistUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	kineRepo repository.KinesiologistProfileRepository
}

func NewKinesiologistUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	kineRepo repository.KinesiologistProfileRepository,
) KinesiologistUsecase {
	return &kinesiologistUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		kineRepo: kineRepo,
	}
}

func (u *kinesiologistUsecase) List(ctx context.Context) (*dto.KinesiologistListResponse, error) {
	profiles, err := u.kineRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list kinesiologists: %+v", err)
		return nil, err
	}

	return &dto.KinesiologistListResponse{
		Kinesiologists: converter.KinesiologistsToResponses(profiles),
		Total:          len(profiles),
	}, nil
}

// Create registers a kinesiologist user plus profile in one transaction.
// The identity provider issues credentials separately; this only stores
// the account and profile rows.
func (u *kinesiologistUsecase) Create(ctx context.Context, req *dto.CreateKinesiologistRequest) (*dto.KinesiologistResponse, error) {
	existing, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &entity.User{
		RoleID:   entity.RoleIDKinesiologist,
		Email:    req.Email,
		FullName: req.FullName,
	}
	profile := &entity.KinesiologistProfile{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Specialty:   req.Specialty,
		Box:         req.Box,
		ImageURL:    req.ImageURL,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		return u.kineRepo.Create(tx, profile)
	})
	if err != nil {
		u.log.Warnf("Failed to create kinesiologist: %+v", err)
		return nil, err
	}

	profile.User = *user
	return converter.KinesiologistToResponse(profile), nil
}

func (u *kinesiologistUsecase) GetProfile(ctx context.Context) (*dto.KinesiologistResponse, error) {
	kine, err := u.loadOwnProfile(ctx)
	if err != nil {
		return nil, err
	}
	return converter.KinesiologistToResponse(kine), nil
}

// UpdateProfile applies a partial update; only the fields present in the
// request change.
func (u *kinesiologistUsecase) UpdateProfile(ctx context.Context, req *dto.UpdateKinesiologistProfileRequest) (*dto.KinesiologistResponse, error) {
	kine, err := u.loadOwnProfile(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		kine.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		kine.PhoneNumber = *req.PhoneNumber
	}
	if req.Specialty != nil {
		kine.Specialty = *req.Specialty
	}
	if req.Box != nil {
		kine.Box = *req.Box
	}
	if req.ImageURL != nil {
		kine.ImageURL = *req.ImageURL
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.kineRepo.Update(tx, kine); err != nil {
			return err
		}
		if req.Email != nil {
			kine.User.Email = *req.Email
			return u.userRepo.Update(tx, &kine.User)
		}
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to update profile %s: %+v", kine.UserID, err)
		return nil, err
	}

	return converter.KinesiologistToResponse(kine), nil
}

func (u *kinesiologistUsecase) loadOwnProfile(ctx context.Context) (*entity.KinesiologistProfile, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	kine, err := u.kineRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find kinesiologist %s: %+v", userID, err)
		return nil, err
	}
	if kine == nil {
		return nil, ErrNotAKinesiologist
	}
	return kine, nil
}
