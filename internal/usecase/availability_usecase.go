package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"kine-booking-api/internal/converter"
	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/domain/entity"
	"kine-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidWeekday    = errors.New("invalid weekday key")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidWindow     = errors.New("start_time must be before end_time")
)

type AvailabilityUsecase interface {
	ListAvailability(ctx context.Context, kinesiologistID uuid.UUID) (*dto.AvailabilityListResponse, error)
	ReplaceWeeklyAvailability(ctx context.Context, kinesiologistID uuid.UUID, bulk map[string][]dto.AvailabilityBlock) ([]dto.AvailabilityResponse, error)
	AddAvailability(ctx context.Context, kinesiologistID uuid.UUID, day int, start, end string) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
	kineRepo         repository.KinesiologistProfileRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	kineRepo repository.KinesiologistProfileRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		kineRepo:         kineRepo,
	}
}

// ListAvailability returns the kinesiologist summary together with the
// weekly windows and all booked appointments, the view the scheduling
// panel renders from.
func (u *availabilityUsecase) ListAvailability(ctx context.Context, kinesiologistID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	db := u.db.WithContext(ctx)

	kine, err := u.kineRepo.FindByUserID(db, kinesiologistID)
	if err != nil {
		u.log.Warnf("Failed to find kinesiologist %s: %+v", kinesiologistID, err)
		return nil, err
	}
	if kine == nil {
		return nil, ErrKinesiologistNotFound
	}

	availabilities, err := u.availabilityRepo.FindByKinesiologist(db, kinesiologistID)
	if err != nil {
		u.log.Warnf("Failed to find availability for %s: %+v", kinesiologistID, err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByKinesiologist(db, kinesiologistID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for %s: %+v", kinesiologistID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Kinesiologist: converter.KinesiologistToResponse(kine),
		Availability:  converter.AvailabilitiesToResponses(availabilities),
		Appointments:  converter.AppointmentsToResponses(appointments),
	}, nil
}

// ReplaceWeeklyAvailability replaces the clinician's entire weekly
// schedule atomically. The whole payload is validated into a staging
// slice before anything touches the database; the delete+insert pair
// runs in one transaction so an invalid key or block anywhere leaves
// the prior schedule untouched.
func (u *availabilityUsecase) ReplaceWeeklyAvailability(ctx context.Context, kinesiologistID uuid.UUID, bulk map[string][]dto.AvailabilityBlock) ([]dto.AvailabilityResponse, error) {
	kine, err := u.kineRepo.FindByUserID(u.db.WithContext(ctx), kinesiologistID)
	if err != nil {
		return nil, err
	}
	if kine == nil {
		return nil, ErrKinesiologistNotFound
	}

	staged, err := stageWeeklyWindows(kinesiologistID, bulk)
	if err != nil {
		return nil, err
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.availabilityRepo.DeleteByKinesiologist(tx, kinesiologistID); err != nil {
			return err
		}
		return u.availabilityRepo.CreateBatch(tx, staged)
	})
	if err != nil {
		u.log.Warnf("Failed to replace availability for %s: %+v", kinesiologistID, err)
		return nil, err
	}

	created := make([]entity.Availability, len(staged))
	for i, a := range staged {
		created[i] = *a
	}
	return converter.AvailabilitiesToResponses(created), nil
}

// AddAvailability appends one window without touching the rest of the
// weekly schedule (the single-block payload shape).
func (u *availabilityUsecase) AddAvailability(ctx context.Context, kinesiologistID uuid.UUID, day int, start, end string) (*dto.AvailabilityResponse, error) {
	kine, err := u.kineRepo.FindByUserID(u.db.WithContext(ctx), kinesiologistID)
	if err != nil {
		return nil, err
	}
	if kine == nil {
		return nil, ErrKinesiologistNotFound
	}

	if day < entity.WeekdayMonday || day > entity.WeekdaySunday {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, day)
	}
	start, end, err = validateWindow(start, end)
	if err != nil {
		return nil, err
	}

	availability := &entity.Availability{
		KinesiologistID: kinesiologistID,
		Day:             day,
		StartTime:       start,
		EndTime:         end,
	}
	if err := u.availabilityRepo.Create(u.db.WithContext(ctx), availability); err != nil {
		u.log.Warnf("Failed to create availability for %s: %+v", kinesiologistID, err)
		return nil, err
	}

	return converter.AvailabilityToResponse(availability), nil
}

// stageWeeklyWindows validates every day key and block of a bulk payload
// and materializes the rows to insert. Nothing is written here; a single
// invalid entry fails the whole batch.
func stageWeeklyWindows(kinesiologistID uuid.UUID, bulk map[string][]dto.AvailabilityBlock) ([]*entity.Availability, error) {
	// Deterministic iteration order for stable insert order and output.
	keys := make([]string, 0, len(bulk))
	for key := range bulk {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return entity.WeekdayKeys[keys[i]] < entity.WeekdayKeys[keys[j]]
	})

	staged := []*entity.Availability{}
	for _, key := range keys {
		day, ok := entity.WeekdayKeys[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidWeekday, key)
		}

		for _, block := range bulk[key] {
			start, end := block.Times()
			start, end, err := validateWindow(start, end)
			if err != nil {
				return nil, err
			}
			staged = append(staged, &entity.Availability{
				KinesiologistID: kinesiologistID,
				Day:             day,
				StartTime:       start,
				EndTime:         end,
			})
		}
	}
	return staged, nil
}

// validateWindow checks both HH:MM formats and the start < end invariant.
// The returned times are re-emitted from the parsed values, so unpadded
// input like "9:00" is stored and compared as "09:00".
func validateWindow(start, end string) (string, string, error) {
	s, err := time.Parse("15:04", entity.HHMM(start))
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, start)
	}
	e, err := time.Parse("15:04", entity.HHMM(end))
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, end)
	}
	if !s.Before(e) {
		return "", "", ErrInvalidWindow
	}
	return s.Format("15:04"), e.Format("15:04"), nil
}
