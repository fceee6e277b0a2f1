package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kine-booking-api/internal/converter"
	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/delivery/http/middleware"
	"kine-booking-api/internal/domain/entity"
	"kine-booking-api/internal/domain/repository"
	"kine-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotAPatient          = errors.New("user is not a valid patient")
	ErrSlotConflict         = errors.New("slot is no longer available")
	ErrInvalidSlotDuration  = errors.New("appointment must last exactly 45 minutes")
	ErrPersistenceConflict  = errors.New("could not store the appointment, please retry")
	ErrNotificationDelivery = errors.New("appointment saved but notification delivery failed")
)

// Postgres error codes surfaced by concurrent booking attempts.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

const bookingLockTTL = 5 * time.Second

// releaseLockScript deletes the booking lock only when it still holds
// our token, so an expired lock taken over by another request is never
// released by us.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

type BookingUsecase interface {
	CreateAppointment(ctx context.Context, kinesiologistID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	redisClient     *redis.Client
	appointmentRepo repository.AppointmentRepository
	kineRepo        repository.KinesiologistProfileRepository
	patientRepo     repository.PatientProfileRepository
	notifications   *service.NotificationService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	redisClient *redis.Client,
	appointmentRepo repository.AppointmentRepository,
	kineRepo repository.KinesiologistProfileRepository,
	patientRepo repository.PatientProfileRepository,
	notifications *service.NotificationService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		redisClient:     redisClient,
		appointmentRepo: appointmentRepo,
		kineRepo:        kineRepo,
		patientRepo:     patientRepo,
		notifications:   notifications,
	}
}

// CreateAppointment books a pending appointment for the acting patient.
//
// Flow:
// 1. Resolve the acting user to a patient profile
// 2. Validate kinesiologist, date and time window
// 3. Acquire the per-slot Redis lock
// 4. In one transaction: lock the clinician row, re-check overlap, insert
// 5. After commit: notify the kinesiologist by email
//
// The overlap re-check plus the exclusion constraint in the schema make
// concurrent double-booking impossible; the Redis lock just keeps the
// common case away from constraint errors.
func (u *bookingUsecase) CreateAppointment(ctx context.Context, kinesiologistID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	// Step 1: the acting principal must have a patient record
	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", userID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotAPatient
	}

	// Step 2: validate target clinician and requested interval
	kine, err := u.kineRepo.FindByUserID(u.db.WithContext(ctx), kinesiologistID)
	if err != nil {
		u.log.Warnf("Failed to find kinesiologist %s: %+v", kinesiologistID, err)
		return nil, err
	}
	if kine == nil {
		return nil, ErrKinesiologistNotFound
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	start, end, err := validateWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := validateSlotDuration(start, end); err != nil {
		return nil, err
	}

	// Step 3: lock scoped to the exact slot, so concurrent bookings for
	// disjoint slots on the same day never contend. A busy lock means
	// another request for this very slot is mid-flight.
	lockKey := bookingLockKey(kinesiologistID, req.Date, start)
	lockToken := uuid.New().String()
	acquired, err := u.redisClient.SetNX(ctx, lockKey, lockToken, bookingLockTTL).Result()
	if err != nil {
		u.log.Warnf("Failed to acquire booking lock %s: %+v", lockKey, err)
		return nil, err
	}
	if !acquired {
		return nil, ErrSlotConflict
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseLockScript.Run(releaseCtx, u.redisClient, []string{lockKey}, lockToken).Err(); err != nil && !errors.Is(err, redis.Nil) {
			u.log.Warnf("Failed to release booking lock %s (expires in %s): %+v", lockKey, bookingLockTTL, err)
		}
	}()

	appointment := &entity.Appointment{
		KinesiologistID: kinesiologistID,
		PatientID:       patient.UserID,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		Status:          entity.AppointmentStatusPending,
	}

	// Step 4: atomic overlap re-check + insert
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialization point for concurrent bookings on this clinician.
		if _, err := u.kineRepo.FindByUserIDForUpdate(tx, kinesiologistID); err != nil {
			return err
		}
		overlap, err := u.appointmentRepo.HasOverlap(tx, kinesiologistID, date, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return ErrSlotConflict
		}
		return u.appointmentRepo.Create(tx, appointment)
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			return nil, ErrSlotConflict
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgExclusionViolation:
				return nil, ErrSlotConflict
			case pgUniqueViolation:
				return nil, ErrPersistenceConflict
			}
		}
		u.log.Errorf("Failed to create appointment for patient %s: %+v", patient.UserID, err)
		return nil, ErrPersistenceConflict
	}

	u.log.Infof("Appointment created: id=%s, kinesiologist=%s, date=%s %s-%s",
		appointment.ID, kinesiologistID, req.Date, start, end)

	// Step 5: post-commit notification. A delivery failure surfaces as an
	// error even though the appointment is committed; callers must
	// re-fetch state instead of retrying the write blindly.
	appointment.Kinesiologist = *kine
	appointment.Patient = *patient
	if err := u.notifications.NotifyAppointmentRequested(ctx, appointment, kine, patient); err != nil {
		return nil, ErrNotificationDelivery
	}

	return converter.AppointmentToResponse(appointment), nil
}

func bookingLockKey(kinesiologistID uuid.UUID, date, start string) string {
	return fmt.Sprintf("booking:lock:%s:%s:%s", kinesiologistID, date, start)
}

func validateSlotDuration(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, start)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, end)
	}
	if e.Sub(s) != SlotMinutes*time.Minute {
		return ErrInvalidSlotDuration
	}
	return nil
}
