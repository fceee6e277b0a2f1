package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kine-booking-api/internal/converter"
	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/delivery/http/middleware"
	"kine-booking-api/internal/domain/entity"
	"kine-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"kine-booking-api/internal/service"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrForbidden           = errors.New("only the owning kinesiologist can modify this appointment")
	ErrNotAKinesiologist   = errors.New("user is not a kinesiologist")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrEmptyComment        = errors.New("comment is required")
)

// restrictedStatuses is the target set for the confirm/cancel operation.
var restrictedStatuses = []entity.AppointmentStatus{
	entity.AppointmentStatusConfirmed,
	entity.AppointmentStatusCancelled,
}

type AppointmentStatusUsecase interface {
	// UpdateStatus is the restricted confirm/cancel operation. Always
	// mails the patient with the short status label.
	UpdateStatus(ctx context.Context, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error)
	// UpdateStatusGeneral accepts the full status set and mails the
	// patient a status-specific message including the clinician's latest
	// comment when present.
	UpdateStatusGeneral(ctx context.Context, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error)
	// CompleteWithComment marks the session as done and stores the
	// clinician's comment. Sends no mail; this path historically differs
	// from the general update and the divergence is kept on purpose.
	CompleteWithComment(ctx context.Context, appointmentID uuid.UUID, comment string) (*dto.AppointmentResponse, error)
}

type appointmentStatusUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	kineRepo        repository.KinesiologistProfileRepository
	notifications   *service.NotificationService
}

func NewAppointmentStatusUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	kineRepo repository.KinesiologistProfileRepository,
	notifications *service.NotificationService,
) AppointmentStatusUsecase {
	return &appointmentStatusUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		kineRepo:        kineRepo,
		notifications:   notifications,
	}
}

func (u *appointmentStatusUsecase) UpdateStatus(ctx context.Context, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error) {
	target := entity.AppointmentStatus(status)
	if !statusIn(target, restrictedStatuses) {
		return nil, fmt.Errorf("%w, use: %v", ErrInvalidStatus, restrictedStatuses)
	}

	appointment, err := u.loadOwnedAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.UpdateStatus(u.db.WithContext(ctx), appointmentID, target); err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointmentID, err)
		return nil, err
	}
	appointment.Status = target

	if err := u.notifications.NotifyStatusSimple(ctx, appointment); err != nil {
		return nil, ErrNotificationDelivery
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentStatusUsecase) UpdateStatusGeneral(ctx context.Context, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error) {
	target := entity.AppointmentStatus(status)
	if !target.IsValid() {
		return nil, fmt.Errorf("%w, use: %v", ErrInvalidStatus, entity.AllStatuses())
	}

	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	kine, err := u.kineRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if kine == nil {
		return nil, ErrNotAKinesiologist
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsOwnedBy(kine.UserID) {
		return nil, ErrForbidden
	}

	if err := u.appointmentRepo.UpdateStatus(u.db.WithContext(ctx), appointmentID, target); err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointmentID, err)
		return nil, err
	}
	appointment.Status = target

	if err := u.notifications.NotifyStatusDetail(ctx, appointment); err != nil {
		return nil, ErrNotificationDelivery
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentStatusUsecase) CompleteWithComment(ctx context.Context, appointmentID uuid.UUID, comment string) (*dto.AppointmentResponse, error) {
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return nil, ErrEmptyComment
	}

	appointment, err := u.loadOwnedAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := u.appointmentRepo.CompleteWithComment(u.db.WithContext(ctx), appointmentID, trimmed, now); err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	appointment.Status = entity.AppointmentStatusCompleted
	appointment.KineComment = &trimmed
	appointment.CommentUpdatedAt = &now

	return converter.AppointmentToResponse(appointment), nil
}

// loadOwnedAppointment fetches the appointment and verifies the acting
// user is its owning kinesiologist.
func (u *appointmentStatusUsecase) loadOwnedAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Appointment, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsOwnedBy(userID) {
		return nil, ErrForbidden
	}
	return appointment, nil
}

func statusIn(s entity.AppointmentStatus, set []entity.AppointmentStatus) bool {
	for _, allowed := range set {
		if s == allowed {
			return true
		}
	}
	return false
}
