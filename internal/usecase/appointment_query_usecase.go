package usecase

import (
	"context"
	"errors"
	"time"

	"kine-booking-api/internal/converter"
	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/delivery/http/middleware"
	"kine-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppointmentQueryUsecase interface {
	// UpcomingForKinesiologist returns the acting clinician's
	// appointments from now on: later dates, or today with a start time
	// that has not passed yet.
	UpcomingForKinesiologist(ctx context.Context) (*dto.AppointmentListResponse, error)
	// HistoryForPatient returns the acting patient's appointments in
	// reverse chronological order.
	HistoryForPatient(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type appointmentQueryUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	kineRepo        repository.KinesiologistProfileRepository
	patientRepo     repository.PatientProfileRepository
}

func NewAppointmentQueryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	kineRepo repository.KinesiologistProfileRepository,
	patientRepo repository.PatientProfileRepository,
) AppointmentQueryUsecase {
	return &appointmentQueryUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		kineRepo:        kineRepo,
		patientRepo:     patientRepo,
	}
}

func (u *appointmentQueryUsecase) UpcomingForKinesiologist(ctx context.Context) (*dto.AppointmentListResponse, error) {
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

	now := time.Now()
	appointments, err := u.appointmentRepo.FindUpcoming(u.db.WithContext(ctx), kine.UserID, now, now.Format("15:04"))
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments for %s: %+v", kine.UserID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentQueryUsecase) HistoryForPatient(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", userID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotAPatient
	}

	appointments, err := u.appointmentRepo.FindHistoryByPatient(u.db.WithContext(ctx), patient.UserID)
	if err != nil {
		u.log.Warnf("Failed to find history for patient %s: %+v", patient.UserID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
