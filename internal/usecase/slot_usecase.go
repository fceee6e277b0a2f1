package usecase

import (
	"context"
	"errors"
	"time"

	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/domain/entity"
	"kine-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SlotMinutes is the fixed duration of every bookable slot.
const SlotMinutes = 45

var (
	ErrInvalidDate           = errors.New("invalid date format, use YYYY-MM-DD")
	ErrKinesiologistNotFound = errors.New("kinesiologist not found")
)

type SlotUsecase interface {
	GetAvailableSlots(ctx context.Context, kinesiologistID uuid.UUID, dateStr string) (*dto.SlotListResponse, error)
}

type slotUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
) SlotUsecase {
	return &slotUsecase{
		db:               db,
		log:              log,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
	}
}

// GetAvailableSlots derives the bookable 45-minute slots for one
// calendar date from the weekly availability windows minus the already
// booked appointments. Read-only and idempotent.
func (u *slotUsecase) GetAvailableSlots(ctx context.Context, kinesiologistID uuid.UUID, dateStr string) (*dto.SlotListResponse, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	day := entity.WeekdayOf(date)

	windows, err := u.availabilityRepo.FindByKinesiologistAndDay(u.db.WithContext(ctx), kinesiologistID, day)
	if err != nil {
		u.log.Warnf("Failed to find availability for %s: %+v", kinesiologistID, err)
		return nil, err
	}
	if len(windows) == 0 {
		return &dto.SlotListResponse{Slots: []dto.SlotResponse{}, Total: 0}, nil
	}

	// Appointments block slots regardless of status: an unconfirmed
	// (pending) request already holds its interval.
	appointments, err := u.appointmentRepo.FindByKinesiologistAndDate(u.db.WithContext(ctx), kinesiologistID, date)
	if err != nil {
		u.log.Warnf("Failed to find appointments for %s on %s: %+v", kinesiologistID, dateStr, err)
		return nil, err
	}

	slots := buildSlots(windows, appointments, date)
	return &dto.SlotListResponse{Slots: slots, Total: len(slots)}, nil
}

// buildSlots walks each availability window in order, stepping by
// SlotMinutes while a full slot still fits, and keeps the candidates
// whose half-open interval overlaps no existing appointment.
func buildSlots(windows []entity.Availability, appointments []entity.Appointment, date time.Time) []dto.SlotResponse {
	slotLen := SlotMinutes * time.Minute
	slots := []dto.SlotResponse{}

	for _, w := range windows {
		start, err := combineDateTime(date, w.StartTime)
		if err != nil {
			continue
		}
		end, err := combineDateTime(date, w.EndTime)
		if err != nil {
			continue
		}

		for cur := start; !cur.Add(slotLen).After(end); cur = cur.Add(slotLen) {
			curEnd := cur.Add(slotLen)
			s := cur.Format("15:04")
			e := curEnd.Format("15:04")

			if overlapsAny(appointments, s, e) {
				continue
			}

			slots = append(slots, dto.SlotResponse{
				Date:      date.Format("2006-01-02"),
				StartTime: s,
				EndTime:   e,
				Datetime:  cur,
			})
		}
	}

	return slots
}

func overlapsAny(appointments []entity.Appointment, start, end string) bool {
	for i := range appointments {
		if appointments[i].Overlaps(start, end) {
			return true
		}
	}
	return false
}

// combineDateTime anchors a HH:MM time-of-day onto a calendar date.
func combineDateTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", entity.HHMM(hhmm))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
