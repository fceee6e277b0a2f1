package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kine-booking-api/internal/delivery/http/middleware"
	"kine-booking-api/internal/domain/entity"
	"kine-booking-api/internal/domain/repository"
	"kine-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a gorm handle that never connects: the pool is lazy
// and the fakes below ignore the db argument entirely.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=test dbname=test port=5432 sslmode=disable"), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db
}

type fakeAppointmentRepo struct {
	repository.AppointmentRepository

	appointment *entity.Appointment

	updatedStatus    *entity.AppointmentStatus
	completedComment string
	completedAt      time.Time
}

func (r *fakeAppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if r.appointment == nil || r.appointment.ID != id {
		return nil, nil
	}
	a := *r.appointment
	return &a, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ *gorm.DB, _ uuid.UUID, status entity.AppointmentStatus) error {
	r.updatedStatus = &status
	return nil
}

func (r *fakeAppointmentRepo) CompleteWithComment(_ *gorm.DB, _ uuid.UUID, comment string, at time.Time) error {
	r.completedComment = comment
	r.completedAt = at
	return nil
}

type fakeKineRepo struct {
	repository.KinesiologistProfileRepository

	profile *entity.KinesiologistProfile
}

func (r *fakeKineRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.KinesiologistProfile, error) {
	if r.profile == nil || r.profile.UserID != userID {
		return nil, nil
	}
	return r.profile, nil
}

type recordingSender struct {
	sent []service.Mail
}

func (s *recordingSender) Send(_ context.Context, m service.Mail) error {
	s.sent = append(s.sent, m)
	return nil
}

type statusFixture struct {
	usecase     AppointmentStatusUsecase
	repo        *fakeAppointmentRepo
	sender      *recordingSender
	appointment *entity.Appointment
	kineCtx     context.Context
}

func newStatusFixture(t *testing.T) *statusFixture {
	t.Helper()

	kineID := uuid.New()
	patientID := uuid.New()
	appointment := &entity.Appointment{
		ID:              uuid.New(),
		KinesiologistID: kineID,
		PatientID:       patientID,
		Date:            time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		EndTime:         "09:45",
		Status:          entity.AppointmentStatusPending,
		Kinesiologist: entity.KinesiologistProfile{
			UserID: kineID,
			Name:   "Dra. Rojas",
			User:   entity.User{ID: kineID, Email: "carla@clinic.cl"},
		},
		Patient: entity.PatientProfile{
			UserID: patientID,
			User:   entity.User{ID: patientID, FullName: "Pedro Soto", Email: "pedro@mail.cl"},
		},
	}

	repo := &fakeAppointmentRepo{appointment: appointment}
	kineRepo := &fakeKineRepo{profile: &appointment.Kinesiologist}
	sender := &recordingSender{}
	log := logrus.New()

	return &statusFixture{
		usecase:     NewAppointmentStatusUsecase(newTestDB(t), log, repo, kineRepo, service.NewNotificationService(sender, log)),
		repo:        repo,
		sender:      sender,
		appointment: appointment,
		kineCtx:     middleware.WithUser(context.Background(), kineID, entity.RoleIDKinesiologist),
	}
}

func TestUpdateStatusConfirm(t *testing.T) {
	f := newStatusFixture(t)

	resp, err := f.usecase.UpdateStatus(f.kineCtx, f.appointment.ID, "confirmed")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Status != "confirmed" || resp.StatusLabel != "Confirmada" {
		t.Errorf("response status = %s (%s)", resp.Status, resp.StatusLabel)
	}
	if f.repo.updatedStatus == nil || *f.repo.updatedStatus != entity.AppointmentStatusConfirmed {
		t.Error("repository status not updated to confirmed")
	}

	if len(f.sender.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(f.sender.sent))
	}
	mail := f.sender.sent[0]
	if mail.To[0] != "pedro@mail.cl" {
		t.Errorf("mail went to %v, want the patient", mail.To)
	}
	if !strings.Contains(mail.Body, "CONFIRMADA") {
		t.Errorf("simple mail missing CONFIRMADA:\n%s", mail.Body)
	}
}

func TestUpdateStatusRejectsOutsideRestrictedSet(t *testing.T) {
	f := newStatusFixture(t)

	// rejected is a valid status but not reachable through this operation.
	_, err := f.usecase.UpdateStatus(f.kineCtx, f.appointment.ID, "rejected")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}
	if f.repo.updatedStatus != nil {
		t.Error("repository touched despite invalid status")
	}
}

func TestUpdateStatusNonOwnerForbidden(t *testing.T) {
	f := newStatusFixture(t)
	otherCtx := middleware.WithUser(context.Background(), uuid.New(), entity.RoleIDKinesiologist)

	_, err := f.usecase.UpdateStatus(otherCtx, f.appointment.ID, "confirmed")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestUpdateStatusUnknownAppointment(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.usecase.UpdateStatus(f.kineCtx, uuid.New(), "confirmed")
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("got %v, want ErrAppointmentNotFound", err)
	}
}

func TestUpdateStatusGeneralFullSet(t *testing.T) {
	f := newStatusFixture(t)

	resp, err := f.usecase.UpdateStatusGeneral(f.kineCtx, f.appointment.ID, "rejected")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Status != "rejected" {
		t.Errorf("response status = %s, want rejected", resp.Status)
	}

	if len(f.sender.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(f.sender.sent))
	}
	if !strings.Contains(f.sender.sent[0].Subject, "RECHAZADA") {
		t.Errorf("detail mail subject = %q", f.sender.sent[0].Subject)
	}
}

func TestUpdateStatusGeneralInvalidStatus(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.usecase.UpdateStatusGeneral(f.kineCtx, f.appointment.ID, "archived")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateStatusGeneralRequiresKinesiologist(t *testing.T) {
	f := newStatusFixture(t)
	patientCtx := middleware.WithUser(context.Background(), f.appointment.PatientID, entity.RoleIDPatient)

	_, err := f.usecase.UpdateStatusGeneral(patientCtx, f.appointment.ID, "confirmed")
	if !errors.Is(err, ErrNotAKinesiologist) {
		t.Fatalf("got %v, want ErrNotAKinesiologist", err)
	}
}

func TestCompleteWithComment(t *testing.T) {
	f := newStatusFixture(t)

	resp, err := f.usecase.CompleteWithComment(f.kineCtx, f.appointment.ID, "  Buena evolución.  ")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Status != "completed" || resp.StatusLabel != "Realizada" {
		t.Errorf("response status = %s (%s)", resp.Status, resp.StatusLabel)
	}
	if resp.KineComment != "Buena evolución." {
		t.Errorf("comment not trimmed: %q", resp.KineComment)
	}
	if resp.CommentUpdatedAt == nil {
		t.Error("comment timestamp missing")
	}
	if f.repo.completedComment != "Buena evolución." {
		t.Errorf("stored comment = %q", f.repo.completedComment)
	}

	// Completion deliberately sends no mail.
	if len(f.sender.sent) != 0 {
		t.Errorf("sent %d mails, want 0", len(f.sender.sent))
	}
}

func TestCompleteWithEmptyComment(t *testing.T) {
	f := newStatusFixture(t)

	for _, comment := range []string{"", "   ", "\n\t"} {
		if _, err := f.usecase.CompleteWithComment(f.kineCtx, f.appointment.ID, comment); !errors.Is(err, ErrEmptyComment) {
			t.Errorf("comment %q: got %v, want ErrEmptyComment", comment, err)
		}
	}
}
