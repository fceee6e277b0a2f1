package repository_test

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"kine-booking-api/internal/domain/entity"
	"kine-booking-api/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	return db
}

func seedKinesiologist(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := &entity.User{
		RoleID:   entity.RoleIDKinesiologist,
		Email:    fmt.Sprintf("kine-%s@test.cl", uuid.New().String()[:8]),
		FullName: "Test Kine",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	profile := &entity.KinesiologistProfile{UserID: user.ID, Name: "Test Kine"}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	t.Cleanup(func() {
		db.Where("kinesiologist_id = ?", user.ID).Delete(&entity.Appointment{})
		db.Delete(profile)
		db.Delete(user)
	})
	return user.ID
}

func seedPatient(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := &entity.User{
		RoleID:   entity.RoleIDPatient,
		Email:    fmt.Sprintf("patient-%s@test.cl", uuid.New().String()[:8]),
		FullName: "Test Patient",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	profile := &entity.PatientProfile{UserID: user.ID}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	t.Cleanup(func() {
		db.Where("patient_id = ?", user.ID).Delete(&entity.Appointment{})
		db.Delete(profile)
		db.Delete(user)
	})
	return user.ID
}

func TestHasOverlap(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewAppointmentRepository()
	kineID := seedKinesiologist(t, db)
	patientID := seedPatient(t, db)
	date := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

	if err := repo.Create(db, &entity.Appointment{
		KinesiologistID: kineID,
		PatientID:       patientID,
		Date:            date,
		StartTime:       "09:45",
		EndTime:         "10:30",
		Status:          entity.AppointmentStatusPending,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	overlap, err := repo.HasOverlap(db, kineID, date, "10:00", "10:45")
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	if !overlap {
		t.Error("10:00-10:45 should overlap 09:45-10:30")
	}

	// Half-open: an interval ending exactly at the start is free.
	overlap, err = repo.HasOverlap(db, kineID, date, "09:00", "09:45")
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	if overlap {
		t.Error("09:00-09:45 should not overlap 09:45-10:30")
	}

	overlap, err = repo.HasOverlap(db, kineID, date.AddDate(0, 0, 1), "10:00", "10:45")
	if err != nil {
		t.Fatalf("overlap: %v", err)
	}
	if overlap {
		t.Error("other dates should not overlap")
	}
}

func TestExclusionConstraintBlocksDoubleBooking(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewAppointmentRepository()
	kineID := seedKinesiologist(t, db)
	patientID := seedPatient(t, db)
	otherPatientID := seedPatient(t, db)
	date := time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC)

	if err := repo.Create(db, &entity.Appointment{
		KinesiologistID: kineID,
		PatientID:       patientID,
		Date:            date,
		StartTime:       "09:00",
		EndTime:         "09:45",
		Status:          entity.AppointmentStatusPending,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.Create(db, &entity.Appointment{
		KinesiologistID: kineID,
		PatientID:       otherPatientID,
		Date:            date,
		StartTime:       "09:30",
		EndTime:         "10:15",
		Status:          entity.AppointmentStatusPending,
	})
	if err == nil {
		t.Fatal("overlapping insert should be rejected by the schema")
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23P01" {
		t.Errorf("got %v, want exclusion violation 23P01", err)
	}

	// An adjacent slot on the boundary is fine.
	if err := repo.Create(db, &entity.Appointment{
		KinesiologistID: kineID,
		PatientID:       otherPatientID,
		Date:            date,
		StartTime:       "09:45",
		EndTime:         "10:30",
		Status:          entity.AppointmentStatusPending,
	}); err != nil {
		t.Errorf("adjacent slot rejected: %v", err)
	}
}

func TestFindByKinesiologistAndDateOrdering(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewAppointmentRepository()
	kineID := seedKinesiologist(t, db)
	patientID := seedPatient(t, db)
	date := time.Date(2030, 6, 5, 0, 0, 0, 0, time.UTC)

	for _, slot := range [][2]string{{"15:00", "15:45"}, {"09:00", "09:45"}} {
		if err := repo.Create(db, &entity.Appointment{
			KinesiologistID: kineID,
			PatientID:       patientID,
			Date:            date,
			StartTime:       slot[0],
			EndTime:         slot[1],
			Status:          entity.AppointmentStatusPending,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	appointments, err := repo.FindByKinesiologistAndDate(db, kineID, date)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(appointments) != 2 {
		t.Fatalf("got %d appointments, want 2", len(appointments))
	}
	if entity.HHMM(appointments[0].StartTime) != "09:00" {
		t.Errorf("first appointment starts at %s, want 09:00", appointments[0].StartTime)
	}
}
