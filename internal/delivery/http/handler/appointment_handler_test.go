package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/delivery/http/handler"
	"kine-booking-api/internal/usecase"
	"kine-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeBookingUsecase struct {
	response *dto.AppointmentResponse
	err      error
}

func (u *fakeBookingUsecase) CreateAppointment(_ context.Context, _ uuid.UUID, _ *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return u.response, u.err
}

func doCreateRequest(t *testing.T, u usecase.BookingUsecase) *httptest.ResponseRecorder {
	t.Helper()
	h := handler.NewAppointmentHandler(u, nil, nil, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/kinesiologists/{id}/appointments", h.Create).Methods(http.MethodPost)

	body := `{"date":"2030-06-03","start_time":"09:00","end_time":"09:45"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/kinesiologists/"+uuid.New().String()+"/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateAppointment(t *testing.T) {
	u := &fakeBookingUsecase{response: &dto.AppointmentResponse{
		ID:        uuid.New(),
		Date:      "2030-06-03",
		StartTime: "09:00",
		EndTime:   "09:45",
		Status:    "pending",
	}}

	rec := doCreateRequest(t, u)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	rec := doCreateRequest(t, &fakeBookingUsecase{err: usecase.ErrSlotConflict})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestCreateAppointmentPersistenceConflictIsServerError(t *testing.T) {
	// Unexpected transaction failures are retryable server faults, not
	// client conflicts.
	rec := doCreateRequest(t, &fakeBookingUsecase{err: usecase.ErrPersistenceConflict})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "retry") {
		t.Errorf("body missing retry guidance: %s", rec.Body.String())
	}
}

func TestCreateAppointmentNotificationFailureIsServerError(t *testing.T) {
	rec := doCreateRequest(t, &fakeBookingUsecase{err: usecase.ErrNotificationDelivery})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
