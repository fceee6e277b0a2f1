package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/usecase"
	"kine-booking-api/pkg/response"
	"kine-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	bookingUsecase usecase.BookingUsecase
	statusUsecase  usecase.AppointmentStatusUsecase
	queryUsecase   usecase.AppointmentQueryUsecase
	validator      *validator.CustomValidator
}

func NewAppointmentHandler(
	bookingUsecase usecase.BookingUsecase,
	statusUsecase usecase.AppointmentStatusUsecase,
	queryUsecase usecase.AppointmentQueryUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookingUsecase: bookingUsecase,
		statusUsecase:  statusUsecase,
		queryUsecase:   queryUsecase,
		validator:      validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	kinesiologistID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid kinesiologist ID", nil)
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.CreateAppointment(r.Context(), kinesiologistID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotAPatient):
			response.Error(w, http.StatusBadRequest, "User is not a valid patient", nil)
		case errors.Is(err, usecase.ErrKinesiologistNotFound):
			response.NotFound(w, "Kinesiologist not found")
		case errors.Is(err, usecase.ErrInvalidDate),
			errors.Is(err, usecase.ErrInvalidTimeFormat),
			errors.Is(err, usecase.ErrInvalidWindow),
			errors.Is(err, usecase.ErrInvalidSlotDuration):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrSlotConflict):
			response.Conflict(w, "The selected slot is no longer available")
		case errors.Is(err, usecase.ErrPersistenceConflict):
			response.InternalServerError(w, "Could not store the appointment, please retry")
		case errors.Is(err, usecase.ErrNotificationDelivery):
			response.InternalServerError(w, "Appointment saved but the notification could not be sent")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment requested successfully", appointment)
}

// UpdateStatus handles the restricted confirm/cancel transition.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.statusUsecase.UpdateStatus)
}

// UpdateStatusGeneral handles the full status set with detailed mail.
func (h *AppointmentHandler) UpdateStatusGeneral(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.statusUsecase.UpdateStatusGeneral)
}

func (h *AppointmentHandler) updateStatus(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error),
) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := apply(r.Context(), appointmentID, req.Status)
	if err != nil {
		h.writeStatusError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CompleteAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.statusUsecase.CompleteWithComment(r.Context(), appointmentID, req.KineComment)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyComment):
			response.Error(w, http.StatusBadRequest, "Comment is required", nil)
		default:
			h.writeStatusError(w, err)
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}

func (h *AppointmentHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.queryUsecase.UpcomingForKinesiologist(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotAKinesiologist):
			response.Forbidden(w, "User is not a kinesiologist")
		default:
			response.InternalServerError(w, "Failed to get upcoming appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) History(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.queryUsecase.HistoryForPatient(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotAPatient):
			response.Error(w, http.StatusBadRequest, "User is not a valid patient", nil)
		default:
			response.InternalServerError(w, "Failed to get appointment history")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment history retrieved successfully", appointments)
}

func (h *AppointmentHandler) writeStatusError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "You cannot modify this appointment")
	case errors.Is(err, usecase.ErrNotAKinesiologist):
		response.Forbidden(w, "User is not a kinesiologist")
	case errors.Is(err, usecase.ErrInvalidStatus):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, usecase.ErrNotificationDelivery):
		response.InternalServerError(w, "Status saved but the notification could not be sent")
	default:
		response.InternalServerError(w, "Failed to update appointment")
	}
}
