package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/delivery/http/middleware"
	"kine-booking-api/internal/domain/entity"
	"kine-booking-api/internal/usecase"
	"kine-booking-api/pkg/response"
	"kine-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	kinesiologistID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid kinesiologist ID", nil)
		return
	}

	list, err := h.availabilityUsecase.ListAvailability(r.Context(), kinesiologistID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrKinesiologistNotFound):
			response.NotFound(w, "Kinesiologist not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", list)
}

// Set accepts the two payload shapes on one route: a day-keyed bulk map
// that atomically replaces the weekly schedule, or a single block that
// appends one window. Only the clinician themself or an admin may write.
func (h *AvailabilityHandler) Set(w http.ResponseWriter, r *http.Request) {
	kinesiologistID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid kinesiologist ID", nil)
		return
	}

	if !h.canWrite(r, kinesiologistID) {
		response.Forbidden(w, "You cannot modify this schedule")
		return
	}

	var payload dto.AvailabilityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if payload.IsBulk() {
		created, err := h.availabilityUsecase.ReplaceWeeklyAvailability(r.Context(), kinesiologistID, payload.Availability)
		if err != nil {
			h.writeError(w, err)
			return
		}
		response.Success(w, http.StatusCreated, "Availability saved successfully", created)
		return
	}

	if payload.Day == nil {
		response.Error(w, http.StatusBadRequest, "day is required for single-block payloads", nil)
		return
	}
	created, err := h.availabilityUsecase.AddAvailability(r.Context(), kinesiologistID, *payload.Day, payload.StartTime, payload.EndTime)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Availability registered successfully", created)
}

func (h *AvailabilityHandler) canWrite(r *http.Request, kinesiologistID uuid.UUID) bool {
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		return false
	}
	if roleID == entity.RoleIDAdmin {
		return true
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	return ok && userID == kinesiologistID
}

func (h *AvailabilityHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrKinesiologistNotFound):
		response.NotFound(w, "Kinesiologist not found")
	case errors.Is(err, usecase.ErrInvalidWeekday),
		errors.Is(err, usecase.ErrInvalidTimeFormat),
		errors.Is(err, usecase.ErrInvalidWindow):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, "Could not save the schedule, please try again")
	}
}
