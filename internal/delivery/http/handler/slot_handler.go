package handler

import (
	"errors"
	"net/http"

	"kine-booking-api/internal/usecase"
	"kine-booking-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase) *SlotHandler {
	return &SlotHandler{slotUsecase: slotUsecase}
}

// GetAvailableSlots returns the bookable 45-minute slots for one
// kinesiologist on one date. Public endpoint; date is mandatory.
func (h *SlotHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	kinesiologistID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid kinesiologist ID", nil)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required (YYYY-MM-DD)", nil)
		return
	}

	slots, err := h.slotUsecase.GetAvailableSlots(r.Context(), kinesiologistID, dateStr)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate):
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}
