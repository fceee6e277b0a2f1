package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/usecase"
	"kine-booking-api/pkg/response"
	"kine-booking-api/pkg/validator"
)

type KinesiologistHandler struct {
	kinesiologistUsecase usecase.KinesiologistUsecase
	validator            *validator.CustomValidator
}

func NewKinesiologistHandler(kinesiologistUsecase usecase.KinesiologistUsecase, validator *validator.CustomValidator) *KinesiologistHandler {
	return &KinesiologistHandler{
		kinesiologistUsecase: kinesiologistUsecase,
		validator:            validator,
	}
}

func (h *KinesiologistHandler) List(w http.ResponseWriter, r *http.Request) {
	kinesiologists, err := h.kinesiologistUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get kinesiologists")
		return
	}

	response.Success(w, http.StatusOK, "Kinesiologists retrieved successfully", kinesiologists)
}

func (h *KinesiologistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateKinesiologistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	kinesiologist, err := h.kinesiologistUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			response.Conflict(w, "Email is already registered")
		default:
			response.InternalServerError(w, "Failed to create kinesiologist")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Kinesiologist created successfully", kinesiologist)
}

func (h *KinesiologistHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.kinesiologistUsecase.GetProfile(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotAKinesiologist):
			response.Forbidden(w, "User is not a kinesiologist")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *KinesiologistHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateKinesiologistProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.kinesiologistUsecase.UpdateProfile(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotAKinesiologist):
			response.Forbidden(w, "User is not a kinesiologist")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}
