package dto

import "github.com/google/uuid"

// Request DTOs

type CreateKinesiologistRequest struct {
	Email       string `json:"email" validate:"required,email"`
	FullName    string `json:"full_name" validate:"required"`
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Specialty   string `json:"specialty" validate:"omitempty,max=100"`
	Box         string `json:"box" validate:"omitempty,max=50"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// UpdateKinesiologistProfileRequest is a partial update: nil fields keep
// their current value.
type UpdateKinesiologistProfileRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Specialty   *string `json:"specialty"`
	Box         *string `json:"box"`
	ImageURL    *string `json:"image_url"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

// Response DTOs

type KinesiologistResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Specialty   string    `json:"specialty,omitempty"`
	Box         string    `json:"box,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
}

type KinesiologistListResponse struct {
	Kinesiologists []KinesiologistResponse `json:"kinesiologists"`
	Total          int                     `json:"total"`
}
