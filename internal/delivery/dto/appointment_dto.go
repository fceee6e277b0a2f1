package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CompleteAppointmentRequest struct {
	KineComment string `json:"kine_comment"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                uuid.UUID  `json:"id"`
	KinesiologistID   uuid.UUID  `json:"kinesiologist_id"`
	PatientID         uuid.UUID  `json:"patient_id"`
	KinesiologistName string     `json:"kinesiologist_name,omitempty"`
	PatientName       string     `json:"patient_name,omitempty"`
	Date              string     `json:"date"`
	StartTime         string     `json:"start_time"`
	EndTime           string     `json:"end_time"`
	Status            string     `json:"status"`
	StatusLabel       string     `json:"status_label"`
	KineComment       string     `json:"kine_comment,omitempty"`
	CommentUpdatedAt  *time.Time `json:"comment_updated_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
