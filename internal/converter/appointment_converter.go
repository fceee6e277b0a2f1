package converter

import (
	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:               appointment.ID,
		KinesiologistID:  appointment.KinesiologistID,
		PatientID:        appointment.PatientID,
		Date:             appointment.Date.Format("2006-01-02"),
		StartTime:        entity.HHMM(appointment.StartTime),
		EndTime:          entity.HHMM(appointment.EndTime),
		Status:           string(appointment.Status),
		StatusLabel:      appointment.Status.Label(),
		CommentUpdatedAt: appointment.CommentUpdatedAt,
		CreatedAt:        appointment.CreatedAt,
	}

	if appointment.KineComment != nil {
		response.KineComment = *appointment.KineComment
	}
	if appointment.Kinesiologist.UserID != uuid.Nil {
		response.KinesiologistName = appointment.Kinesiologist.Name
	}
	if appointment.Patient.UserID != uuid.Nil && appointment.Patient.User.ID != uuid.Nil {
		response.PatientName = appointment.Patient.User.FullName
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
