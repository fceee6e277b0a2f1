package converter

import (
	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/domain/entity"
)

// AvailabilityToResponse converts an Availability entity to its DTO
func AvailabilityToResponse(availability *entity.Availability) *dto.AvailabilityResponse {
	if availability == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:        availability.ID,
		Day:       availability.Day,
		DayKey:    entity.WeekdayKeyFor(availability.Day),
		StartTime: entity.HHMM(availability.StartTime),
		EndTime:   entity.HHMM(availability.EndTime),
	}
}

// AvailabilitiesToResponses converts a slice of Availability entities to DTOs
func AvailabilitiesToResponses(availabilities []entity.Availability) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(availabilities))
	for i := range availabilities {
		resp := AvailabilityToResponse(&availabilities[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
