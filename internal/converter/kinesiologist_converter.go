package converter

import (
	"kine-booking-api/internal/delivery/dto"
	"kine-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// KinesiologistToResponse converts a KinesiologistProfile entity to its DTO
func KinesiologistToResponse(profile *entity.KinesiologistProfile) *dto.KinesiologistResponse {
	if profile == nil {
		return nil
	}

	response := &dto.KinesiologistResponse{
		ID:          profile.UserID,
		Name:        profile.Name,
		PhoneNumber: profile.PhoneNumber,
		Specialty:   profile.Specialty,
		Box:         profile.Box,
		ImageURL:    profile.ImageURL,
	}

	if profile.User.ID != uuid.Nil {
		response.FullName = profile.User.FullName
		response.Email = profile.User.Email
		if profile.User.IsActive != nil {
			response.IsActive = *profile.User.IsActive
		}
	}

	return response
}

// KinesiologistsToResponses converts a slice of profiles to DTOs
func KinesiologistsToResponses(profiles []entity.KinesiologistProfile) []dto.KinesiologistResponse {
	responses := make([]dto.KinesiologistResponse, len(profiles))
	for i := range profiles {
		resp := KinesiologistToResponse(&profiles[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
