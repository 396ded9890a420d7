package dto

import (
	"time"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// FacilityRequest payload for create/update.
type FacilityRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Capacity    int     `json:"capacity"`
	Location    string  `json:"location"`
	ImageURL    *string `json:"image_url"`
}

// FacilityResponse is the public view of a facility.
type FacilityResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	Location    string    `json:"location"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFacilityResponse converts the domain model.
func NewFacilityResponse(facility *domain.Facility) FacilityResponse {
	return FacilityResponse{
		ID:          facility.ID,
		Name:        facility.Name,
		Description: facility.Description,
		Capacity:    facility.Capacity,
		Location:    facility.Location,
		ImageURL:    facility.ImageURL,
		CreatedAt:   facility.CreatedAt,
		UpdatedAt:   facility.UpdatedAt,
	}
}
