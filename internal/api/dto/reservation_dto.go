package dto

import (
	"time"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// ReservationCreateRequest payload.
type ReservationCreateRequest struct {
	FacilityID int64     `json:"facility_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Purpose    string    `json:"purpose"`
}

// ReservationStatusRequest payload for PATCH /reservations/:id/status.
type ReservationStatusRequest struct {
	Status string `json:"status"`
}

// ReservationResponse is the public view of a reservation.
type ReservationResponse struct {
	ID         int64                    `json:"id"`
	FacilityID int64                    `json:"facility_id"`
	UserID     int64                    `json:"user_id"`
	StartTime  time.Time                `json:"start_time"`
	EndTime    time.Time                `json:"end_time"`
	Purpose    string                   `json:"purpose"`
	Status     domain.ReservationStatus `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// NewReservationResponse converts the domain model.
func NewReservationResponse(reservation *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         reservation.ID,
		FacilityID: reservation.FacilityID,
		UserID:     reservation.UserID,
		StartTime:  reservation.StartTime,
		EndTime:    reservation.EndTime,
		Purpose:    reservation.Purpose,
		Status:     reservation.Status,
		CreatedAt:  reservation.CreatedAt,
		UpdatedAt:  reservation.UpdatedAt,
	}
}

// NewReservationResponses converts a slice.
func NewReservationResponses(reservations []domain.Reservation) []ReservationResponse {
	items := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		items = append(items, NewReservationResponse(&reservations[i]))
	}
	return items
}
