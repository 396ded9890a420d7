package events

import (
	"time"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReservationCreated       EventType = "reservation_created"
	EventReservationStatusChanged EventType = "reservation_status_changed"
	EventReservationDeleted       EventType = "reservation_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ReservationID int64       `json:"reservation_id"`
	ActorID       int64       `json:"actor_id"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// ReservationCreatedPayload payload.
type ReservationCreatedPayload struct {
	FacilityID int64     `json:"facility_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Purpose    string    `json:"purpose"`
}

// ReservationStatusChangedPayload payload.
type ReservationStatusChangedPayload struct {
	OldStatus domain.ReservationStatus `json:"old_status"`
	NewStatus domain.ReservationStatus `json:"new_status"`
}

// ReservationDeletedPayload payload.
type ReservationDeletedPayload struct {
	FacilityID int64                    `json:"facility_id"`
	Status     domain.ReservationStatus `json:"status"`
}
