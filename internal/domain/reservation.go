package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReservationStatus enumerates lifecycle states for reservations.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusApproved  ReservationStatus = "APPROVED"
	ReservationStatusRejected  ReservationStatus = "REJECTED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// legacyStatusConfirmed is accepted on input only. Older clients send it
// where APPROVED is meant; it is normalized at the boundary and never stored.
const legacyStatusConfirmed = "CONFIRMED"

// ParseReservationStatus normalizes a status string to the canonical enum.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ReservationStatusPending):
		return ReservationStatusPending, nil
	case string(ReservationStatusApproved), legacyStatusConfirmed:
		return ReservationStatusApproved, nil
	case string(ReservationStatusRejected):
		return ReservationStatusRejected, nil
	case string(ReservationStatusCancelled):
		return ReservationStatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}

// IsTerminal reports whether no further status transition is possible.
// APPROVED is not terminal; it may still be cancelled.
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationStatusRejected, ReservationStatusCancelled:
		return true
	}
	return false
}

var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending: {
		ReservationStatusApproved,
		ReservationStatusRejected,
		ReservationStatusCancelled,
	},
	ReservationStatusApproved:  {ReservationStatusCancelled},
	ReservationStatusRejected:  {},
	ReservationStatusCancelled: {},
}

// CanTransition reports whether the status change is permitted by the
// reservation state machine. APPROVED may still be cancelled; REJECTED and
// CANCELLED accept nothing.
func CanTransition(current, next ReservationStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Reservation is a time-bounded claim on a facility by a user.
type Reservation struct {
	ID         int64
	FacilityID int64
	UserID     int64
	StartTime  time.Time
	EndTime    time.Time
	Purpose    string
	Status     ReservationStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Overlaps reports whether [start, end) conflicts with the reservation's
// window under half-open interval semantics. A boundary touch where one
// interval ends exactly when the other starts is not a conflict.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && start.Before(r.EndTime)
}
