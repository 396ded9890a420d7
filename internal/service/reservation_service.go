package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/reservation-service/internal/auth"
	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/events"
	"github.com/spec-kit/reservation-service/internal/repository"
	apperrors "github.com/spec-kit/reservation-service/pkg/util"
)

// ReservationService coordinates the reservation lifecycle: creation,
// approval workflow, cancellation, deletion and listing.
type ReservationService struct {
	reservations repository.ReservationRepository
	facilities   repository.FacilityRepository
	dispatcher   events.Dispatcher
	now          func() time.Time
}

// ReservationDependencies bundles collaborators for the service.
type ReservationDependencies struct {
	ReservationRepo repository.ReservationRepository
	FacilityRepo    repository.FacilityRepository
	Dispatcher      events.Dispatcher
	Now             func() time.Time
}

// ReservationCreateInput describes a reservation intent.
type ReservationCreateInput struct {
	FacilityID int64
	StartTime  time.Time
	EndTime    time.Time
	Purpose    string
}

// ReservationListFilter narrows a listing to one criterion. At most one
// field may be set.
type ReservationListFilter struct {
	UserID     *int64
	FacilityID *int64
	Status     *domain.ReservationStatus
}

// NewReservationService constructs the service.
func NewReservationService(deps ReservationDependencies) *ReservationService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ReservationService{
		reservations: deps.ReservationRepo,
		facilities:   deps.FacilityRepo,
		dispatcher:   deps.Dispatcher,
		now:          now,
	}
}

// Create validates the intent and allocates a PENDING reservation.
func (s *ReservationService) Create(ctx context.Context, requester *domain.User, input ReservationCreateInput) (*domain.Reservation, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	if _, err := s.facilities.GetByID(ctx, input.FacilityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("facility", map[string]any{"facility_id": input.FacilityID})
		}
		return nil, err
	}

	if strings.TrimSpace(input.Purpose) == "" {
		return nil, apperrors.NewValidationError("purpose required", nil)
	}
	if !input.StartTime.Before(input.EndTime) {
		return nil, apperrors.NewValidationError("end must be after start", nil)
	}
	if input.StartTime.Before(s.now()) {
		return nil, apperrors.NewValidationError("cannot reserve a time in the past", nil)
	}

	overlapping, err := s.reservations.FindOverlapping(ctx, input.FacilityID, input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, apperrors.NewConflict("time slot already reserved", map[string]any{
			"facility_id": input.FacilityID,
		})
	}

	reservation := &domain.Reservation{
		FacilityID: input.FacilityID,
		UserID:     requester.ID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Purpose:    strings.TrimSpace(input.Purpose),
		Status:     domain.ReservationStatusPending,
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		// The store's exclusion constraint is the authority on overlap:
		// two concurrent creates both pass FindOverlapping, but only the
		// first insert commits.
		if isOverlapViolation(err) {
			return nil, apperrors.NewConflict("time slot already reserved", map[string]any{
				"facility_id": input.FacilityID,
			})
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationCreated,
		ReservationID: reservation.ID,
		ActorID:       requester.ID,
		Payload: events.ReservationCreatedPayload{
			FacilityID: reservation.FacilityID,
			StartTime:  reservation.StartTime,
			EndTime:    reservation.EndTime,
			Purpose:    reservation.Purpose,
		},
	})
	return reservation, nil
}

// TransitionStatus moves a reservation through its state machine.
// Approve/reject requires an administrator; cancellation is open to the
// owner as well. Terminal states accept nothing further.
func (s *ReservationService) TransitionStatus(ctx context.Context, actor *domain.User, id int64, next domain.ReservationStatus) (*domain.Reservation, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("reservation", map[string]any{"reservation_id": id})
		}
		return nil, err
	}

	switch next {
	case domain.ReservationStatusApproved, domain.ReservationStatusRejected:
		if !auth.Can(actor, auth.ActionReservationApprove, reservation.UserID) {
			return nil, apperrors.NewForbidden("administrator role required")
		}
	case domain.ReservationStatusCancelled:
		if !auth.Can(actor, auth.ActionReservationCancel, reservation.UserID) {
			return nil, apperrors.NewForbidden("only the owner or an administrator may cancel")
		}
	default:
		// PENDING is never a valid target; created is the only way in.
		return nil, apperrors.NewInvalidTransition(string(reservation.Status), string(next))
	}

	if !domain.CanTransition(reservation.Status, next) {
		return nil, apperrors.NewInvalidTransition(string(reservation.Status), string(next))
	}

	oldStatus := reservation.Status
	updated, err := s.reservations.UpdateStatus(ctx, reservation.ID, next)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationStatusChanged,
		ReservationID: updated.ID,
		ActorID:       actor.ID,
		Payload: events.ReservationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// Delete removes a reservation permanently. Unlike cancellation it is
// allowed at any status; only the owner or an administrator may do it.
func (s *ReservationService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("reservation", map[string]any{"reservation_id": id})
		}
		return err
	}
	if !auth.Can(actor, auth.ActionReservationDelete, reservation.UserID) {
		return apperrors.NewForbidden("only the owner or an administrator may delete")
	}

	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("reservation", map[string]any{"reservation_id": id})
		}
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationDeleted,
		ReservationID: reservation.ID,
		ActorID:       actor.ID,
		Payload: events.ReservationDeletedPayload{
			FacilityID: reservation.FacilityID,
			Status:     reservation.Status,
		},
	})
	return nil
}

// GetByID fetches a reservation, restricted to its owner or an administrator.
func (s *ReservationService) GetByID(ctx context.Context, actor *domain.User, id int64) (*domain.Reservation, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("reservation", map[string]any{"reservation_id": id})
		}
		return nil, err
	}
	if !auth.Can(actor, auth.ActionReservationView, reservation.UserID) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return reservation, nil
}

// List returns reservations matching the single supplied criterion.
// Non-administrators may only list their own; every broader listing needs
// the list-all capability. A status listing covers upcoming reservations
// only.
func (s *ReservationService) List(ctx context.Context, actor *domain.User, filter ReservationListFilter) ([]domain.Reservation, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	ownOnly := filter.UserID != nil && *filter.UserID == actor.ID &&
		filter.FacilityID == nil && filter.Status == nil
	if !ownOnly && !auth.Can(actor, auth.ActionReservationListAll, 0) {
		return nil, apperrors.NewForbidden("administrator role required for broad listing")
	}

	repoFilter := repository.ReservationFilter{
		UserID:     filter.UserID,
		FacilityID: filter.FacilityID,
		Status:     filter.Status,
	}
	if filter.Status != nil {
		from := s.now()
		repoFilter.StartAfter = &from
	}

	result, err := s.reservations.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []domain.Reservation{}
	}
	return result, nil
}

// pgExclusionViolation is the Postgres error code raised by the
// reservations_no_overlap exclusion constraint.
const pgExclusionViolation = "23P01"

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

func (s *ReservationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
