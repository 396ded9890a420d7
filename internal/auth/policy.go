package auth

import "github.com/spec-kit/reservation-service/internal/domain"

// Action identifies a guarded operation. Every mutating code path asks Can
// instead of comparing roles inline.
type Action string

const (
	ActionFacilityManage     Action = "facility:manage"
	ActionReservationApprove Action = "reservation:approve"
	ActionReservationCancel  Action = "reservation:cancel"
	ActionReservationDelete  Action = "reservation:delete"
	ActionReservationView    Action = "reservation:view"
	ActionReservationListAll Action = "reservation:list_all"
	ActionUserAdmin          Action = "user:admin"
)

// Can reports whether the actor may perform the action. ownerID is the id of
// the owning user for ownership-scoped actions and ignored for role-only
// actions.
func Can(actor *domain.User, action Action, ownerID int64) bool {
	if actor == nil {
		return false
	}
	switch action {
	case ActionFacilityManage, ActionReservationApprove, ActionReservationListAll, ActionUserAdmin:
		return actor.IsAdmin()
	case ActionReservationCancel, ActionReservationDelete, ActionReservationView:
		return actor.IsAdmin() || actor.ID == ownerID
	default:
		return false
	}
}
