package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/reservation-service/internal/domain"
)

func TestCan(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	owner := &domain.User{ID: 2, Role: domain.RoleUser}
	stranger := &domain.User{ID: 3, Role: domain.RoleUser}

	adminOnly := []Action{
		ActionFacilityManage,
		ActionReservationApprove,
		ActionReservationListAll,
		ActionUserAdmin,
	}
	for _, action := range adminOnly {
		t.Run(string(action), func(t *testing.T) {
			assert.True(t, Can(admin, action, owner.ID))
			assert.False(t, Can(owner, action, owner.ID))
			assert.False(t, Can(stranger, action, owner.ID))
		})
	}

	ownerOrAdmin := []Action{
		ActionReservationCancel,
		ActionReservationDelete,
		ActionReservationView,
	}
	for _, action := range ownerOrAdmin {
		t.Run(string(action), func(t *testing.T) {
			assert.True(t, Can(admin, action, owner.ID))
			assert.True(t, Can(owner, action, owner.ID))
			assert.False(t, Can(stranger, action, owner.ID))
		})
	}

	t.Run("nil actor can do nothing", func(t *testing.T) {
		assert.False(t, Can(nil, ActionReservationView, 0))
	})

	t.Run("unknown action is denied", func(t *testing.T) {
		assert.False(t, Can(admin, Action("bogus"), 0))
	})
}
