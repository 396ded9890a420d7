package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReservationStatus(t *testing.T) {
	cases := []struct {
		input string
		want  ReservationStatus
	}{
		{"PENDING", ReservationStatusPending},
		{"pending", ReservationStatusPending},
		{" Approved ", ReservationStatusApproved},
		{"REJECTED", ReservationStatusRejected},
		{"cancelled", ReservationStatusCancelled},
		// legacy alias used by older clients
		{"CONFIRMED", ReservationStatusApproved},
		{"confirmed", ReservationStatusApproved},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseReservationStatus(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unknown input errors", func(t *testing.T) {
		for _, input := range []string{"", "DONE", "APPROVEDX"} {
			_, err := ParseReservationStatus(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		current ReservationStatus
		next    ReservationStatus
		want    bool
	}{
		{ReservationStatusPending, ReservationStatusApproved, true},
		{ReservationStatusPending, ReservationStatusRejected, true},
		{ReservationStatusPending, ReservationStatusCancelled, true},
		{ReservationStatusPending, ReservationStatusPending, false},
		{ReservationStatusApproved, ReservationStatusCancelled, true},
		{ReservationStatusApproved, ReservationStatusRejected, false},
		{ReservationStatusApproved, ReservationStatusPending, false},
		{ReservationStatusRejected, ReservationStatusApproved, false},
		{ReservationStatusRejected, ReservationStatusCancelled, false},
		{ReservationStatusCancelled, ReservationStatusApproved, false},
		{ReservationStatusCancelled, ReservationStatusCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.current, tc.next),
			"%s -> %s", tc.current, tc.next)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, ReservationStatusPending.IsTerminal())
	assert.False(t, ReservationStatusApproved.IsTerminal())
	assert.True(t, ReservationStatusRejected.IsTerminal())
	assert.True(t, ReservationStatusCancelled.IsTerminal())
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	reservation := &Reservation{
		StartTime: base,
		EndTime:   base.Add(2 * time.Hour),
	}

	t.Run("contained window overlaps", func(t *testing.T) {
		assert.True(t, reservation.Overlaps(base.Add(30*time.Minute), base.Add(time.Hour)))
	})

	t.Run("partial overlap at either edge", func(t *testing.T) {
		assert.True(t, reservation.Overlaps(base.Add(-time.Hour), base.Add(time.Hour)))
		assert.True(t, reservation.Overlaps(base.Add(time.Hour), base.Add(3*time.Hour)))
	})

	t.Run("boundary touch does not overlap", func(t *testing.T) {
		assert.False(t, reservation.Overlaps(base.Add(-time.Hour), base))
		assert.False(t, reservation.Overlaps(base.Add(2*time.Hour), base.Add(3*time.Hour)))
	})

	t.Run("disjoint windows do not overlap", func(t *testing.T) {
		assert.False(t, reservation.Overlaps(base.Add(-2*time.Hour), base.Add(-time.Hour)))
		assert.False(t, reservation.Overlaps(base.Add(3*time.Hour), base.Add(4*time.Hour)))
	})
}
