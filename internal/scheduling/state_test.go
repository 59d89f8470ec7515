package scheduling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"barbershop-server/internal/models"
)

func TestTransitionClosure(t *testing.T) {
	all := []models.AppointmentStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusInProgress,
		models.StatusCompleted,
		models.StatusCancelled,
		models.StatusNoShow,
	}
	legal := map[models.AppointmentStatus][]models.AppointmentStatus{
		models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled},
		models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled, models.StatusNoShow},
		models.StatusInProgress: {models.StatusCompleted, models.StatusNoShow},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, s := range legal[from] {
				if s == to {
					want = true
				}
			}
			require.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []models.AppointmentStatus{
		models.StatusCompleted,
		models.StatusCancelled,
		models.StatusNoShow,
	} {
		require.Empty(t, legalTransitions[terminal], "%s must be terminal", terminal)
	}
}

func TestKnownStatus(t *testing.T) {
	require.True(t, KnownStatus(models.StatusPending))
	require.True(t, KnownStatus(models.StatusNoShow))
	require.False(t, KnownStatus(models.AppointmentStatus("archived")))
}
