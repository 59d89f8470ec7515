package scheduling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"barbershop-server/internal/models"
)

func mondayHours() DayHours {
	return DayHours{
		Working: true,
		Start:   "08:00",
		End:     "18:00",
		Breaks:  []BreakWindow{{Start: "12:00", End: "13:00"}},
	}
}

func TestAvailableSlotsFullDay(t *testing.T) {
	slots, err := AvailableSlots(mondayHours(), 30, 30, nil)
	require.NoError(t, err)

	// 08:00..17:30 on a 30-minute grid minus the two break points.
	require.Len(t, slots, 18)
	require.Contains(t, slots, "08:00")
	require.Contains(t, slots, "08:30")
	require.Contains(t, slots, "11:30")
	require.Contains(t, slots, "13:00")
	require.Contains(t, slots, "17:30")
	require.NotContains(t, slots, "12:00")
	require.NotContains(t, slots, "12:30")

	// Ascending order.
	for i := 1; i < len(slots); i++ {
		require.Less(t, slots[i-1], slots[i])
	}
}

func TestAvailableSlotsClosingBoundary(t *testing.T) {
	slots, err := AvailableSlots(mondayHours(), 60, 30, nil)
	require.NoError(t, err)

	// 17:00 + 60min lands exactly on closing and is allowed.
	require.Contains(t, slots, "17:00")
	// 17:30 + 60min would run past closing.
	require.NotContains(t, slots, "17:30")
}

func TestAvailableSlotsLongVisitSpansBreak(t *testing.T) {
	slots, err := AvailableSlots(mondayHours(), 90, 30, nil)
	require.NoError(t, err)

	// 10:30 + 90min ends exactly at the break start; half-open, allowed.
	require.Contains(t, slots, "10:30")
	// 11:00 + 90min would run into the break.
	require.NotContains(t, slots, "11:00")
	require.NotContains(t, slots, "11:30")
	// First slot after the break.
	require.Contains(t, slots, "13:00")
}

func TestAvailableSlotsExcludesBookings(t *testing.T) {
	existing := []models.Appointment{
		{StartTime: "08:00", EndTime: "08:30", Status: models.StatusPending},
	}
	slots, err := AvailableSlots(mondayHours(), 30, 30, existing)
	require.NoError(t, err)
	require.NotContains(t, slots, "08:00")
	require.Contains(t, slots, "08:30")
}

func TestAvailableSlotsCancelledBookingDoesNotBlock(t *testing.T) {
	existing := []models.Appointment{
		{StartTime: "08:00", EndTime: "08:30", Status: models.StatusCancelled},
	}
	slots, err := AvailableSlots(mondayHours(), 30, 30, existing)
	require.NoError(t, err)
	require.Contains(t, slots, "08:00")
}

func TestAvailableSlotsOverlapIsHalfOpen(t *testing.T) {
	existing := []models.Appointment{
		{StartTime: "09:00", EndTime: "10:00", Status: models.StatusConfirmed},
	}
	slots, err := AvailableSlots(mondayHours(), 60, 30, existing)
	require.NoError(t, err)

	// Ending exactly at 09:00 or starting exactly at 10:00 is fine.
	require.Contains(t, slots, "08:00")
	require.Contains(t, slots, "10:00")
	// Anything straddling the booking is not.
	require.NotContains(t, slots, "08:30")
	require.NotContains(t, slots, "09:00")
	require.NotContains(t, slots, "09:30")
}

func TestAvailableSlotsNotWorking(t *testing.T) {
	slots, err := AvailableSlots(DayHours{Working: false}, 30, 30, nil)
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestAvailableSlotsInvalidDuration(t *testing.T) {
	_, err := AvailableSlots(mondayHours(), 0, 30, nil)
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = AvailableSlots(mondayHours(), -15, 30, nil)
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestAvailableSlotsCustomGridStep(t *testing.T) {
	slots, err := AvailableSlots(DayHours{Working: true, Start: "09:00", End: "10:00"}, 15, 15, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"09:00", "09:15", "09:30", "09:45"}, slots)
}
