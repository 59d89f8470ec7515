package scheduling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"barbershop-server/internal/models"
)

// monday/sunday in the first week of 2024.
const (
	monday = "2024-01-01"
	sunday = "2024-01-07"
)

func weeklySchedule() *models.Professional {
	return &models.Professional{
		WorkingHours: []models.WorkingHours{
			{Weekday: 1, IsWorking: true, StartTime: "08:00", EndTime: "18:00", BreakStart: "12:00", BreakEnd: "13:00"},
			{Weekday: 2, IsWorking: true, StartTime: "09:00", EndTime: "17:00"},
			{Weekday: 0, IsWorking: false},
		},
	}
}

func TestEffectiveHoursRegularDay(t *testing.T) {
	h, err := EffectiveHours(weeklySchedule(), monday)
	require.NoError(t, err)
	require.True(t, h.Working)
	require.Equal(t, "08:00", h.Start)
	require.Equal(t, "18:00", h.End)
	require.Equal(t, []BreakWindow{{Start: "12:00", End: "13:00"}}, h.Breaks)
}

func TestEffectiveHoursNonWorkingDay(t *testing.T) {
	h, err := EffectiveHours(weeklySchedule(), sunday)
	require.NoError(t, err)
	require.False(t, h.Working)
}

func TestEffectiveHoursNoRowForWeekday(t *testing.T) {
	// Wednesday has no row at all.
	h, err := EffectiveHours(weeklySchedule(), "2024-01-03")
	require.NoError(t, err)
	require.False(t, h.Working)
}

func TestEffectiveHoursSpecialScheduleOverridesRegular(t *testing.T) {
	p := weeklySchedule()
	p.SpecialSchedules = []models.SpecialSchedule{
		{Date: monday, StartTime: "10:00", EndTime: "20:00"},
	}
	h, err := EffectiveHours(p, monday)
	require.NoError(t, err)
	require.True(t, h.Working)
	require.Equal(t, "10:00", h.Start)
	require.Equal(t, "20:00", h.End)
	// Full override: the regular Monday break is gone.
	require.Empty(t, h.Breaks)
}

func TestEffectiveHoursSpecialScheduleWithOwnBreak(t *testing.T) {
	p := weeklySchedule()
	p.SpecialSchedules = []models.SpecialSchedule{
		{Date: monday, StartTime: "10:00", EndTime: "20:00", BreakStart: "14:00", BreakEnd: "14:30"},
	}
	h, err := EffectiveHours(p, monday)
	require.NoError(t, err)
	require.Equal(t, []BreakWindow{{Start: "14:00", End: "14:30"}}, h.Breaks)
}

func TestEffectiveHoursVacation(t *testing.T) {
	p := weeklySchedule()
	p.Vacations = []models.Vacation{
		{StartDate: "2023-12-28", EndDate: "2024-01-02", Status: models.VacationApproved},
	}
	h, err := EffectiveHours(p, monday)
	require.NoError(t, err)
	require.False(t, h.Working)

	// A pending request does not block availability.
	p.Vacations[0].Status = models.VacationPending
	h, err = EffectiveHours(p, monday)
	require.NoError(t, err)
	require.True(t, h.Working)

	// Neither does a rejected one.
	p.Vacations[0].Status = models.VacationRejected
	h, err = EffectiveHours(p, monday)
	require.NoError(t, err)
	require.True(t, h.Working)
}

func TestEffectiveHoursVacationBeatsSpecialSchedule(t *testing.T) {
	p := weeklySchedule()
	p.Vacations = []models.Vacation{
		{StartDate: monday, EndDate: monday, Status: models.VacationApproved},
	}
	p.SpecialSchedules = []models.SpecialSchedule{
		{Date: monday, StartTime: "10:00", EndTime: "20:00"},
	}
	h, err := EffectiveHours(p, monday)
	require.NoError(t, err)
	require.False(t, h.Working)
}

func TestEffectiveHoursAbsenceWinsOverEverything(t *testing.T) {
	p := weeklySchedule()
	p.Absences = []models.Absence{{Date: monday, Justified: false}}
	p.Vacations = []models.Vacation{
		{StartDate: monday, EndDate: monday, Status: models.VacationApproved},
	}
	p.SpecialSchedules = []models.SpecialSchedule{
		{Date: monday, StartTime: "10:00", EndTime: "20:00"},
	}
	h, err := EffectiveHours(p, monday)
	require.NoError(t, err)
	require.False(t, h.Working)
}

func TestEffectiveHoursInvalidDate(t *testing.T) {
	_, err := EffectiveHours(weeklySchedule(), "not-a-date")
	require.Error(t, err)
}
