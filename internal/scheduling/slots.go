package scheduling

import (
	"barbershop-server/internal/models"
)

// DefaultGridStepMinutes is the slot granularity used when no explicit step
// is configured.
const DefaultGridStepMinutes = 30

// AvailableSlots walks a stepMinutes grid across the day's working window
// and returns every start time where a booking of durationMinutes would fit:
// inside opening hours, clear of breaks, and clear of every non-cancelled
// appointment already on the day. Intervals are half-open, so a booking may
// start exactly when another ends and a slot may end exactly at closing.
//
// The result is recomputed on every call; slots are never persisted.
func AvailableSlots(hours DayHours, durationMinutes, stepMinutes int, existing []models.Appointment) ([]string, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if stepMinutes <= 0 {
		stepMinutes = DefaultGridStepMinutes
	}
	if !hours.Working {
		return nil, nil
	}

	open, err := ParseClock(hours.Start)
	if err != nil {
		return nil, err
	}
	closing, err := ParseClock(hours.End)
	if err != nil {
		return nil, err
	}

	type window struct{ start, end int }

	var breaks []window
	for _, b := range hours.Breaks {
		bs, err := ParseClock(b.Start)
		if err != nil {
			return nil, err
		}
		be, err := ParseClock(b.End)
		if err != nil {
			return nil, err
		}
		breaks = append(breaks, window{bs, be})
	}

	var busy []window
	for _, a := range existing {
		if a.Status == models.StatusCancelled {
			continue
		}
		as, err := ParseClock(a.StartTime)
		if err != nil {
			return nil, err
		}
		ae, err := ParseClock(a.EndTime)
		if err != nil {
			return nil, err
		}
		busy = append(busy, window{as, ae})
	}

	var slots []string
grid:
	for t := open; t+durationMinutes <= closing; t += stepMinutes {
		for _, b := range breaks {
			if overlaps(t, t+durationMinutes, b.start, b.end) {
				continue grid
			}
		}
		for _, b := range busy {
			if overlaps(t, t+durationMinutes, b.start, b.end) {
				continue grid
			}
		}
		slots = append(slots, FormatClock(t))
	}
	return slots, nil
}
