package scheduling

import (
	"barbershop-server/internal/models"
)

// BreakWindow is a fixed pause inside a working day.
type BreakWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayHours is the working-hours window that actually applies to one date
// after resolving overrides. Working == false means the professional cannot
// be booked that day at all.
type DayHours struct {
	Working bool          `json:"isWorking"`
	Start   string        `json:"startTime,omitempty"`
	End     string        `json:"endTime,omitempty"`
	Breaks  []BreakWindow `json:"breaks,omitempty"`
}

var noHours = DayHours{Working: false}

// EffectiveHours resolves the hours for one professional and date. Exactly
// one rule applies, by precedence: absence, then approved vacation, then
// special schedule (a full override, breaks included), then the regular
// weekday row. Pure function of the schedule rows and the date.
func EffectiveHours(p *models.Professional, date string) (DayHours, error) {
	weekday, err := Weekday(date)
	if err != nil {
		return noHours, err
	}

	for _, a := range p.Absences {
		if a.Date == date {
			return noHours, nil
		}
	}

	// ISO dates compare correctly as strings.
	for _, v := range p.Vacations {
		if v.Status == models.VacationApproved && v.StartDate <= date && date <= v.EndDate {
			return noHours, nil
		}
	}

	for _, s := range p.SpecialSchedules {
		if s.Date == date {
			h := DayHours{Working: true, Start: s.StartTime, End: s.EndTime}
			if s.BreakStart != "" && s.BreakEnd != "" {
				h.Breaks = append(h.Breaks, BreakWindow{Start: s.BreakStart, End: s.BreakEnd})
			}
			return h, nil
		}
	}

	for _, w := range p.WorkingHours {
		if w.Weekday != weekday {
			continue
		}
		if !w.IsWorking {
			return noHours, nil
		}
		h := DayHours{Working: true, Start: w.StartTime, End: w.EndTime}
		if w.BreakStart != "" && w.BreakEnd != "" {
			h.Breaks = append(h.Breaks, BreakWindow{Start: w.BreakStart, End: w.BreakEnd})
		}
		return h, nil
	}

	// No row for this weekday means not working.
	return noHours, nil
}
