package scheduling

import (
	"barbershop-server/internal/models"
)

// legalTransitions is the full appointment lifecycle. completed, cancelled
// and no_show are terminal.
var legalTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled, models.StatusNoShow},
	models.StatusInProgress: {models.StatusCompleted, models.StatusNoShow},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
	models.StatusNoShow:     {},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// KnownStatus reports whether s is one of the defined appointment statuses.
func KnownStatus(s models.AppointmentStatus) bool {
	_, ok := legalTransitions[s]
	return ok
}
