package notify

import (
	"log"

	"barbershop-server/internal/models"
)

// LogNotifier is the default notification transport: it writes booking
// events to the server log. Real delivery (email/SMS/WhatsApp) plugs in by
// implementing the engine's Notifier interface instead; the engine already
// calls it fire-and-forget, so a slow transport never blocks a booking.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a notifier writing to the standard logger.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.Default()}
}

func (n *LogNotifier) AppointmentBooked(a models.Appointment) {
	n.logger.Printf("notify: appointment %s booked for %s on %s at %s (%d min)",
		a.ID, a.ClientName, a.Date, a.StartTime, a.TotalDuration)
}

func (n *LogNotifier) AppointmentCancelled(a models.Appointment) {
	n.logger.Printf("notify: appointment %s for %s on %s at %s cancelled",
		a.ID, a.ClientName, a.Date, a.StartTime)
}

func (n *LogNotifier) AppointmentRescheduled(a models.Appointment) {
	n.logger.Printf("notify: appointment %s for %s moved to %s at %s",
		a.ID, a.ClientName, a.Date, a.StartTime)
}
