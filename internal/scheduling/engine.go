package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"barbershop-server/internal/models"
)

// ServiceCatalog resolves catalogue entries. Implementations return
// (nil, nil) when the id does not exist.
type ServiceCatalog interface {
	GetService(ctx context.Context, id string) (*models.Service, error)
}

// ProfessionalStore loads a professional with all schedule rows attached.
// Implementations return (nil, nil) when the id does not exist.
type ProfessionalStore interface {
	GetProfessional(ctx context.Context, id string) (*models.Professional, error)
}

// AppointmentStore is the engine's view of appointment persistence.
// GetAppointment returns (nil, nil) when the id does not exist.
type AppointmentStore interface {
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListDay(ctx context.Context, professionalID, date string) ([]models.Appointment, error)
	Create(ctx context.Context, a *models.Appointment) error
	Update(ctx context.Context, a *models.Appointment) error
}

// Notifier receives booking lifecycle events. Calls are made from their own
// goroutine and never awaited, so implementations may do slow I/O.
type Notifier interface {
	AppointmentBooked(a models.Appointment)
	AppointmentCancelled(a models.Appointment)
	AppointmentRescheduled(a models.Appointment)
}

// BookingRequest is the input to Book.
type BookingRequest struct {
	ProfessionalID string
	ServiceIDs     []string // ordered, at least one
	Date           string   // "YYYY-MM-DD"
	StartTime      string   // "HH:MM"
	ClientName     string
	ClientPhone    string
	ClientEmail    string
}

// DayAvailability is the full picture of one professional-day, shaped for
// calendar rendering: resolved hours, the bookings on the day, and the grid
// points where not even a single grid-step booking would fit.
type DayAvailability struct {
	Date         string               `json:"date"`
	Hours        DayHours             `json:"workingHours"`
	Appointments []models.Appointment `json:"appointments"`
	BlockedSlots []string             `json:"blockedSlots"`
}

// Engine is the availability query service: the only entry point handlers
// and reports use to read or mutate booking state. All writes to one
// professional-day go through a per-day mutex so the availability check and
// the write behave as a single operation; two concurrent requests for the
// same slot cannot both win.
type Engine struct {
	catalog       ServiceCatalog
	professionals ProfessionalStore
	appointments  AppointmentStore
	notifier      Notifier
	gridStep      int

	mu       sync.Mutex
	dayLocks map[string]*sync.Mutex
}

// NewEngine constructs the booking engine. notifier may be nil.
// gridStepMinutes <= 0 falls back to DefaultGridStepMinutes.
func NewEngine(catalog ServiceCatalog, professionals ProfessionalStore, appointments AppointmentStore, notifier Notifier, gridStepMinutes int) *Engine {
	if catalog == nil || professionals == nil || appointments == nil {
		panic("scheduling: catalog, professional and appointment stores are required")
	}
	if gridStepMinutes <= 0 {
		gridStepMinutes = DefaultGridStepMinutes
	}
	return &Engine{
		catalog:       catalog,
		professionals: professionals,
		appointments:  appointments,
		notifier:      notifier,
		gridStep:      gridStepMinutes,
		dayLocks:      make(map[string]*sync.Mutex),
	}
}

// GridStep returns the configured slot granularity in minutes.
func (e *Engine) GridStep() int { return e.gridStep }

func (e *Engine) dayLock(professionalID, date string) *sync.Mutex {
	key := professionalID + "|" + date
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.dayLocks[key]
	if !ok {
		l = &sync.Mutex{}
		e.dayLocks[key] = l
	}
	return l
}

// lockDays acquires the locks for two professional-days in a stable order so
// reschedules across days cannot deadlock against each other.
func (e *Engine) lockDays(professionalID, dateA, dateB string) func() {
	if dateA == dateB {
		l := e.dayLock(professionalID, dateA)
		l.Lock()
		return l.Unlock
	}
	first, second := dateA, dateB
	if second < first {
		first, second = second, first
	}
	l1 := e.dayLock(professionalID, first)
	l2 := e.dayLock(professionalID, second)
	l1.Lock()
	l2.Lock()
	return func() {
		l2.Unlock()
		l1.Unlock()
	}
}

// EffectiveHours resolves the working hours that apply to one date.
func (e *Engine) EffectiveHours(ctx context.Context, professionalID, date string) (DayHours, error) {
	p, err := e.professionals.GetProfessional(ctx, professionalID)
	if err != nil {
		return DayHours{}, err
	}
	if p == nil {
		return DayHours{}, ErrUnknownProfessional
	}
	return EffectiveHours(p, date)
}

// AvailableSlots returns the bookable start times for a visit of the given
// duration on one professional-day.
func (e *Engine) AvailableSlots(ctx context.Context, professionalID, date string, durationMinutes int) ([]string, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	p, err := e.professionals.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrUnknownProfessional
	}
	hours, err := EffectiveHours(p, date)
	if err != nil {
		return nil, err
	}
	existing, err := e.appointments.ListDay(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}
	return AvailableSlots(hours, durationMinutes, e.gridStep, existing)
}

// DayAvailability returns hours, bookings and blocked grid points for one
// professional-day.
func (e *Engine) DayAvailability(ctx context.Context, professionalID, date string) (*DayAvailability, error) {
	p, err := e.professionals.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrUnknownProfessional
	}
	hours, err := EffectiveHours(p, date)
	if err != nil {
		return nil, err
	}
	existing, err := e.appointments.ListDay(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}
	day := &DayAvailability{Date: date, Hours: hours, Appointments: existing}
	if !hours.Working {
		return day, nil
	}

	free, err := AvailableSlots(hours, e.gridStep, e.gridStep, existing)
	if err != nil {
		return nil, err
	}
	open, err := ParseClock(hours.Start)
	if err != nil {
		return nil, err
	}
	closing, err := ParseClock(hours.End)
	if err != nil {
		return nil, err
	}
	isFree := make(map[string]bool, len(free))
	for _, s := range free {
		isFree[s] = true
	}
	for t := open; t+e.gridStep <= closing; t += e.gridStep {
		if s := FormatClock(t); !isFree[s] {
			day.BlockedSlots = append(day.BlockedSlots, s)
		}
	}
	return day, nil
}

// Book validates a booking request against current availability and, if the
// slot is free, creates the appointment in pending status. The availability
// check and the write run under the professional-day lock.
func (e *Engine) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, ErrUnknownService
	}

	var (
		items         []models.AppointmentItem
		totalDuration int
		totalPrice    float64
	)
	for i, id := range req.ServiceIDs {
		svc, err := e.catalog.GetService(ctx, id)
		if err != nil {
			return nil, err
		}
		if svc == nil || !svc.IsActive {
			return nil, ErrUnknownService
		}
		items = append(items, models.AppointmentItem{
			ServiceID:   svc.ID,
			Position:    i,
			ServiceName: svc.Name,
			Duration:    svc.Duration,
			Price:       svc.Price,
		})
		totalDuration += svc.Duration
		totalPrice += svc.Price
	}
	if totalDuration <= 0 {
		return nil, ErrInvalidDuration
	}

	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrSlotUnavailable
	}
	startTime := FormatClock(start)
	endTime := FormatClock(start + totalDuration)

	unlock := e.lockDays(req.ProfessionalID, req.Date, req.Date)
	defer unlock()

	slots, err := e.AvailableSlots(ctx, req.ProfessionalID, req.Date, totalDuration)
	if err != nil {
		return nil, err
	}
	if !contains(slots, startTime) {
		return nil, ErrSlotUnavailable
	}

	now := time.Now()
	appt := &models.Appointment{
		BaseModel: models.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		StartTime:      startTime,
		EndTime:        endTime,
		Status:         models.StatusPending,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		TotalDuration:  totalDuration,
		TotalPrice:     totalPrice,
		Items:          items,
	}
	if err := e.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	e.dispatch(func(n Notifier, a models.Appointment) { n.AppointmentBooked(a) }, *appt)
	return appt, nil
}

// Cancel transitions a pending or confirmed appointment to cancelled,
// freeing its slot for subsequent queries.
func (e *Engine) Cancel(ctx context.Context, id string) error {
	appt, err := e.appointments.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if appt == nil {
		return ErrUnknownAppointment
	}

	unlock := e.lockDays(appt.ProfessionalID, appt.Date, appt.Date)
	defer unlock()

	// Reload under the lock; the status may have moved since the first read.
	appt, err = e.appointments.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if appt == nil {
		return ErrUnknownAppointment
	}
	if !CanTransition(appt.Status, models.StatusCancelled) {
		return ErrInvalidTransition
	}
	appt.Status = models.StatusCancelled
	appt.UpdatedAt = time.Now()
	if err := e.appointments.Update(ctx, appt); err != nil {
		return err
	}

	e.dispatch(func(n Notifier, a models.Appointment) { n.AppointmentCancelled(a) }, *appt)
	return nil
}

// Reschedule moves an appointment to a new date and start time, keeping its
// id, status and service list. The appointment being moved is excluded from
// its own overlap check, so shifting within the same day works.
func (e *Engine) Reschedule(ctx context.Context, id, newDate, newStartTime string) (*models.Appointment, error) {
	appt, err := e.appointments.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrUnknownAppointment
	}

	start, err := ParseClock(newStartTime)
	if err != nil {
		return nil, ErrSlotUnavailable
	}

	unlock := e.lockDays(appt.ProfessionalID, appt.Date, newDate)
	defer unlock()

	appt, err = e.appointments.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrUnknownAppointment
	}

	p, err := e.professionals.GetProfessional(ctx, appt.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrUnknownProfessional
	}
	hours, err := EffectiveHours(p, newDate)
	if err != nil {
		return nil, err
	}
	existing, err := e.appointments.ListDay(ctx, appt.ProfessionalID, newDate)
	if err != nil {
		return nil, err
	}
	others := existing[:0:0]
	for _, a := range existing {
		if a.ID != appt.ID {
			others = append(others, a)
		}
	}
	slots, err := AvailableSlots(hours, appt.TotalDuration, e.gridStep, others)
	if err != nil {
		return nil, err
	}
	startTime := FormatClock(start)
	if !contains(slots, startTime) {
		return nil, ErrSlotUnavailable
	}

	appt.Date = newDate
	appt.StartTime = startTime
	appt.EndTime = FormatClock(start + appt.TotalDuration)
	appt.UpdatedAt = time.Now()
	if err := e.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}

	e.dispatch(func(n Notifier, a models.Appointment) { n.AppointmentRescheduled(a) }, *appt)
	return appt, nil
}

// SetStatus applies a status change through the transition table. Illegal
// transitions leave the record untouched.
func (e *Engine) SetStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !KnownStatus(status) {
		return nil, ErrInvalidTransition
	}
	appt, err := e.appointments.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrUnknownAppointment
	}

	unlock := e.lockDays(appt.ProfessionalID, appt.Date, appt.Date)
	defer unlock()

	appt, err = e.appointments.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrUnknownAppointment
	}
	if !CanTransition(appt.Status, status) {
		return nil, ErrInvalidTransition
	}
	appt.Status = status
	appt.UpdatedAt = time.Now()
	if err := e.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	if status == models.StatusCancelled {
		e.dispatch(func(n Notifier, a models.Appointment) { n.AppointmentCancelled(a) }, *appt)
	}
	return appt, nil
}

// GetAppointment loads one appointment by id.
func (e *Engine) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := e.appointments.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrUnknownAppointment
	}
	return appt, nil
}

func (e *Engine) dispatch(fn func(Notifier, models.Appointment), a models.Appointment) {
	if e.notifier == nil {
		return
	}
	go fn(e.notifier, a)
}

func contains(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
