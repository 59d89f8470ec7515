package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"barbershop-server/internal/models"
)

type fakeCatalog map[string]*models.Service

func (f fakeCatalog) GetService(_ context.Context, id string) (*models.Service, error) {
	return f[id], nil
}

type fakeProfessionals map[string]*models.Professional

func (f fakeProfessionals) GetProfessional(_ context.Context, id string) (*models.Professional, error) {
	return f[id], nil
}

// fakeAppointments is a mutex-guarded in-memory store handing out copies,
// mimicking the snapshot reads the repository gives the engine.
type fakeAppointments struct {
	mu   sync.Mutex
	byID map[string]models.Appointment
}

func newFakeAppointments() *fakeAppointments {
	return &fakeAppointments{byID: make(map[string]models.Appointment)}
}

func (f *fakeAppointments) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAppointments) ListDay(_ context.Context, professionalID, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.byID {
		if a.ProfessionalID == professionalID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Create(_ context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAppointments) Update(_ context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAppointments) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type recordingNotifier struct {
	booked      chan models.Appointment
	cancelled   chan models.Appointment
	rescheduled chan models.Appointment
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		booked:      make(chan models.Appointment, 8),
		cancelled:   make(chan models.Appointment, 8),
		rescheduled: make(chan models.Appointment, 8),
	}
}

func (n *recordingNotifier) AppointmentBooked(a models.Appointment)      { n.booked <- a }
func (n *recordingNotifier) AppointmentCancelled(a models.Appointment)   { n.cancelled <- a }
func (n *recordingNotifier) AppointmentRescheduled(a models.Appointment) { n.rescheduled <- a }

func waitFor(t *testing.T, ch chan models.Appointment) models.Appointment {
	t.Helper()
	select {
	case a := <-ch:
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return models.Appointment{}
	}
}

const profID = "prof-1"

func newTestEngine(t *testing.T) (*Engine, *fakeAppointments, *recordingNotifier) {
	t.Helper()
	catalog := fakeCatalog{
		"cut":   {BaseModel: models.BaseModel{ID: "cut"}, Name: "Haircut", Duration: 30, Price: 25, IsActive: true},
		"beard": {BaseModel: models.BaseModel{ID: "beard"}, Name: "Beard trim", Duration: 30, Price: 15, IsActive: true},
		"perm":  {BaseModel: models.BaseModel{ID: "perm"}, Name: "Perm", Duration: 90, Price: 80, IsActive: false},
	}
	profs := fakeProfessionals{profID: weeklySchedule()}
	appts := newFakeAppointments()
	notifier := newRecordingNotifier()
	return NewEngine(catalog, profs, appts, notifier, 30), appts, notifier
}

func TestBookHappyPath(t *testing.T) {
	e, _, notifier := newTestEngine(t)
	ctx := context.Background()

	appt, err := e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut", "beard"},
		Date:           monday,
		StartTime:      "08:00",
		ClientName:     "Carlos",
		ClientPhone:    "+5511999990000",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, appt.Status)
	require.Equal(t, "08:00", appt.StartTime)
	require.Equal(t, "09:00", appt.EndTime)
	require.Equal(t, 60, appt.TotalDuration)
	require.Equal(t, 40.0, appt.TotalPrice)
	require.Len(t, appt.Items, 2)
	require.Equal(t, 0, appt.Items[0].Position)
	require.Equal(t, "cut", appt.Items[0].ServiceID)
	require.Equal(t, "beard", appt.Items[1].ServiceID)
	require.False(t, appt.CreatedAt.IsZero())
	require.Equal(t, appt.CreatedAt, appt.UpdatedAt)

	got := waitFor(t, notifier.booked)
	require.Equal(t, appt.ID, got.ID)

	// The booked window is no longer offered.
	slots, err := e.AvailableSlots(ctx, profID, monday, 60)
	require.NoError(t, err)
	require.NotContains(t, slots, "08:00")
	require.NotContains(t, slots, "08:30")
	require.Contains(t, slots, "09:00")
}

func TestBookSlotUnavailable(t *testing.T) {
	e, appts, _ := newTestEngine(t)
	ctx := context.Background()

	// During the lunch break.
	_, err := e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut"},
		Date:           monday,
		StartTime:      "12:00",
		ClientName:     "Carlos",
	})
	require.ErrorIs(t, err, ErrSlotUnavailable)

	// Off the grid.
	_, err = e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut"},
		Date:           monday,
		StartTime:      "08:10",
		ClientName:     "Carlos",
	})
	require.ErrorIs(t, err, ErrSlotUnavailable)

	// Sunday is closed.
	_, err = e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut"},
		Date:           sunday,
		StartTime:      "08:00",
		ClientName:     "Carlos",
	})
	require.ErrorIs(t, err, ErrSlotUnavailable)

	// Failed validations must not write anything.
	require.Zero(t, appts.count())
}

func TestBookSlotThenConsistency(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()

	// Any offered slot must be bookable, and gone right after.
	slots, err := e.AvailableSlots(ctx, profID, monday, 30)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	first := slots[0]
	_, err = e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut"},
		Date:           monday,
		StartTime:      first,
		ClientName:     "Ana",
	})
	require.NoError(t, err)

	after, err := e.AvailableSlots(ctx, profID, monday, 30)
	require.NoError(t, err)
	require.NotContains(t, after, first)
}

func TestBookUnknownOrInactiveService(t *testing.T) {
	e, appts, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"nope"},
		Date:           monday,
		StartTime:      "08:00",
		ClientName:     "Ana",
	})
	require.ErrorIs(t, err, ErrUnknownService)

	_, err = e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"perm"},
		Date:           monday,
		StartTime:      "08:00",
		ClientName:     "Ana",
	})
	require.ErrorIs(t, err, ErrUnknownService)

	_, err = e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		Date:           monday,
		StartTime:      "08:00",
		ClientName:     "Ana",
	})
	require.ErrorIs(t, err, ErrUnknownService)

	require.Zero(t, appts.count())
}

func TestBookUnknownProfessional(t *testing.T) {
	e, _, _ := newTestEngine(t)
	_, err := e.Book(context.Background(), BookingRequest{
		ProfessionalID: "ghost",
		ServiceIDs:     []string{"cut"},
		Date:           monday,
		StartTime:      "08:00",
		ClientName:     "Ana",
	})
	require.ErrorIs(t, err, ErrUnknownProfessional)
}

func TestCancelFreesSlot(t *testing.T) {
	e, _, notifier := newTestEngine(t)
	ctx := context.Background()

	appt, err := e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut"},
		Date:           monday,
		StartTime:      "08:00",
		ClientName:     "Ana",
	})
	require.NoError(t, err)

	require.NoError(t, e.Cancel(ctx, appt.ID))
	got := waitFor(t, notifier.cancelled)
	require.Equal(t, models.StatusCancelled, got.Status)

	slots, err := e.AvailableSlots(ctx, profID, monday, 30)
	require.NoError(t, err)
	require.Contains(t, slots, "08:00")

	// Cancelled is terminal.
	require.ErrorIs(t, e.Cancel(ctx, appt.ID), ErrInvalidTransition)
	require.ErrorIs(t, e.Cancel(ctx, "missing"), ErrUnknownAppointment)
}

func TestSetStatusLifecycle(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()

	appt, err := e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut"},
		Date:           monday,
		StartTime:      "09:00",
		ClientName:     "Ana",
	})
	require.NoError(t, err)

	for _, next := range []models.AppointmentStatus{
		models.StatusConfirmed,
		models.StatusInProgress,
		models.StatusCompleted,
	} {
		updated, err := e.SetStatus(ctx, appt.ID, next)
		require.NoError(t, err)
		require.Equal(t, next, updated.Status)
	}

	// Illegal transition leaves the record untouched.
	_, err = e.SetStatus(ctx, appt.ID, models.StatusPending)
	require.ErrorIs(t, err, ErrInvalidTransition)
	current, err := e.GetAppointment(ctx, appt.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, current.Status)

	_, err = e.SetStatus(ctx, appt.ID, models.AppointmentStatus("archived"))
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = e.SetStatus(ctx, "missing", models.StatusConfirmed)
	require.ErrorIs(t, err, ErrUnknownAppointment)
}

func TestReschedule(t *testing.T) {
	e, _, notifier := newTestEngine(t)
	ctx := context.Background()

	appt, err := e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut"},
		Date:           monday,
		StartTime:      "08:00",
		ClientName:     "Ana",
	})
	require.NoError(t, err)
	_, err = e.SetStatus(ctx, appt.ID, models.StatusConfirmed)
	require.NoError(t, err)

	// Shifting by one grid step within the same day works because the
	// appointment is excluded from its own overlap check.
	moved, err := e.Reschedule(ctx, appt.ID, monday, "08:30")
	require.NoError(t, err)
	require.Equal(t, "08:30", moved.StartTime)
	require.Equal(t, "09:00", moved.EndTime)
	require.Equal(t, models.StatusConfirmed, moved.Status, "status survives a reschedule")
	require.Equal(t, appt.ID, moved.ID)
	waitFor(t, notifier.rescheduled)

	// The old slot is free again, the new one is taken.
	slots, err := e.AvailableSlots(ctx, profID, monday, 30)
	require.NoError(t, err)
	require.Contains(t, slots, "08:00")
	require.NotContains(t, slots, "08:30")

	// Moving onto another booking fails and changes nothing.
	other, err := e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut"},
		Date:           monday,
		StartTime:      "10:00",
		ClientName:     "Bia",
	})
	require.NoError(t, err)
	_, err = e.Reschedule(ctx, other.ID, monday, "08:30")
	require.ErrorIs(t, err, ErrSlotUnavailable)
	current, err := e.GetAppointment(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, "10:00", current.StartTime)

	// Moving across days works too.
	tuesday := "2024-01-02"
	moved, err = e.Reschedule(ctx, appt.ID, tuesday, "09:00")
	require.NoError(t, err)
	require.Equal(t, tuesday, moved.Date)

	_, err = e.Reschedule(ctx, "missing", monday, "08:00")
	require.ErrorIs(t, err, ErrUnknownAppointment)
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	e, appts, _ := newTestEngine(t)
	ctx := context.Background()

	const attempts = 16
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Book(ctx, BookingRequest{
				ProfessionalID: profID,
				ServiceIDs:     []string{"cut"},
				Date:           monday,
				StartTime:      "14:00",
				ClientName:     "Race",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, losses int
	for err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrSlotUnavailable)
			losses++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, attempts-1, losses)
	require.Equal(t, 1, appts.count())
}

func TestNoOverlappingAppointmentsInvariant(t *testing.T) {
	e, appts, _ := newTestEngine(t)
	ctx := context.Background()

	// Book every slot the engine offers for 60-minute visits.
	for {
		slots, err := e.AvailableSlots(ctx, profID, monday, 60)
		require.NoError(t, err)
		if len(slots) == 0 {
			break
		}
		_, err = e.Book(ctx, BookingRequest{
			ProfessionalID: profID,
			ServiceIDs:     []string{"cut", "beard"},
			Date:           monday,
			StartTime:      slots[0],
			ClientName:     "Fill",
		})
		require.NoError(t, err)
	}

	day, err := appts.ListDay(ctx, profID, monday)
	require.NoError(t, err)
	require.NotEmpty(t, day)
	for i, a := range day {
		for j, b := range day {
			if i == j {
				continue
			}
			as, _ := ParseClock(a.StartTime)
			ae, _ := ParseClock(a.EndTime)
			bs, _ := ParseClock(b.StartTime)
			be, _ := ParseClock(b.EndTime)
			require.False(t, overlaps(as, ae, bs, be),
				"%s-%s overlaps %s-%s", a.StartTime, a.EndTime, b.StartTime, b.EndTime)
		}
	}
}

func TestDayAvailability(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Book(ctx, BookingRequest{
		ProfessionalID: profID,
		ServiceIDs:     []string{"cut"},
		Date:           monday,
		StartTime:      "08:00",
		ClientName:     "Ana",
	})
	require.NoError(t, err)

	day, err := e.DayAvailability(ctx, profID, monday)
	require.NoError(t, err)
	require.True(t, day.Hours.Working)
	require.Len(t, day.Appointments, 1)
	require.Contains(t, day.BlockedSlots, "08:00")
	require.Contains(t, day.BlockedSlots, "12:00")
	require.Contains(t, day.BlockedSlots, "12:30")
	require.NotContains(t, day.BlockedSlots, "08:30")

	closed, err := e.DayAvailability(ctx, profID, sunday)
	require.NoError(t, err)
	require.False(t, closed.Hours.Working)
	require.Empty(t, closed.BlockedSlots)

	_, err = e.DayAvailability(ctx, "ghost", monday)
	require.ErrorIs(t, err, ErrUnknownProfessional)
}

func TestEngineEffectiveHours(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx := context.Background()

	h, err := e.EffectiveHours(ctx, profID, monday)
	require.NoError(t, err)
	require.True(t, h.Working)
	require.Equal(t, "08:00", h.Start)

	_, err = e.EffectiveHours(ctx, "ghost", monday)
	require.ErrorIs(t, err, ErrUnknownProfessional)
}
