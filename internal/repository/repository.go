package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"barbershop-server/internal/models"
)

// Store implements the scheduling engine's catalogue, professional and
// appointment store interfaces on top of GORM. Not-found lookups return
// (nil, nil) so the engine can map them to its own error kinds without
// knowing about gorm.ErrRecordNotFound.
type Store struct {
	DB *gorm.DB
}

// NewStore creates a Store around an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// GetService looks up one catalogue entry.
func (s *Store) GetService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := s.DB.WithContext(ctx).First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// GetProfessional loads a professional with every schedule row the
// effective-hours resolution needs.
func (s *Store) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	var p models.Professional
	err := s.DB.WithContext(ctx).
		Preload("WorkingHours").
		Preload("Vacations").
		Preload("Absences").
		Preload("SpecialSchedules").
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAppointment loads one appointment with its ordered service items.
func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var a models.Appointment
	err := s.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListDay returns every appointment of one professional-day, cancelled ones
// included; the slot generator filters by status itself.
func (s *Store) ListDay(ctx context.Context, professionalID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	err := s.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("professional_id = ? AND date = ?", professionalID, date).
		Order("start_time asc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create persists a new appointment together with its items.
func (s *Store) Create(ctx context.Context, a *models.Appointment) error {
	return s.DB.WithContext(ctx).Create(a).Error
}

// Update saves an already-persisted appointment.
func (s *Store) Update(ctx context.Context, a *models.Appointment) error {
	return s.DB.WithContext(ctx).Save(a).Error
}
