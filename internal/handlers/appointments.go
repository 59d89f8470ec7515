package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"barbershop-server/internal/middleware"
	"barbershop-server/internal/models"
	"barbershop-server/internal/scheduling"
	"barbershop-server/internal/utils"
)

// AppointmentHandler exposes the booking engine over HTTP. Every read and
// mutation of appointment state goes through the engine; the handler only
// binds, authorizes and maps errors to status codes.
type AppointmentHandler struct {
	DB     *gorm.DB
	Engine *scheduling.Engine
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, engine *scheduling.Engine) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Engine: engine}
}

// respondEngineError maps engine validation failures to HTTP status codes.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrUnknownProfessional),
		errors.Is(err, scheduling.ErrUnknownService),
		errors.Is(err, scheduling.ErrUnknownAppointment):
		utils.NotFound(c, err.Error())
	case errors.Is(err, scheduling.ErrInvalidDuration):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, scheduling.ErrSlotUnavailable),
		errors.Is(err, scheduling.ErrInvalidTransition):
		utils.Conflict(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}

// GetSlots returns bookable start times for one professional, date and
// visit duration. Duration comes either directly (?duration=45) or as the
// sum of ?serviceIds=a,b looked up in the catalogue.
func (h *AppointmentHandler) GetSlots(c *gin.Context) {
	professionalID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		utils.BadRequest(c, "Query parameter 'date' (YYYY-MM-DD) is required")
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		var err error
		duration, err = strconv.Atoi(raw)
		if err != nil {
			utils.BadRequest(c, "Query parameter 'duration' must be a number of minutes")
			return
		}
	} else if ids, ok := c.GetQueryArray("serviceIds"); ok && len(ids) > 0 {
		var services []models.Service
		if err := h.DB.Where("id IN ? AND is_active = ?", ids, true).Find(&services).Error; err != nil {
			utils.InternalServerError(c, "Failed to resolve services: "+err.Error())
			return
		}
		if len(services) != len(ids) {
			utils.NotFound(c, "One or more services not found or inactive")
			return
		}
		for _, svc := range services {
			duration += svc.Duration
		}
	}

	if duration <= 0 {
		utils.BadRequest(c, "A positive 'duration' in minutes, or 'serviceIds', is required")
		return
	}

	slots, err := h.Engine.AvailableSlots(c.Request.Context(), professionalID, date, duration)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	utils.Success(c, "Available slots fetched successfully", gin.H{
		"professionalId": professionalID,
		"date":           date,
		"duration":       duration,
		"slots":          slots,
	})
}

// GetDayAvailability returns hours, breaks, bookings and blocked grid
// points for one professional-day, for calendar rendering.
func (h *AppointmentHandler) GetDayAvailability(c *gin.Context) {
	professionalID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		utils.BadRequest(c, "Query parameter 'date' (YYYY-MM-DD) is required")
		return
	}

	day, err := h.Engine.DayAvailability(c.Request.Context(), professionalID, date)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.Success(c, "Day availability fetched successfully", day)
}

// CreateAppointmentRequest represents the request body for booking a visit.
type CreateAppointmentRequest struct {
	ProfessionalID string   `json:"professionalId" binding:"required,uuid"`
	ServiceIDs     []string `json:"serviceIds" binding:"required,min=1,dive,required"`
	Date           string   `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime      string   `json:"startTime" binding:"required,datetime=15:04"`
	ClientName     string   `json:"clientName" binding:"required"`
	ClientPhone    string   `json:"clientPhone"`
	ClientEmail    string   `json:"clientEmail" binding:"omitempty,email"`
}

// CreateAppointment books a visit through the engine.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Engine.Book(c.Request.Context(), scheduling.BookingRequest{
		ProfessionalID: req.ProfessionalID,
		ServiceIDs:     req.ServiceIDs,
		Date:           req.Date,
		StartTime:      req.StartTime,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", appt)
}

// GetAppointments lists appointments for the back-office, filtered by
// optional professionalId, date and status query parameters. Professionals
// only ever see their own calendar.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Order("date asc, start_time asc")

	if userRole == models.RoleProfessional {
		userID, _ := middleware.GetUserIDFromContext(c)
		var prof models.Professional
		if err := h.DB.Where("user_id = ?", userID).First(&prof).Error; err != nil {
			utils.Forbidden(c, "No professional profile is linked to this account")
			return
		}
		query = query.Where("professional_id = ?", prof.ID)
	} else if professionalID := c.Query("professionalId"); professionalID != "" {
		query = query.Where("professional_id = ?", professionalID)
	}

	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID fetches a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appt, err := h.Engine.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.Success(c, "Appointment fetched successfully", appt)
}

// CancelAppointment transitions an appointment to cancelled, freeing its
// slot. Used by the public client flow, so it only needs the id.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	if err := h.Engine.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondEngineError(c, err)
		return
	}
	utils.Success(c, "Appointment cancelled successfully", nil)
}

// UpdateAppointmentStatusRequest represents the request body for updating
// an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed in_progress completed cancelled no_show"`
}

// UpdateAppointmentStatus applies a state-machine transition.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Engine.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.Success(c, "Appointment status updated successfully", appt)
}

// RescheduleAppointmentRequest represents the request body for moving an
// appointment to a new date and time.
type RescheduleAppointmentRequest struct {
	NewDate      string `json:"newDate" binding:"required,datetime=2006-01-02"`
	NewStartTime string `json:"newStartTime" binding:"required,datetime=15:04"`
}

// RescheduleAppointment moves an appointment, keeping id, status and
// services.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Engine.Reschedule(c.Request.Context(), c.Param("id"), req.NewDate, req.NewStartTime)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.Success(c, "Appointment rescheduled successfully", appt)
}
