package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"barbershop-server/internal/middleware"
	"barbershop-server/internal/models"
	"barbershop-server/internal/utils"
)

// ProfessionalHandler handles professional profiles and their schedules:
// weekly working hours, vacation requests with approval, absences and
// special-schedule overrides. The booking engine reads these rows; this
// handler is the only place that writes them.
type ProfessionalHandler struct {
	DB *gorm.DB
}

// NewProfessionalHandler creates a new ProfessionalHandler.
func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{DB: db}
}

// canManageSchedule allows admins, and professionals acting on their own
// schedule.
func (h *ProfessionalHandler) canManageSchedule(c *gin.Context, professionalID string) bool {
	role, _ := middleware.GetUserRoleFromContext(c)
	if role == models.RoleAdmin {
		return true
	}
	if role == models.RoleProfessional {
		userID, _ := middleware.GetUserIDFromContext(c)
		var prof models.Professional
		if err := h.DB.Where("id = ? AND user_id = ?", professionalID, userID).First(&prof).Error; err == nil {
			return true
		}
	}
	utils.Forbidden(c, "You are not allowed to manage this professional's schedule.")
	return false
}

// CreateProfessionalRequest represents the request body for creating a
// professional profile.
type CreateProfessionalRequest struct {
	UserID      string   `json:"userId" binding:"required,uuid"`
	DisplayName string   `json:"displayName" binding:"required"`
	Specialty   string   `json:"specialty"`
	Bio         string   `json:"bio"`
	ServiceIDs  []string `json:"serviceIds" binding:"omitempty,dive,uuid"`
}

// CreateProfessional creates a professional profile for an existing staff
// account (admin).
func (h *ProfessionalHandler) CreateProfessional(c *gin.Context) {
	var req CreateProfessionalRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if user.Role != models.RoleProfessional {
		utils.BadRequest(c, "User must have the professional role")
		return
	}

	prof := models.Professional{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Specialty:   req.Specialty,
		Bio:         req.Bio,
		IsActive:    true,
	}
	if len(req.ServiceIDs) > 0 {
		var services []models.Service
		if err := h.DB.Where("id IN ?", req.ServiceIDs).Find(&services).Error; err != nil {
			utils.InternalServerError(c, "Failed to resolve services: "+err.Error())
			return
		}
		if len(services) != len(req.ServiceIDs) {
			utils.NotFound(c, "One or more services not found")
			return
		}
		prof.Services = services
	}

	if err := h.DB.Create(&prof).Error; err != nil {
		utils.InternalServerError(c, "Failed to create professional: "+err.Error())
		return
	}

	utils.Created(c, "Professional created successfully", prof)
}

// GetProfessionals lists professionals for the public booking flow.
func (h *ProfessionalHandler) GetProfessionals(c *gin.Context) {
	var pros []models.Professional
	query := h.DB.Preload("Services", "is_active = ?", true)
	if c.Query("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&pros).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch professionals: "+err.Error())
		return
	}
	utils.Success(c, "Professionals fetched successfully", pros)
}

// GetProfessionalByID fetches a single professional with schedule rows.
func (h *ProfessionalHandler) GetProfessionalByID(c *gin.Context) {
	var prof models.Professional
	err := h.DB.
		Preload("Services").
		Preload("WorkingHours").
		Preload("Vacations").
		Preload("Absences").
		Preload("SpecialSchedules").
		First(&prof, "id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Professional not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Professional fetched successfully", prof)
}

// UpdateProfessionalRequest represents the request body for updating a
// professional profile (admin).
type UpdateProfessionalRequest struct {
	DisplayName string   `json:"displayName"`
	Specialty   string   `json:"specialty"`
	Bio         string   `json:"bio"`
	IsActive    *bool    `json:"isActive"`
	ServiceIDs  []string `json:"serviceIds" binding:"omitempty,dive,uuid"`
}

// UpdateProfessional updates profile fields and the offered-services list.
func (h *ProfessionalHandler) UpdateProfessional(c *gin.Context) {
	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var prof models.Professional
	if err := h.DB.First(&prof, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Professional not found")
		return
	}

	if req.DisplayName != "" {
		prof.DisplayName = req.DisplayName
	}
	if req.Specialty != "" {
		prof.Specialty = req.Specialty
	}
	if req.Bio != "" {
		prof.Bio = req.Bio
	}
	if req.IsActive != nil {
		prof.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&prof).Error; err != nil {
		utils.InternalServerError(c, "Failed to update professional: "+err.Error())
		return
	}

	if req.ServiceIDs != nil {
		var services []models.Service
		if len(req.ServiceIDs) > 0 {
			if err := h.DB.Where("id IN ?", req.ServiceIDs).Find(&services).Error; err != nil {
				utils.InternalServerError(c, "Failed to resolve services: "+err.Error())
				return
			}
			if len(services) != len(req.ServiceIDs) {
				utils.NotFound(c, "One or more services not found")
				return
			}
		}
		if err := h.DB.Model(&prof).Association("Services").Replace(services); err != nil {
			utils.InternalServerError(c, "Failed to update offered services: "+err.Error())
			return
		}
	}

	utils.Success(c, "Professional updated successfully", prof)
}

// WeekdayHoursRequest is one weekday row of the weekly schedule.
type WeekdayHoursRequest struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	IsWorking  bool   `json:"isWorking"`
	StartTime  string `json:"startTime" binding:"required_if=IsWorking true,omitempty,datetime=15:04"`
	EndTime    string `json:"endTime" binding:"required_if=IsWorking true,omitempty,datetime=15:04"`
	BreakStart string `json:"breakStart" binding:"omitempty,datetime=15:04"`
	BreakEnd   string `json:"breakEnd" binding:"omitempty,datetime=15:04"`
}

// PutWorkingHoursRequest replaces the whole weekly pattern at once; the UI
// always edits the seven rows together.
type PutWorkingHoursRequest struct {
	Days []WeekdayHoursRequest `json:"days" binding:"required,min=1,max=7,dive"`
}

// PutWorkingHours upserts the weekly working-hours rows for a professional.
func (h *ProfessionalHandler) PutWorkingHours(c *gin.Context) {
	professionalID := c.Param("id")
	if !h.canManageSchedule(c, professionalID) {
		return
	}

	var req PutWorkingHoursRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	for _, d := range req.Days {
		if d.IsWorking {
			if d.StartTime >= d.EndTime {
				utils.BadRequest(c, "startTime must be before endTime")
				return
			}
			hasBreak := d.BreakStart != "" || d.BreakEnd != ""
			if hasBreak && (d.BreakStart == "" || d.BreakEnd == "") {
				utils.BadRequest(c, "breakStart and breakEnd must be set together")
				return
			}
			if hasBreak && !(d.StartTime < d.BreakStart && d.BreakStart < d.BreakEnd && d.BreakEnd < d.EndTime) {
				utils.BadRequest(c, "break must lie strictly inside working hours")
				return
			}
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, d := range req.Days {
			row := models.WorkingHours{
				ProfessionalID: professionalID,
				Weekday:        d.Weekday,
				IsWorking:      d.IsWorking,
				StartTime:      d.StartTime,
				EndTime:        d.EndTime,
				BreakStart:     d.BreakStart,
				BreakEnd:       d.BreakEnd,
			}
			var existing models.WorkingHours
			findErr := tx.Where("professional_id = ? AND weekday = ?", professionalID, d.Weekday).First(&existing).Error
			switch findErr {
			case nil:
				row.BaseModel = existing.BaseModel
				if err := tx.Save(&row).Error; err != nil {
					return err
				}
			case gorm.ErrRecordNotFound:
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			default:
				return findErr
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to save working hours: "+err.Error())
		return
	}

	utils.Success(c, "Working hours saved successfully", nil)
}

// CreateVacationRequest represents a vacation request for a date range.
type CreateVacationRequest struct {
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"`
}

// CreateVacation files a vacation request. It starts pending and only
// blocks availability once approved.
func (h *ProfessionalHandler) CreateVacation(c *gin.Context) {
	professionalID := c.Param("id")
	if !h.canManageSchedule(c, professionalID) {
		return
	}

	var req CreateVacationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.StartDate > req.EndDate {
		utils.BadRequest(c, "startDate must not be after endDate")
		return
	}

	vacation := models.Vacation{
		ProfessionalID: professionalID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         models.VacationPending,
		Reason:         req.Reason,
	}
	if err := h.DB.Create(&vacation).Error; err != nil {
		utils.InternalServerError(c, "Failed to create vacation request: "+err.Error())
		return
	}

	utils.Created(c, "Vacation request created successfully", vacation)
}

// SetVacationStatusRequest represents the approval decision.
type SetVacationStatusRequest struct {
	Status models.VacationStatus `json:"status" binding:"required,oneof=approved rejected"`
}

// SetVacationStatus approves or rejects a vacation request (admin).
func (h *ProfessionalHandler) SetVacationStatus(c *gin.Context) {
	var req SetVacationStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var vacation models.Vacation
	if err := h.DB.First(&vacation, "id = ?", c.Param("vacationId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Vacation request not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	vacation.Status = req.Status
	if err := h.DB.Save(&vacation).Error; err != nil {
		utils.InternalServerError(c, "Failed to update vacation request: "+err.Error())
		return
	}

	utils.Success(c, "Vacation request updated successfully", vacation)
}

// CreateAbsenceRequest represents a single-day absence.
type CreateAbsenceRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Justified bool   `json:"justified"`
	Reason    string `json:"reason"`
}

// CreateAbsence records an absence. Absences block the date immediately,
// no approval involved.
func (h *ProfessionalHandler) CreateAbsence(c *gin.Context) {
	professionalID := c.Param("id")
	if !h.canManageSchedule(c, professionalID) {
		return
	}

	var req CreateAbsenceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	absence := models.Absence{
		ProfessionalID: professionalID,
		Date:           req.Date,
		Justified:      req.Justified,
		Reason:         req.Reason,
	}
	if err := h.DB.Create(&absence).Error; err != nil {
		utils.InternalServerError(c, "Failed to record absence: "+err.Error())
		return
	}

	utils.Created(c, "Absence recorded successfully", absence)
}

// DeleteAbsence removes a mistakenly recorded absence (admin).
func (h *ProfessionalHandler) DeleteAbsence(c *gin.Context) {
	result := h.DB.Delete(&models.Absence{}, "id = ?", c.Param("absenceId"))
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete absence: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Absence not found")
		return
	}
	utils.Success(c, "Absence deleted successfully", nil)
}

// CreateSpecialScheduleRequest represents a one-date hours override.
type CreateSpecialScheduleRequest struct {
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime  string `json:"startTime" binding:"required,datetime=15:04"`
	EndTime    string `json:"endTime" binding:"required,datetime=15:04"`
	BreakStart string `json:"breakStart" binding:"omitempty,datetime=15:04"`
	BreakEnd   string `json:"breakEnd" binding:"omitempty,datetime=15:04"`
	Note       string `json:"note"`
}

// CreateSpecialSchedule sets override hours for a single date, replacing
// the regular weekday pattern entirely for that day.
func (h *ProfessionalHandler) CreateSpecialSchedule(c *gin.Context) {
	professionalID := c.Param("id")
	if !h.canManageSchedule(c, professionalID) {
		return
	}

	var req CreateSpecialScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.StartTime >= req.EndTime {
		utils.BadRequest(c, "startTime must be before endTime")
		return
	}
	if (req.BreakStart == "") != (req.BreakEnd == "") {
		utils.BadRequest(c, "breakStart and breakEnd must be set together")
		return
	}

	special := models.SpecialSchedule{
		ProfessionalID: professionalID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		BreakStart:     req.BreakStart,
		BreakEnd:       req.BreakEnd,
		Note:           req.Note,
	}
	if err := h.DB.Create(&special).Error; err != nil {
		utils.InternalServerError(c, "Failed to create special schedule: "+err.Error())
		return
	}

	utils.Created(c, "Special schedule created successfully", special)
}

// DeleteSpecialSchedule removes a one-date override (admin).
func (h *ProfessionalHandler) DeleteSpecialSchedule(c *gin.Context) {
	result := h.DB.Delete(&models.SpecialSchedule{}, "id = ?", c.Param("specialId"))
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete special schedule: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Special schedule not found")
		return
	}
	utils.Success(c, "Special schedule deleted successfully", nil)
}
