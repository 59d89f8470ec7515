package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"barbershop-server/internal/models"
	"barbershop-server/internal/utils"
)

// ServiceHandler handles the service catalogue (admin CRUD, public listing).
type ServiceHandler struct {
	DB *gorm.DB
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{DB: db}
}

// CreateServiceRequest represents the request body for creating a service.
type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    string  `json:"category"`
}

// CreateService adds a catalogue entry (admin).
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Category:    req.Category,
		IsActive:    true,
	}
	if service.Category == "" {
		service.Category = "General"
	}
	if err := h.DB.Create(&service).Error; err != nil {
		utils.InternalServerError(c, "Failed to create service: "+err.Error())
		return
	}

	utils.Created(c, "Service created successfully", service)
}

// GetServices lists catalogue entries. The public flow only sees active
// ones; admins may ask for everything.
func (h *ServiceHandler) GetServices(c *gin.Context) {
	query := h.DB.Order("category asc, name asc")
	if c.Query("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch services: "+err.Error())
		return
	}
	utils.Success(c, "Services fetched successfully", services)
}

// GetServiceByID fetches a single catalogue entry.
func (h *ServiceHandler) GetServiceByID(c *gin.Context) {
	var service models.Service
	if err := h.DB.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Service not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Service fetched successfully", service)
}

// UpdateServiceRequest represents the request body for updating a service.
type UpdateServiceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    *int     `json:"duration" binding:"omitempty,gt=0"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Category    string   `json:"category"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateService edits a catalogue entry (admin). Existing appointments keep
// their item snapshots, so price/duration edits never rewrite history.
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var service models.Service
	if err := h.DB.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Service not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != "" {
		service.Name = req.Name
	}
	if req.Description != "" {
		service.Description = req.Description
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Category != "" {
		service.Category = req.Category
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&service).Error; err != nil {
		utils.InternalServerError(c, "Failed to update service: "+err.Error())
		return
	}

	utils.Success(c, "Service updated successfully", service)
}

// DeactivateService soft-disables a catalogue entry so it can no longer be
// booked. Entries are never hard-deleted; appointment items reference them.
func (h *ServiceHandler) DeactivateService(c *gin.Context) {
	var service models.Service
	if err := h.DB.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Service not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	service.IsActive = false
	if err := h.DB.Save(&service).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate service: "+err.Error())
		return
	}

	utils.Success(c, "Service deactivated successfully", service)
}
