package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"barbershop-server/internal/models"
	"barbershop-server/internal/utils"
)

// ReportHandler serves the back-office dashboards. It only reads aggregated
// appointment data; it never mutates booking state.
type ReportHandler struct {
	DB *gorm.DB
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

type statusCount struct {
	Status models.AppointmentStatus `json:"status"`
	Count  int64                    `json:"count"`
}

type professionalSummary struct {
	ProfessionalID string  `json:"professionalId"`
	Appointments   int64   `json:"appointments"`
	Revenue        float64 `json:"revenue"`
}

// SummaryResponse is the shape the dashboard charts render from.
type SummaryResponse struct {
	From           string                `json:"from,omitempty"`
	To             string                `json:"to,omitempty"`
	ByStatus       []statusCount         `json:"byStatus"`
	Revenue        float64               `json:"revenue"`
	ByProfessional []professionalSummary `json:"byProfessional"`
}

// GetSummary aggregates appointments over an optional from/to date range:
// counts per status, completed revenue, and per-professional totals.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	ranged := func(db *gorm.DB) *gorm.DB {
		if from != "" {
			db = db.Where("date >= ?", from)
		}
		if to != "" {
			db = db.Where("date <= ?", to)
		}
		return db
	}

	resp := SummaryResponse{From: from, To: to}

	err := ranged(h.DB.Model(&models.Appointment{})).
		Select("status, count(*) as count").
		Group("status").
		Scan(&resp.ByStatus).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to aggregate statuses: "+err.Error())
		return
	}

	err = ranged(h.DB.Model(&models.Appointment{})).
		Where("status = ?", models.StatusCompleted).
		Select("coalesce(sum(total_price), 0)").
		Scan(&resp.Revenue).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to aggregate revenue: "+err.Error())
		return
	}

	err = ranged(h.DB.Model(&models.Appointment{})).
		Where("status <> ?", models.StatusCancelled).
		Select("professional_id, count(*) as appointments, coalesce(sum(case when status = ? then total_price else 0 end), 0) as revenue", models.StatusCompleted).
		Group("professional_id").
		Scan(&resp.ByProfessional).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to aggregate professionals: "+err.Error())
		return
	}

	utils.Success(c, "Summary report generated successfully", resp)
}
