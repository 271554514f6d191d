package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/httpresp"
	"github.com/fadehouse/barbershop-api/internal/models"
)

type WorkingHoursHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewWorkingHoursHandler(db *gorm.DB, log *zap.Logger) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, log: log}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, ok := parseUintParam(c.Query("barberId"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "barberId must be numeric")
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		h.log.Error("failed to get working hours", zap.Error(err))
		httperr.Internal(c, "failed_to_get_working_hours", "Could not load working hours")
		return
	}

	httpresp.OK(c, hours)
}

// Update replaces the barber's whole week in one write.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID, ok := parseUintParam(c.Query("barberId"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "barberId must be numeric")
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Invalid working hours", err.Error())
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkingHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WorkingHours{
				BarberID:   barberID,
				Weekday:    d.Weekday,
				Active:     d.Active,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
				LunchStart: d.LunchStart,
				LunchEnd:   d.LunchEnd,
			})
		}

		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})

	if err != nil {
		h.log.Error("failed to save working hours", zap.Error(err))
		httperr.Internal(c, "failed_to_save_working_hours", "Could not save working hours")
		return
	}

	httpresp.Message(c, "Working hours updated")
}
