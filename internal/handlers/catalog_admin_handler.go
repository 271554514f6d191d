package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/httpresp"
	"github.com/fadehouse/barbershop-api/internal/media"
	"github.com/fadehouse/barbershop-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type CatalogAdminHandler struct {
	db    *gorm.DB
	store *media.Store
	log   *zap.Logger
}

func NewCatalogAdminHandler(db *gorm.DB, store *media.Store, log *zap.Logger) *CatalogAdminHandler {
	return &CatalogAdminHandler{db: db, store: store, log: log}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
}

type UpdateBarberRequest struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

type CreateChairRequest struct {
	Name   string `json:"name" binding:"required"`
	Number int    `json:"number" binding:"required,min=1"`
}

type UpdateChairRequest struct {
	Name   *string `json:"name,omitempty"`
	Number *int    `json:"number,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	DurationMin int    `json:"duration_min" binding:"required,min=1"`
	Price       string `json:"price" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DurationMin *int    `json:"duration_min,omitempty"`
	Price       *string `json:"price,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// ======================================================
// BARBERS
// ======================================================

func (h *CatalogAdminHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Invalid barber data", err.Error())
		return
	}

	barber := models.Barber{
		Name:      req.Name,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		Active:    true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		h.log.Error("failed to create barber", zap.Error(err))
		httperr.Internal(c, "failed_to_create_barber", "Could not create barber")
		return
	}

	httpresp.Created(c, barber)
}

func (h *CatalogAdminHandler) UpdateBarber(c *gin.Context) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barber id must be numeric")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Invalid barber data", err.Error())
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Specialty != nil {
		barber.Specialty = *req.Specialty
	}
	if req.Bio != nil {
		barber.Bio = *req.Bio
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		h.log.Error("failed to update barber", zap.Error(err))
		httperr.Internal(c, "failed_to_update_barber", "Could not update barber")
		return
	}

	httpresp.OK(c, barber)
}

// UploadPhoto resizes and webp-encodes the uploaded image, stores it and
// links it to the barber.
func (h *CatalogAdminHandler) UploadPhoto(c *gin.Context) {
	if h.store == nil {
		httperr.BadRequest(c, "media_disabled", "Object storage is not configured")
		return
	}

	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barber id must be numeric")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file is required")
		return
	}
	defer file.Close()

	encoded, err := media.EncodeProfilePhoto(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not decode the uploaded image")
		return
	}

	key := fmt.Sprintf("barbers/%d/%s.webp", barber.ID, uuid.NewString())

	url, err := h.store.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		h.log.Error("failed to upload photo",
			zap.Uint("barber_id", barber.ID),
			zap.Error(err),
		)
		httperr.Internal(c, "failed_to_upload_photo", "Could not store the photo")
		return
	}

	barber.PhotoURL = url
	if err := h.db.Save(&barber).Error; err != nil {
		h.log.Error("failed to save photo url", zap.Error(err))
		httperr.Internal(c, "failed_to_update_barber", "Could not update barber")
		return
	}

	httpresp.OK(c, barber)
}

// ======================================================
// CHAIRS
// ======================================================

func (h *CatalogAdminHandler) CreateChair(c *gin.Context) {
	var req CreateChairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Invalid chair data", err.Error())
		return
	}

	chair := models.Chair{
		Name:   req.Name,
		Number: req.Number,
		Active: true,
	}

	if err := h.db.Create(&chair).Error; err != nil {
		h.log.Error("failed to create chair", zap.Error(err))
		httperr.Internal(c, "failed_to_create_chair", "Could not create chair")
		return
	}

	httpresp.Created(c, chair)
}

func (h *CatalogAdminHandler) UpdateChair(c *gin.Context) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_chair_id", "Chair id must be numeric")
		return
	}

	var chair models.Chair
	if err := h.db.First(&chair, id).Error; err != nil {
		httperr.NotFound(c, "chair_not_found", "Chair not found")
		return
	}

	var req UpdateChairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Invalid chair data", err.Error())
		return
	}

	if req.Name != nil {
		chair.Name = *req.Name
	}
	if req.Number != nil {
		chair.Number = *req.Number
	}
	if req.Active != nil {
		chair.Active = *req.Active
	}

	if err := h.db.Save(&chair).Error; err != nil {
		h.log.Error("failed to update chair", zap.Error(err))
		httperr.Internal(c, "failed_to_update_chair", "Could not update chair")
		return
	}

	httpresp.OK(c, chair)
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogAdminHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Invalid service data", err.Error())
		return
	}

	if !domain.ValidAmount(req.Price) {
		httperr.BadRequest(c, "invalid_amount", "price must be a decimal string")
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		h.log.Error("failed to create service", zap.Error(err))
		httperr.Internal(c, "failed_to_create_service", "Could not create service")
		return
	}

	httpresp.Created(c, service)
}

func (h *CatalogAdminHandler) UpdateService(c *gin.Context) {
	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Service id must be numeric")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Invalid service data", err.Error())
		return
	}

	if req.Price != nil && !domain.ValidAmount(*req.Price) {
		httperr.BadRequest(c, "invalid_amount", "price must be a decimal string")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		h.log.Error("failed to update service", zap.Error(err))
		httperr.Internal(c, "failed_to_update_service", "Could not update service")
		return
	}

	httpresp.OK(c, service)
}
