package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type CatalogHandler struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewCatalogHandler(repo domain.Repository, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{repo: repo, log: log}
}

// Public lists return only active records, as plain arrays.

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.repo.ListBarbers(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list barbers", zap.Error(err))
		httperr.Internal(c, "failed_to_list_barbers", "Could not load barbers")
		return
	}
	httpresp.OK(c, barbers)
}

func (h *CatalogHandler) ListChairs(c *gin.Context) {
	chairs, err := h.repo.ListChairs(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list chairs", zap.Error(err))
		httperr.Internal(c, "failed_to_list_chairs", "Could not load chairs")
		return
	}
	httpresp.OK(c, chairs)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.repo.ListServices(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list services", zap.Error(err))
		httperr.Internal(c, "failed_to_list_services", "Could not load services")
		return
	}
	httpresp.OK(c, services)
}
