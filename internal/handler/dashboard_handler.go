package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snaptrust/trust-growth-backend/internal/dto"
	"github.com/snaptrust/trust-growth-backend/internal/service"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Merchants(c *gin.Context) {
	limit, err := dto.ParseLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}

	dashboard, err := h.svc.Merchants(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) Consumers(c *gin.Context) {
	dashboard, err := h.svc.Consumers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
