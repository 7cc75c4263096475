package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snaptrust/trust-growth-backend/internal/dto"
	"github.com/snaptrust/trust-growth-backend/internal/service"
)

type LeaderboardHandler struct {
	svc *service.LeaderboardService
}

func NewLeaderboardHandler(svc *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

func (h *LeaderboardHandler) Customers(c *gin.Context) {
	spec, err := dto.ParseSort(c)
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := dto.ParseLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ranked, err := h.svc.Customers(spec, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranked)
}

func (h *LeaderboardHandler) Merchants(c *gin.Context) {
	spec, err := dto.ParseSort(c)
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := dto.ParseLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ranked, err := h.svc.Merchants(spec, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranked)
}
