package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snaptrust/trust-growth-backend/internal/dto"
	"github.com/snaptrust/trust-growth-backend/internal/service"
)

type MerchantHandler struct {
	svc *service.MerchantService
}

func NewMerchantHandler(svc *service.MerchantService) *MerchantHandler {
	return &MerchantHandler{svc: svc}
}

func (h *MerchantHandler) List(c *gin.Context) {
	spec, err := dto.ParseSortOrder(c)
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := dto.ParseLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}

	merchants, err := h.svc.List(spec, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, merchants)
}

func (h *MerchantHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *MerchantHandler) Explain(c *gin.Context) {
	explanation, err := h.svc.Explain(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, explanation)
}

func (h *MerchantHandler) History(c *gin.Context) {
	history, err := h.svc.History(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *MerchantHandler) Recommendations(c *gin.Context) {
	recs, err := h.svc.Recommendations(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *MerchantHandler) Benchmark(c *gin.Context) {
	benchmark, err := h.svc.Benchmark(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, benchmark)
}
