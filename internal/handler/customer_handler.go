package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snaptrust/trust-growth-backend/internal/dto"
	"github.com/snaptrust/trust-growth-backend/internal/service"
)

type CustomerHandler struct {
	svc *service.CustomerService
}

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) List(c *gin.Context) {
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

	customers, err := h.svc.List(spec, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CustomerHandler) Explain(c *gin.Context) {
	explanation, err := h.svc.Explain(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, explanation)
}

func (h *CustomerHandler) History(c *gin.Context) {
	history, err := h.svc.History(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *CustomerHandler) Recommendations(c *gin.Context) {
	recs, err := h.svc.Recommendations(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}
