package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snaptrust/trust-growth-backend/internal/dto"
	"github.com/snaptrust/trust-growth-backend/internal/service"
)

type AIHandler struct {
	svc *service.AIQueryService
}

func NewAIHandler(svc *service.AIQueryService) *AIHandler {
	return &AIHandler{svc: svc}
}

func (h *AIHandler) Query(c *gin.Context) {
	var req dto.AIQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation failed",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.svc.Query(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AIHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation failed",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.svc.Chat(c.Request.Context(), req.UserType, req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
