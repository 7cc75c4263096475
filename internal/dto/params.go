package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/snaptrust/trust-growth-backend/internal/ranking"
)

// ParseLimit reads the limit query parameter. Limits must be positive
// integers; the default is ranking.DefaultLimit.
func ParseLimit(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("limit", strconv.Itoa(ranking.DefaultLimit))
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, &ranking.ValidationError{Param: "limit", Message: "must be a positive integer"}
	}
	return v, nil
}

// ParseSort reads sort_by/sort_order as comma lists and validates them.
func ParseSort(c *gin.Context) (ranking.Spec, error) {
	return ranking.ParseSpec(c.Query("sort_by"), c.Query("sort_order"))
}

// ParseSortOrder reads a single-key sort direction for the plain list
// endpoints, which only sort by TrustScore.
func ParseSortOrder(c *gin.Context) (ranking.Spec, error) {
	return ranking.ParseSpec("", c.DefaultQuery("sort_order", "desc"))
}
