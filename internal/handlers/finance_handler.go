package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rmedina/segurapp-api/internal/services"
)

type FinanceHandler struct {
	financeService *services.FinanceService
}

func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// @Summary List Revenues
// @Description Get a paginated list of revenue entries, newest first
// @Tags Finance
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param source_type query string false "Filter by source type"
// @Success 200 {object} map[string]interface{}
// @Router /finance/revenues [get]
func (h *FinanceHandler) Revenues(c *gin.Context) {
	query := parseListQuery(c)
	if sourceType := c.Query("source_type"); sourceType != "" {
		query.Filters["source_type"] = sourceType
	}

	revenues, total, err := h.financeService.ListRevenues(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"revenues":   revenues,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary List Expenses
// @Description Get a paginated list of expense entries, newest first
// @Tags Finance
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param source_type query string false "Filter by source type"
// @Success 200 {object} map[string]interface{}
// @Router /finance/expenses [get]
func (h *FinanceHandler) Expenses(c *gin.Context) {
	query := parseListQuery(c)
	if sourceType := c.Query("source_type"); sourceType != "" {
		query.Filters["source_type"] = sourceType
	}

	expenses, total, err := h.financeService.ListExpenses(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses":   expenses,
		"pagination": paginationResponse(query, total),
	})
}
