package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/services"
)

type CommissionHandler struct {
	commissionService *services.CommissionService
}

func NewCommissionHandler(commissionService *services.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// @Summary List Commission Entries
// @Description Get a paginated list of agent commission ledger entries
// @Tags Commissions
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param txn_type query string false "Filter by entry type"
// @Success 200 {object} map[string]interface{}
// @Router /commissions [get]
func (h *CommissionHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}
	if txnType := c.Query("txn_type"); txnType != "" {
		query.Filters["txn_type"] = txnType
	}

	txns, total, err := h.commissionService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for _, txn := range txns {
		responses = append(responses, txn.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"commissions": responses,
		"pagination":  paginationResponse(query, total),
	})
}

// @Summary Agent Ledger
// @Description Get all commission entries and the net balance for an agent
// @Tags Commissions
// @Accept json
// @Produce json
// @Param agent_id path int true "Agent ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /agents/{agent_id}/commissions [get]
func (h *CommissionHandler) ByAgent(c *gin.Context) {
	agentID, _ := strconv.ParseUint(c.Param("agent_id"), 10, 32)

	balance, err := h.commissionService.Balance(c.Request.Context(), uint(agentID))
	if err != nil {
		respondError(c, err)
		return
	}

	txns, err := h.commissionService.FindByAgent(c.Request.Context(), uint(agentID))
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for _, txn := range txns {
		responses = append(responses, txn.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"commissions": responses, "balance": balance})
}

type CreateCommissionRequest struct {
	AgentID     uint    `json:"agent_id" binding:"required"`
	TxnType     string  `json:"txn_type" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
	PolicyID    *uint   `json:"policy_id"`
}

// @Summary Create Commission Entry
// @Description Record a manual commission ledger entry
// @Tags Commissions
// @Accept json
// @Produce json
// @Param request body CreateCommissionRequest true "Entry Data"
// @Success 201 {object} models.AgentTransactionResponse
// @Failure 400,404 {object} map[string]string
// @Router /commissions [post]
func (h *CommissionHandler) Create(c *gin.Context) {
	var req CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn := &models.AgentTransaction{
		AgentID:     req.AgentID,
		TxnType:     req.TxnType,
		Amount:      req.Amount,
		Description: req.Description,
		PolicyID:    req.PolicyID,
	}
	if err := h.commissionService.Create(c.Request.Context(), txn); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"commission": txn.ToResponse(), "message": "Asiento registrado"})
}

// @Summary Settle Commission Entry
// @Description Mark a pending commission entry as settled
// @Tags Commissions
// @Accept json
// @Produce json
// @Param commission_id path int true "Commission ID"
// @Success 200 {object} models.AgentTransactionResponse
// @Failure 404,409 {object} map[string]string
// @Router /commissions/{commission_id}/settle [post]
func (h *CommissionHandler) Settle(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("commission_id"), 10, 32)
	txn, err := h.commissionService.Settle(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission": txn.ToResponse(), "message": "Asiento liquidado"})
}

// @Summary Cancel Commission Entry
// @Description Mark a pending commission entry as cancelled
// @Tags Commissions
// @Accept json
// @Produce json
// @Param commission_id path int true "Commission ID"
// @Success 200 {object} models.AgentTransactionResponse
// @Failure 404,409 {object} map[string]string
// @Router /commissions/{commission_id}/cancel [post]
func (h *CommissionHandler) Cancel(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("commission_id"), 10, 32)
	txn, err := h.commissionService.CancelEntry(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission": txn.ToResponse(), "message": "Asiento anulado"})
}

type ReverseCommissionRequest struct {
	Reason string `json:"reason"`
}

// @Summary Reverse Commission Entry
// @Description Create the opposing entry for a past commission transaction
// @Tags Commissions
// @Accept json
// @Produce json
// @Param commission_id path int true "Commission ID"
// @Param request body ReverseCommissionRequest false "Reason"
// @Success 201 {object} models.AgentTransactionResponse
// @Failure 404 {object} map[string]string
// @Router /commissions/{commission_id}/reverse [post]
func (h *CommissionHandler) Reverse(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("commission_id"), 10, 32)

	var req ReverseCommissionRequest
	c.ShouldBindJSON(&req)

	txn, err := h.commissionService.Reverse(c.Request.Context(), uint(id), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"commission": txn.ToResponse(), "message": "Asiento revertido"})
}
