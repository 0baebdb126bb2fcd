package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/services"
)

type ChequeHandler struct {
	chequeService *services.ChequeService
}

func NewChequeHandler(chequeService *services.ChequeService) *ChequeHandler {
	return &ChequeHandler{chequeService: chequeService}
}

// @Summary List Cheques
// @Description Get a paginated list of cheques
// @Tags Cheques
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by cheque number"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Router /cheques [get]
func (h *ChequeHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}

	cheques, total, err := h.chequeService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for _, cheque := range cheques {
		responses = append(responses, cheque.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"cheques":    responses,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Cheque
// @Description Get a cheque by ID
// @Tags Cheques
// @Accept json
// @Produce json
// @Param cheque_id path int true "Cheque ID"
// @Success 200 {object} models.ChequeResponse
// @Failure 404 {object} map[string]string
// @Router /cheques/{cheque_id} [get]
func (h *ChequeHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("cheque_id"), 10, 32)
	cheque, err := h.chequeService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cheque": cheque.ToResponse()})
}

type CreateChequeRequest struct {
	ChequeNumber string    `json:"cheque_number" binding:"required"`
	BankName     string    `json:"bank_name"`
	DueDate      time.Time `json:"due_date" binding:"required"`
	Amount       float64   `json:"amount" binding:"required"`
	PolicyID     *uint     `json:"policy_id"`
	CustomerID   *uint     `json:"customer_id"`
}

// @Summary Create Cheque
// @Description Register a standalone cheque, optionally linked to a policy or customer
// @Tags Cheques
// @Accept json
// @Produce json
// @Param request body CreateChequeRequest true "Cheque Data"
// @Success 201 {object} models.ChequeResponse
// @Failure 400,404 {object} map[string]string
// @Router /cheques [post]
func (h *ChequeHandler) Create(c *gin.Context) {
	var req CreateChequeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cheque := &models.Cheque{
		ChequeNumber: req.ChequeNumber,
		BankName:     req.BankName,
		DueDate:      req.DueDate,
		Amount:       req.Amount,
		PolicyID:     req.PolicyID,
		CustomerID:   req.CustomerID,
	}
	if err := h.chequeService.Create(c.Request.Context(), cheque); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cheque": cheque.ToResponse(), "message": "Cheque registrado"})
}

type UpdateChequeStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Reason *string `json:"reason"`
}

// @Summary Update Cheque Status
// @Description Transition a pending cheque to cleared, returned or cancelled
// @Tags Cheques
// @Accept json
// @Produce json
// @Param cheque_id path int true "Cheque ID"
// @Param request body UpdateChequeStatusRequest true "Target Status"
// @Success 200 {object} models.ChequeResponse
// @Failure 400,404,409 {object} map[string]string
// @Router /cheques/{cheque_id}/status [put]
func (h *ChequeHandler) UpdateStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("cheque_id"), 10, 32)

	var req UpdateChequeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cheque, err := h.chequeService.UpdateStatus(c.Request.Context(), uint(id), req.Status, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cheque": cheque.ToResponse(), "message": "Estado del cheque actualizado"})
}

// @Summary Delete Cheque
// @Description Delete a cheque. A policy-linked cheque also removes its payment and restores the policy debt
// @Tags Cheques
// @Accept json
// @Produce json
// @Param cheque_id path int true "Cheque ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /cheques/{cheque_id} [delete]
func (h *ChequeHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("cheque_id"), 10, 32)

	policy, err := h.chequeService.Delete(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"message": "Cheque eliminado"}
	if policy != nil {
		resp["policy"] = policy.ToResponse()
	}
	c.JSON(http.StatusOK, resp)
}
