package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmedina/segurapp-api/internal/services"
)

type PolicyHandler struct {
	policyService   *services.PolicyService
	transferService *services.TransferService
	documentService *services.DocumentService
}

func NewPolicyHandler(
	policyService *services.PolicyService,
	transferService *services.TransferService,
	documentService *services.DocumentService,
) *PolicyHandler {
	return &PolicyHandler{
		policyService:   policyService,
		transferService: transferService,
		documentService: documentService,
	}
}

// @Summary List Policies
// @Description Get a paginated list of policies
// @Tags Policies
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by plate number"
// @Param status query string false "Filter by status"
// @Param insurance_type query string false "Filter by insurance type"
// @Success 200 {object} map[string]interface{}
// @Router /policies [get]
func (h *PolicyHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}
	if insuranceType := c.Query("insurance_type"); insuranceType != "" {
		query.Filters["insurance_type"] = insuranceType
	}

	policies, total, err := h.policyService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for _, policy := range policies {
		responses = append(responses, policy.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"policies":   responses,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Policy
// @Description Get a policy with its full payment ledger
// @Tags Policies
// @Accept json
// @Produce json
// @Param policy_id path int true "Policy ID"
// @Success 200 {object} models.PolicyResponse
// @Failure 404 {object} map[string]string
// @Router /policies/{policy_id} [get]
func (h *PolicyHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("policy_id"), 10, 32)
	policy, err := h.policyService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"policy": policy.ToResponse()})
}

// @Summary Create Policy
// @Description Create a new policy, optionally with initial payments and a commission entry
// @Tags Policies
// @Accept json
// @Produce json
// @Param request body services.CreatePolicyInput true "Policy Data"
// @Success 201 {object} models.PolicyResponse
// @Failure 400,404,409 {object} map[string]string
// @Router /policies [post]
func (h *PolicyHandler) Create(c *gin.Context) {
	var input services.CreatePolicyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy, err := h.policyService.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"policy": policy.ToResponse(), "message": "Póliza creada exitosamente"})
}

// @Summary Add Payment
// @Description Record a payment against a policy
// @Tags Policies
// @Accept json
// @Produce json
// @Param policy_id path int true "Policy ID"
// @Param request body services.PaymentInput true "Payment Data"
// @Success 200 {object} models.PolicyResponse
// @Failure 400,404,409 {object} map[string]string
// @Router /policies/{policy_id}/payments [post]
func (h *PolicyHandler) AddPayment(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("policy_id"), 10, 32)

	var input services.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy, err := h.policyService.AddPayment(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy.ToResponse(), "message": "Pago registrado"})
}

type CancelPolicyRequest struct {
	RefundAmount *float64 `json:"refund_amount"`
}

// @Summary Cancel Policy
// @Description Cancel an active policy, optionally recording a refund
// @Tags Policies
// @Accept json
// @Produce json
// @Param policy_id path int true "Policy ID"
// @Param request body CancelPolicyRequest false "Refund"
// @Success 200 {object} models.PolicyResponse
// @Failure 404,409 {object} map[string]string
// @Router /policies/{policy_id}/cancel [post]
func (h *PolicyHandler) Cancel(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("policy_id"), 10, 32)

	var req CancelPolicyRequest
	c.ShouldBindJSON(&req)

	policy, err := h.policyService.Cancel(c.Request.Context(), uint(id), req.RefundAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy.ToResponse(), "message": "Póliza cancelada"})
}

// @Summary Transfer Policy
// @Description Move a policy to another vehicle of the same customer
// @Tags Policies
// @Accept json
// @Produce json
// @Param policy_id path int true "Policy ID"
// @Param request body services.TransferInput true "Transfer Data"
// @Success 200 {object} models.PolicyResponse
// @Failure 400,404,409 {object} map[string]string
// @Router /policies/{policy_id}/transfer [post]
func (h *PolicyHandler) Transfer(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("policy_id"), 10, 32)

	var input services.TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy, err := h.transferService.Transfer(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"policy": policy.ToResponse(), "message": "Póliza traspasada exitosamente"})
}

// @Summary Policy Statement PDF
// @Description Download the policy's payment ledger as a PDF
// @Tags Policies
// @Produce application/pdf
// @Param policy_id path int true "Policy ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /policies/{policy_id}/statement [get]
func (h *PolicyHandler) Statement(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("policy_id"), 10, 32)

	data, filename, err := h.documentService.PolicyStatement(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", data)
}
