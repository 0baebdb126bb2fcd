package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/services"
)

type PricingHandler struct {
	pricingService *services.PricingService
}

func NewPricingHandler(pricingService *services.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

type QuoteRequest struct {
	PricingType    string  `json:"pricing_type" binding:"required"`
	VehicleType    string  `json:"vehicle_type"`
	DriverAgeGroup string  `json:"driver_age_group"`
	OfferAmount    float64 `json:"offer_amount"`
}

// @Summary Quote Price
// @Description Calculate a policy price for a company under the given pricing scheme
// @Tags Pricing
// @Accept json
// @Produce json
// @Param company_id path int true "Company ID"
// @Param request body QuoteRequest true "Quote Parameters"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,409 {object} map[string]string
// @Router /companies/{company_id}/quote [post]
func (h *PricingHandler) Quote(c *gin.Context) {
	companyID, _ := strconv.ParseUint(c.Param("company_id"), 10, 32)

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price, err := h.pricingService.CalculatePrice(c.Request.Context(), uint(companyID), req.PricingType, services.QuoteParams{
		VehicleType:    req.VehicleType,
		DriverAgeGroup: req.DriverAgeGroup,
		OfferAmount:    req.OfferAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": price})
}

// @Summary List Pricing Rules
// @Description Get all pricing rules configured for a company
// @Tags Pricing
// @Accept json
// @Produce json
// @Param company_id path int true "Company ID"
// @Success 200 {object} map[string]interface{}
// @Router /companies/{company_id}/pricing_rules [get]
func (h *PricingHandler) Index(c *gin.Context) {
	companyID, _ := strconv.ParseUint(c.Param("company_id"), 10, 32)

	rules, err := h.pricingService.FindByCompany(c.Request.Context(), uint(companyID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing_rules": rules})
}

type CreatePricingRuleRequest struct {
	PricingType string                  `json:"pricing_type" binding:"required"`
	FixedAmount *float64                `json:"fixed_amount"`
	Rows        []models.PricingRuleRow `json:"rows"`
}

// @Summary Create Pricing Rule
// @Description Register the pricing configuration for a company and scheme
// @Tags Pricing
// @Accept json
// @Produce json
// @Param company_id path int true "Company ID"
// @Param request body CreatePricingRuleRequest true "Rule Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400,404,409 {object} map[string]string
// @Router /companies/{company_id}/pricing_rules [post]
func (h *PricingHandler) Create(c *gin.Context) {
	companyID, _ := strconv.ParseUint(c.Param("company_id"), 10, 32)

	var req CreatePricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule := &models.PricingRule{
		CompanyID:   uint(companyID),
		PricingType: req.PricingType,
		FixedAmount: req.FixedAmount,
		Rows:        req.Rows,
	}
	if err := h.pricingService.CreateRule(c.Request.Context(), rule); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"pricing_rule": rule, "message": "Regla de precios creada"})
}

// @Summary Import Pricing Matrix
// @Description Replace a company's matrix rows from an uploaded XLSX workbook
// @Tags Pricing
// @Accept multipart/form-data
// @Produce json
// @Param company_id path int true "Company ID"
// @Param file formData file true "XLSX workbook"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,409 {object} map[string]string
// @Router /companies/{company_id}/pricing_rules/import [post]
func (h *PricingHandler) Import(c *gin.Context) {
	companyID, _ := strconv.ParseUint(c.Param("company_id"), 10, 32)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El archivo es requerido"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo leer el archivo"})
		return
	}
	defer file.Close()

	rule, err := h.pricingService.ImportMatrix(c.Request.Context(), uint(companyID), file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pricing_rule": rule,
		"message":      "Matriz de precios importada exitosamente",
	})
}
