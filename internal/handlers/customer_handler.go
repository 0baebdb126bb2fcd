package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/services"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// @Summary List Customers
// @Description Get a paginated list of customers
// @Tags Customers
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name, identity or phone"
// @Success 200 {object} map[string]interface{}
// @Router /customers [get]
func (h *CustomerHandler) Index(c *gin.Context) {
	query := parseListQuery(c)

	customers, total, err := h.customerService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":  customers,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get Customer
// @Description Get a customer with vehicles and their policies
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 404 {object} map[string]string
// @Router /customers/{customer_id} [get]
func (h *CustomerHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)
	customer, err := h.customerService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// @Summary Create Customer
// @Description Register a customer, optionally with vehicles
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body models.Customer true "Customer Data"
// @Success 201 {object} models.Customer
// @Failure 400 {object} map[string]string
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.customerService.Create(c.Request.Context(), &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer, "message": "Cliente registrado"})
}

// @Summary Add Vehicle
// @Description Register a vehicle for a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Param request body models.Vehicle true "Vehicle Data"
// @Success 201 {object} models.Vehicle
// @Failure 400,404 {object} map[string]string
// @Router /customers/{customer_id}/vehicles [post]
func (h *CustomerHandler) AddVehicle(c *gin.Context) {
	customerID, _ := strconv.ParseUint(c.Param("customer_id"), 10, 32)

	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle.CustomerID = uint(customerID)

	if err := h.customerService.AddVehicle(c.Request.Context(), &vehicle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle, "message": "Vehículo agregado"})
}
