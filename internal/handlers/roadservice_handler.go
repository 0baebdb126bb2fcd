package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/services"
)

type RoadServiceHandler struct {
	roadService *services.RoadServiceService
}

func NewRoadServiceHandler(roadService *services.RoadServiceService) *RoadServiceHandler {
	return &RoadServiceHandler{roadService: roadService}
}

// @Summary List Road Services
// @Description Get a paginated list of roadside-assistance products
// @Tags RoadServices
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} map[string]interface{}
// @Router /road_services [get]
func (h *RoadServiceHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	if active := c.Query("active"); active != "" {
		query.Filters["active"] = active
	}

	roadServices, total, err := h.roadService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"road_services": roadServices,
		"pagination":    paginationResponse(query, total),
	})
}

// @Summary Get Road Service
// @Description Get a roadside-assistance product by ID
// @Tags RoadServices
// @Accept json
// @Produce json
// @Param service_id path int true "Service ID"
// @Success 200 {object} models.RoadService
// @Failure 404 {object} map[string]string
// @Router /road_services/{service_id} [get]
func (h *RoadServiceHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("service_id"), 10, 32)
	roadService, err := h.roadService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"road_service": roadService})
}

// @Summary Quote Road Service
// @Description Price the service for a vehicle of the given model year
// @Tags RoadServices
// @Accept json
// @Produce json
// @Param service_id path int true "Service ID"
// @Param vehicle_year query int true "Vehicle model year"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,409 {object} map[string]string
// @Router /road_services/{service_id}/price [get]
func (h *RoadServiceHandler) Price(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("service_id"), 10, 32)
	vehicleYear, _ := strconv.Atoi(c.Query("vehicle_year"))

	price, err := h.roadService.Price(c.Request.Context(), uint(id), vehicleYear)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

// @Summary Create Road Service
// @Description Register a roadside-assistance product
// @Tags RoadServices
// @Accept json
// @Produce json
// @Param request body models.RoadService true "Service Data"
// @Success 201 {object} models.RoadService
// @Failure 400,404 {object} map[string]string
// @Router /road_services [post]
func (h *RoadServiceHandler) Create(c *gin.Context) {
	var roadService models.RoadService
	if err := c.ShouldBindJSON(&roadService); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.roadService.Create(c.Request.Context(), &roadService); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"road_service": roadService, "message": "Servicio vial creado"})
}

// @Summary Update Road Service
// @Description Update a roadside-assistance product
// @Tags RoadServices
// @Accept json
// @Produce json
// @Param service_id path int true "Service ID"
// @Param request body models.RoadService true "Service Data"
// @Success 200 {object} models.RoadService
// @Failure 400,404 {object} map[string]string
// @Router /road_services/{service_id} [put]
func (h *RoadServiceHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("service_id"), 10, 32)
	roadService, err := h.roadService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := c.ShouldBindJSON(roadService); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	roadService.ID = uint(id)

	if err := h.roadService.Update(c.Request.Context(), roadService); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"road_service": roadService, "message": "Servicio vial actualizado"})
}
