package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmedina/segurapp-api/internal/repository"
	"github.com/rmedina/segurapp-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Customer     *CustomerHandler
	Policy       *PolicyHandler
	Cheque       *ChequeHandler
	Pricing      *PricingHandler
	RoadService  *RoadServiceHandler
	Commission   *CommissionHandler
	Notification *NotificationHandler
	Finance      *FinanceHandler
	Audit        *AuditHandler
	Job          *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Customer:     NewCustomerHandler(svcs.Customer),
		Policy:       NewPolicyHandler(svcs.Policy, svcs.Transfer, svcs.Document),
		Cheque:       NewChequeHandler(svcs.Cheque),
		Pricing:      NewPricingHandler(svcs.Pricing),
		RoadService:  NewRoadServiceHandler(svcs.RoadService),
		Commission:   NewCommissionHandler(svcs.Commission),
		Notification: NewNotificationHandler(svcs.Notification),
		Finance:      NewFinanceHandler(svcs.Finance),
		Audit:        NewAuditHandler(svcs.Audit),
		Job:          NewJobHandler(svcs.Job),
	}
}

// respondError maps service error kinds onto HTTP statuses. Unknown errors
// become 500s with the raw message.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		status := http.StatusUnprocessableEntity
		switch svcErr.Kind {
		case services.KindValidation:
			status = http.StatusBadRequest
		case services.KindNotFound:
			status = http.StatusNotFound
		case services.KindConflict:
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": svcErr.Message, "kind": string(svcErr.Kind)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// parseListQuery reads the common pagination/search parameters
func parseListQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	return query
}

func paginationResponse(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
	}
}
