package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Customer     CustomerRepository
	Policy       PolicyRepository
	Cheque       ChequeRepository
	AgentTxn     AgentTransactionRepository
	Company      CompanyRepository
	PricingRule  PricingRuleRepository
	RoadService  RoadServiceRepository
	Finance      FinanceRepository
	Notification NotificationRepository
	User         UserRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:     NewCustomerRepository(db),
		Policy:       NewPolicyRepository(db),
		Cheque:       NewChequeRepository(db),
		AgentTxn:     NewAgentTransactionRepository(db),
		Company:      NewCompanyRepository(db),
		PricingRule:  NewPricingRuleRepository(db),
		RoadService:  NewRoadServiceRepository(db),
		Finance:      NewFinanceRepository(db),
		Notification: NewNotificationRepository(db),
		User:         NewUserRepository(db),
	}
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}
