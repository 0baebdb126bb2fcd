package services

import (
	"github.com/rmedina/segurapp-api/internal/jobs"
	"github.com/rmedina/segurapp-api/internal/locks"
	"github.com/rmedina/segurapp-api/internal/repository"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Customer     *CustomerService
	Policy       *PolicyService
	Transfer     *TransferService
	Cheque       *ChequeService
	Pricing      *PricingService
	RoadService  *RoadServiceService
	Commission   *CommissionService
	Notification *NotificationService
	Document     *DocumentService
	Finance      *FinanceService
	Audit        *AuditService
	Job          *JobService
}

// NewServices creates all service instances. A single keyed mutex is shared
// by every service that mutates a customer's policies, so payments,
// cancellations, transfers and cheque reversals against the same customer
// serialize no matter which entry point they came through.
func NewServices(repos *repository.Repositories, worker *jobs.Worker, db *gorm.DB) *Services {
	notificationSvc := NewNotificationService(repos.Notification, repos.User)
	auditSvc := NewAuditService(db)
	customerLocks := locks.NewKeyedMutex()

	return &Services{
		Customer: NewCustomerService(repos.Customer, auditSvc),
		Policy: NewPolicyService(repos.Policy, repos.Customer, repos.Company, repos.AgentTxn,
			repos.Finance, notificationSvc, auditSvc, worker, customerLocks),
		Transfer: NewTransferService(repos.Policy, repos.Customer, repos.Finance,
			notificationSvc, auditSvc, worker, customerLocks),
		Cheque: NewChequeService(repos.Cheque, repos.Policy, repos.Customer,
			notificationSvc, auditSvc, worker, customerLocks),
		Pricing:      NewPricingService(repos.Company, repos.PricingRule, auditSvc),
		RoadService:  NewRoadServiceService(repos.RoadService, repos.Company, auditSvc),
		Commission:   NewCommissionService(repos.AgentTxn, repos.User, auditSvc),
		Notification: notificationSvc,
		Document:     NewDocumentService(repos.Policy),
		Finance:      NewFinanceService(repos.Finance),
		Audit:        auditSvc,
		Job:          NewJobService(worker),
	}
}
