package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rmedina/segurapp-api/internal/jobs"
	"github.com/rmedina/segurapp-api/internal/locks"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/repository"
)

// TransferService moves a policy between two vehicles of the same customer.
// The transferred policy gets a new identity; payments are copied over and
// cheques are repointed, so the financial state carries over unchanged.
type TransferService struct {
	policyRepo      repository.PolicyRepository
	customerRepo    repository.CustomerRepository
	financeRepo     repository.FinanceRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	worker          *jobs.Worker
	customerLocks   *locks.KeyedMutex
}

func NewTransferService(
	policyRepo repository.PolicyRepository,
	customerRepo repository.CustomerRepository,
	financeRepo repository.FinanceRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
	worker *jobs.Worker,
	customerLocks *locks.KeyedMutex,
) *TransferService {
	return &TransferService{
		policyRepo:      policyRepo,
		customerRepo:    customerRepo,
		financeRepo:     financeRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		worker:          worker,
		customerLocks:   customerLocks,
	}
}

// TransferInput is the request to move a policy to another vehicle. The fees
// are optional: the customer fee lands as agency revenue, the company fee as
// an agency expense.
type TransferInput struct {
	ToVehicleID uint    `json:"to_vehicle_id" binding:"required"`
	CustomerFee float64 `json:"customer_fee"`
	CompanyFee  float64 `json:"company_fee"`
}

func (s *TransferService) Transfer(ctx context.Context, policyID uint, input *TransferInput) (*models.Policy, error) {
	peek, err := s.policyRepo.FindByIDWithDetails(ctx, policyID)
	if err != nil {
		return nil, asNotFound(err)
	}

	toVehicle, err := s.customerRepo.FindVehicleByID(ctx, input.ToVehicleID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if toVehicle.CustomerID != peek.Vehicle.CustomerID {
		return nil, ErrVehiclesDifferentOwner
	}
	if toVehicle.ID == peek.VehicleID {
		return nil, &Error{KindValidation, "la póliza ya pertenece a ese vehículo"}
	}
	if input.CustomerFee < 0 || input.CompanyFee < 0 {
		return nil, ErrInvalidAmount
	}

	s.customerLocks.Lock(toVehicle.CustomerID)
	defer s.customerLocks.Unlock(toVehicle.CustomerID)

	policy, err := s.policyRepo.FindByIDWithDetails(ctx, policyID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !policy.MayTransfer() {
		return nil, ErrPolicyNotTransferable
	}

	newPolicy := &models.Policy{
		VehicleID:     toVehicle.ID,
		CompanyID:     policy.CompanyID,
		AgentID:       policy.AgentID,
		InsuranceType: policy.InsuranceType,
		Amount:        policy.Amount,
		PaidAmount:    policy.PaidAmount,
		RemainingDebt: policy.RemainingDebt,
		Status:        policy.Status,
		StartDate:     policy.StartDate,
		EndDate:       policy.EndDate,
		Payments:      policy.Payments,
	}

	if err := s.policyRepo.Transfer(ctx, policy, newPolicy); err != nil {
		return nil, err
	}

	now := time.Now()
	if input.CustomerFee > 0 {
		fee := input.CustomerFee
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.financeRepo.CreateRevenue(ctx, &models.Revenue{
				SourceType:  models.FinanceSourceTransferFee,
				SourceID:    newPolicy.ID,
				Description: fmt.Sprintf("Cargo al cliente por traspaso de la póliza #%d", newPolicy.ID),
				Amount:      fee,
				EntryDate:   now,
			})
		})
	}
	if input.CompanyFee > 0 {
		fee := input.CompanyFee
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.financeRepo.CreateExpense(ctx, &models.Expense{
				SourceType:  models.FinanceSourceTransferFee,
				SourceID:    newPolicy.ID,
				Description: fmt.Sprintf("Cargo de la aseguradora por traspaso de la póliza #%d", newPolicy.ID),
				Amount:      fee,
				EntryDate:   now,
			})
		})
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"Póliza traspasada",
			fmt.Sprintf("La póliza #%d fue traspasada a la placa %s como póliza #%d", policyID, toVehicle.PlateNumber, newPolicy.ID),
			models.NotificationTypePolicyTransferred)
	})

	s.auditSvc.Log(ctx, 0, "TRANSFER", "Policy", newPolicy.ID,
		fmt.Sprintf("Póliza #%d traspasada a la placa %s (nueva póliza #%d)", policyID, toVehicle.PlateNumber, newPolicy.ID), "", "")

	return newPolicy, nil
}
