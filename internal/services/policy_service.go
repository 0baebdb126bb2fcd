package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rmedina/segurapp-api/internal/jobs"
	"github.com/rmedina/segurapp-api/internal/locks"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/repository"
	"github.com/rmedina/segurapp-api/internal/statemachine"
	"gorm.io/gorm"
)

type PolicyService struct {
	repo            repository.PolicyRepository
	customerRepo    repository.CustomerRepository
	companyRepo     repository.CompanyRepository
	agentRepo       repository.AgentTransactionRepository
	financeRepo     repository.FinanceRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	worker          *jobs.Worker
	customerLocks   *locks.KeyedMutex
}

func NewPolicyService(
	repo repository.PolicyRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	agentRepo repository.AgentTransactionRepository,
	financeRepo repository.FinanceRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
	worker *jobs.Worker,
	customerLocks *locks.KeyedMutex,
) *PolicyService {
	return &PolicyService{
		repo:            repo,
		customerRepo:    customerRepo,
		companyRepo:     companyRepo,
		agentRepo:       agentRepo,
		financeRepo:     financeRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		worker:          worker,
		customerLocks:   customerLocks,
	}
}

// ChequeInput carries the bank instrument backing a cheque payment
type ChequeInput struct {
	ChequeNumber string    `json:"cheque_number" binding:"required"`
	BankName     string    `json:"bank_name"`
	DueDate      time.Time `json:"due_date" binding:"required"`
}

// PaymentInput is one payment event to record against a policy
type PaymentInput struct {
	Amount        float64      `json:"amount" binding:"required"`
	Method        string       `json:"method" binding:"required"`
	PaymentDate   *time.Time   `json:"payment_date"`
	ReceiptNumber string       `json:"receipt_number"`
	Cheque        *ChequeInput `json:"cheque"`
}

// CommissionInput records the agent commission flow for a new policy.
// A credit means the company owes the agent, a debit the reverse.
type CommissionInput struct {
	AgentID uint    `json:"agent_id" binding:"required"`
	TxnType string  `json:"txn_type" binding:"required"`
	Amount  float64 `json:"amount" binding:"required"`
}

// CreatePolicyInput is the request to open a policy, optionally with its
// initial payments and commission entry.
type CreatePolicyInput struct {
	VehicleID     uint             `json:"vehicle_id" binding:"required"`
	CompanyID     uint             `json:"company_id" binding:"required"`
	AgentID       *uint            `json:"agent_id"`
	InsuranceType string           `json:"insurance_type" binding:"required"`
	Amount        float64          `json:"amount" binding:"required"`
	StartDate     *time.Time       `json:"start_date"`
	Payments      []PaymentInput   `json:"payments"`
	Commission    *CommissionInput `json:"commission"`
}

// FindByID gets a policy by ID
func (s *PolicyService) FindByID(ctx context.Context, id uint) (*models.Policy, error) {
	policy, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return policy, nil
}

func (s *PolicyService) FindByVehicle(ctx context.Context, vehicleID uint) ([]models.Policy, error) {
	return s.repo.FindByVehicle(ctx, vehicleID)
}

func (s *PolicyService) List(ctx context.Context, query *repository.ListQuery) ([]models.Policy, int64, error) {
	return s.repo.List(ctx, query)
}

// Create opens a new policy. The coverage window chains onto the vehicle's
// latest active policy when no start date is given, and initial payments may
// not exceed the policy amount.
func (s *PolicyService) Create(ctx context.Context, input *CreatePolicyInput) (*models.Policy, error) {
	vehicle, err := s.customerRepo.FindVehicleByID(ctx, input.VehicleID)
	if err != nil {
		return nil, asNotFound(err)
	}

	// All writes against a customer's policies are serialized on the
	// customer id.
	s.customerLocks.Lock(vehicle.CustomerID)
	defer s.customerLocks.Unlock(vehicle.CustomerID)

	company, err := s.companyRepo.FindByID(ctx, input.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	if !company.Offers(input.InsuranceType) {
		return nil, ErrTypeNotOffered
	}
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var initialTotal float64
	for i := range input.Payments {
		p := &input.Payments[i]
		if p.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		if !models.ValidPaymentMethod(p.Method) {
			return nil, ErrInvalidMethod
		}
		if p.Method == models.PaymentMethodCheque && p.Cheque == nil {
			return nil, &Error{KindValidation, "un pago con cheque requiere los datos del cheque"}
		}
		initialTotal += p.Amount
	}
	if initialTotal > input.Amount {
		return nil, ErrAmountExceedsDebt
	}

	startDate := time.Now()
	if input.StartDate != nil {
		startDate = *input.StartDate
	} else {
		latest, err := s.repo.FindLatestEndDate(ctx, vehicle.ID)
		if err != nil {
			return nil, err
		}
		if latest != nil && latest.After(startDate) {
			startDate = *latest
		}
	}

	policy := &models.Policy{
		VehicleID:     vehicle.ID,
		CompanyID:     company.ID,
		AgentID:       input.AgentID,
		InsuranceType: input.InsuranceType,
		Amount:        input.Amount,
		RemainingDebt: input.Amount,
		Status:        models.PolicyStatusActive,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(1, 0, 0),
	}
	for i := range input.Payments {
		policy.Payments = append(policy.Payments, s.buildPayment(&input.Payments[i], vehicle.CustomerID))
	}

	if err := s.repo.Create(ctx, policy); err != nil {
		return nil, err
	}

	for i := range policy.Payments {
		s.recordPaymentRevenue(policy, &policy.Payments[i])
	}

	if input.Commission != nil {
		s.recordCommission(policy, vehicle, input.Commission)
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"Nueva póliza",
			fmt.Sprintf("Se ha registrado la póliza #%d para la placa %s", policy.ID, vehicle.PlateNumber),
			models.NotificationTypePolicyCreated)
	})

	s.auditSvc.Log(ctx, 0, "CREATE", "Policy", policy.ID,
		fmt.Sprintf("Póliza %s creada para la placa %s. Monto: %.2f", policy.InsuranceType, vehicle.PlateNumber, policy.Amount), "", "")

	return policy, nil
}

// AddPayment records a payment against a policy. Fully paid policies reject
// further payments, and a payment can never exceed the remaining debt.
func (s *PolicyService) AddPayment(ctx context.Context, policyID uint, input *PaymentInput) (*models.Policy, error) {
	peek, err := s.repo.FindByIDWithDetails(ctx, policyID)
	if err != nil {
		return nil, asNotFound(err)
	}

	s.customerLocks.Lock(peek.Vehicle.CustomerID)
	defer s.customerLocks.Unlock(peek.Vehicle.CustomerID)

	// Re-read under the lock; another writer may have landed between the
	// peek and the acquire.
	policy, err := s.repo.FindByIDWithDetails(ctx, policyID)
	if err != nil {
		return nil, asNotFound(err)
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !models.ValidPaymentMethod(input.Method) {
		return nil, ErrInvalidMethod
	}
	if input.Method == models.PaymentMethodCheque && input.Cheque == nil {
		return nil, &Error{KindValidation, "un pago con cheque requiere los datos del cheque"}
	}
	if policy.IsFullyPaid() {
		return nil, ErrPolicyFullyPaid
	}
	if input.Amount > policy.RemainingDebt {
		return nil, ErrAmountExceedsDebt
	}

	payment := s.buildPayment(input, policy.Vehicle.CustomerID)
	if err := s.repo.AppendPayment(ctx, policy, &payment); err != nil {
		return nil, err
	}

	s.recordPaymentRevenue(policy, &payment)

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"Pago recibido",
			fmt.Sprintf("Pago de %.2f recibido para la póliza #%d, recibo %s", payment.Amount, policy.ID, payment.ReceiptNumber),
			models.NotificationTypePaymentReceived)
	})

	s.auditSvc.Log(ctx, 0, "ADD_PAYMENT", "Policy", policy.ID,
		fmt.Sprintf("Pago de %.2f (%s) aplicado. Deuda restante: %.2f", payment.Amount, payment.Method, policy.RemainingDebt), "", "")

	return policy, nil
}

// Cancel marks a policy cancelled. Cancellation is terminal and may carry a
// refund, recorded as an agency expense.
func (s *PolicyService) Cancel(ctx context.Context, id uint, refundAmount *float64) (*models.Policy, error) {
	peek, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	s.customerLocks.Lock(peek.Vehicle.CustomerID)
	defer s.customerLocks.Unlock(peek.Vehicle.CustomerID)

	policy, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	if refundAmount != nil && *refundAmount < 0 {
		return nil, ErrInvalidAmount
	}

	fsm := statemachine.NewPolicyFSM(policy)
	if err := fsm.Cancel(ctx); err != nil {
		return nil, ErrAlreadyCancelled
	}

	now := time.Now()
	policy.CancelledAt = &now
	policy.RefundAmount = refundAmount

	if err := s.repo.Update(ctx, policy); err != nil {
		return nil, err
	}

	if refundAmount != nil && *refundAmount > 0 {
		refund := *refundAmount
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.financeRepo.CreateExpense(ctx, &models.Expense{
				SourceType:  models.FinanceSourcePolicyRefund,
				SourceID:    policy.ID,
				Description: fmt.Sprintf("Reembolso por cancelación de la póliza #%d", policy.ID),
				Amount:      refund,
				EntryDate:   now,
			})
		})
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"Póliza cancelada",
			fmt.Sprintf("La póliza #%d ha sido cancelada", policy.ID),
			models.NotificationTypePolicyCancelled)
	})

	details := fmt.Sprintf("Póliza #%d cancelada", policy.ID)
	if refundAmount != nil {
		details = fmt.Sprintf("%s. Reembolso: %.2f", details, *refundAmount)
	}
	s.auditSvc.Log(ctx, 0, "CANCEL", "Policy", policy.ID, details, "", "")

	return policy, nil
}

func (s *PolicyService) buildPayment(input *PaymentInput, customerID uint) models.Payment {
	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}
	receipt := input.ReceiptNumber
	if receipt == "" {
		receipt = generateReceiptNumber()
	}

	payment := models.Payment{
		Amount:        input.Amount,
		Method:        input.Method,
		PaymentDate:   paymentDate,
		ReceiptNumber: receipt,
	}
	if input.Cheque != nil {
		payment.Cheque = &models.Cheque{
			GUID:         uuid.NewString(),
			ChequeNumber: input.Cheque.ChequeNumber,
			BankName:     input.Cheque.BankName,
			DueDate:      input.Cheque.DueDate,
			Amount:       input.Amount,
			Status:       models.ChequeStatusPending,
			CustomerID:   &customerID,
		}
	}
	return payment
}

// recordPaymentRevenue writes the agency revenue row for a payment.
// Best-effort: a failed write is logged by the worker, never surfaced.
func (s *PolicyService) recordPaymentRevenue(policy *models.Policy, payment *models.Payment) {
	paymentID := payment.ID
	amount := payment.Amount
	entryDate := payment.PaymentDate
	receipt := payment.ReceiptNumber
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.financeRepo.CreateRevenue(ctx, &models.Revenue{
			SourceType:  models.FinanceSourcePolicyPayment,
			SourceID:    paymentID,
			Description: fmt.Sprintf("Pago de póliza #%d, recibo %s", policy.ID, receipt),
			Amount:      amount,
			EntryDate:   entryDate,
		})
	})
}

func (s *PolicyService) recordCommission(policy *models.Policy, vehicle *models.Vehicle, input *CommissionInput) {
	if input.Amount <= 0 || (input.TxnType != models.TxnTypeCredit && input.TxnType != models.TxnTypeDebit) {
		return
	}
	txn := &models.AgentTransaction{
		AgentID:     input.AgentID,
		TxnType:     input.TxnType,
		Amount:      input.Amount,
		Status:      models.TxnStatusPending,
		Description: fmt.Sprintf("Comisión por póliza #%d (%s)", policy.ID, policy.InsuranceType),
		PolicyID:    &policy.ID,
		VehicleID:   &vehicle.ID,
		CustomerID:  &vehicle.CustomerID,
	}
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.agentRepo.Create(ctx, txn)
	})
}

// NotifyExpiringPolicies alerts the admins about active policies whose
// coverage ends within the given window. Run on a schedule by the worker.
func (s *PolicyService) NotifyExpiringPolicies(ctx context.Context, days int) error {
	policies, err := s.repo.FindExpiringWithin(ctx, days)
	if err != nil {
		return err
	}
	for i := range policies {
		policy := policies[i]
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.notificationSvc.NotifyAdmins(ctx,
				"Póliza por vencer",
				fmt.Sprintf("La póliza #%d de la placa %s vence el %s", policy.ID, policy.Vehicle.PlateNumber, policy.EndDate.Format("2006-01-02")),
				models.NotificationTypePolicyExpiring)
		})
	}
	return nil
}

func generateReceiptNumber() string {
	return fmt.Sprintf("REC-%d-%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

// asNotFound maps gorm's record-not-found onto the service error taxonomy
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
