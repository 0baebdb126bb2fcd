package services

import (
	"context"
	"time"

	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/repository"
)

// Shared repository mocks. Each embeds the interface so only the methods a
// test cares about need a stub; calling an unstubbed method panics loudly.

type mockPolicyRepo struct {
	repository.PolicyRepository
	mockFindByIDWithDetails func(ctx context.Context, id uint) (*models.Policy, error)
	mockFindLatestEndDate   func(ctx context.Context, vehicleID uint) (*time.Time, error)
	mockFindExpiringWithin  func(ctx context.Context, days int) ([]models.Policy, error)
	mockCreate              func(ctx context.Context, policy *models.Policy) error
	mockUpdate              func(ctx context.Context, policy *models.Policy) error
	mockAppendPayment       func(ctx context.Context, policy *models.Policy, payment *models.Payment) error
	mockTransfer            func(ctx context.Context, oldPolicy, newPolicy *models.Policy) error
}

func (m *mockPolicyRepo) FindByIDWithDetails(ctx context.Context, id uint) (*models.Policy, error) {
	return m.mockFindByIDWithDetails(ctx, id)
}

func (m *mockPolicyRepo) FindLatestEndDate(ctx context.Context, vehicleID uint) (*time.Time, error) {
	if m.mockFindLatestEndDate != nil {
		return m.mockFindLatestEndDate(ctx, vehicleID)
	}
	return nil, nil
}

func (m *mockPolicyRepo) FindExpiringWithin(ctx context.Context, days int) ([]models.Policy, error) {
	if m.mockFindExpiringWithin != nil {
		return m.mockFindExpiringWithin(ctx, days)
	}
	return nil, nil
}

func (m *mockPolicyRepo) Create(ctx context.Context, policy *models.Policy) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, policy)
	}
	return nil
}

func (m *mockPolicyRepo) Update(ctx context.Context, policy *models.Policy) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, policy)
	}
	return nil
}

func (m *mockPolicyRepo) AppendPayment(ctx context.Context, policy *models.Policy, payment *models.Payment) error {
	if m.mockAppendPayment != nil {
		return m.mockAppendPayment(ctx, policy, payment)
	}
	// Mirror the real repository: append the event and recompute the totals.
	policy.Payments = append(policy.Payments, *payment)
	policy.Recompute()
	return nil
}

func (m *mockPolicyRepo) Transfer(ctx context.Context, oldPolicy, newPolicy *models.Policy) error {
	if m.mockTransfer != nil {
		return m.mockTransfer(ctx, oldPolicy, newPolicy)
	}
	return nil
}

type mockCustomerRepo struct {
	repository.CustomerRepository
	mockFindByID        func(ctx context.Context, id uint) (*models.Customer, error)
	mockFindVehicleByID func(ctx context.Context, id uint) (*models.Vehicle, error)
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockCustomerRepo) FindVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	return m.mockFindVehicleByID(ctx, id)
}

type mockCompanyRepo struct {
	repository.CompanyRepository
	mockFindByID func(ctx context.Context, id uint) (*models.InsuranceCompany, error)
}

func (m *mockCompanyRepo) FindByID(ctx context.Context, id uint) (*models.InsuranceCompany, error) {
	return m.mockFindByID(ctx, id)
}

type mockChequeRepo struct {
	repository.ChequeRepository
	mockFindByID           func(ctx context.Context, id uint) (*models.Cheque, error)
	mockCreate             func(ctx context.Context, cheque *models.Cheque) error
	mockUpdate             func(ctx context.Context, cheque *models.Cheque) error
	mockDelete             func(ctx context.Context, id uint) error
	mockDeleteWithReversal func(ctx context.Context, cheque *models.Cheque) (*models.Policy, error)
	mockFindDuePending     func(ctx context.Context) ([]models.Cheque, error)
}

func (m *mockChequeRepo) FindByID(ctx context.Context, id uint) (*models.Cheque, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockChequeRepo) Create(ctx context.Context, cheque *models.Cheque) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, cheque)
	}
	return nil
}

func (m *mockChequeRepo) Update(ctx context.Context, cheque *models.Cheque) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, cheque)
	}
	return nil
}

func (m *mockChequeRepo) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}

func (m *mockChequeRepo) DeleteWithReversal(ctx context.Context, cheque *models.Cheque) (*models.Policy, error) {
	return m.mockDeleteWithReversal(ctx, cheque)
}

func (m *mockChequeRepo) FindDuePending(ctx context.Context) ([]models.Cheque, error) {
	if m.mockFindDuePending != nil {
		return m.mockFindDuePending(ctx)
	}
	return nil, nil
}

type mockAgentTxnRepo struct {
	repository.AgentTransactionRepository
	mockFindByID        func(ctx context.Context, id uint) (*models.AgentTransaction, error)
	mockCreate          func(ctx context.Context, txn *models.AgentTransaction) error
	mockUpdateStatus    func(ctx context.Context, txn *models.AgentTransaction) error
	mockBalanceForAgent func(ctx context.Context, agentID uint) (float64, error)
}

func (m *mockAgentTxnRepo) FindByID(ctx context.Context, id uint) (*models.AgentTransaction, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockAgentTxnRepo) Create(ctx context.Context, txn *models.AgentTransaction) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, txn)
	}
	return nil
}

func (m *mockAgentTxnRepo) UpdateStatus(ctx context.Context, txn *models.AgentTransaction) error {
	if m.mockUpdateStatus != nil {
		return m.mockUpdateStatus(ctx, txn)
	}
	return nil
}

func (m *mockAgentTxnRepo) BalanceForAgent(ctx context.Context, agentID uint) (float64, error) {
	if m.mockBalanceForAgent != nil {
		return m.mockBalanceForAgent(ctx, agentID)
	}
	return 0, nil
}

type mockFinanceRepo struct {
	repository.FinanceRepository
	mockCreateRevenue func(ctx context.Context, revenue *models.Revenue) error
	mockCreateExpense func(ctx context.Context, expense *models.Expense) error
	mockListRevenues  func(ctx context.Context, query *repository.ListQuery) ([]models.Revenue, int64, error)
	mockListExpenses  func(ctx context.Context, query *repository.ListQuery) ([]models.Expense, int64, error)
}

func (m *mockFinanceRepo) CreateRevenue(ctx context.Context, revenue *models.Revenue) error {
	if m.mockCreateRevenue != nil {
		return m.mockCreateRevenue(ctx, revenue)
	}
	return nil
}

func (m *mockFinanceRepo) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if m.mockCreateExpense != nil {
		return m.mockCreateExpense(ctx, expense)
	}
	return nil
}

func (m *mockFinanceRepo) ListRevenues(ctx context.Context, query *repository.ListQuery) ([]models.Revenue, int64, error) {
	return m.mockListRevenues(ctx, query)
}

func (m *mockFinanceRepo) ListExpenses(ctx context.Context, query *repository.ListQuery) ([]models.Expense, int64, error) {
	return m.mockListExpenses(ctx, query)
}

type mockUserRepo struct {
	repository.UserRepository
	mockFindByID   func(ctx context.Context, id uint) (*models.User, error)
	mockFindAdmins func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockUserRepo) FindAdmins(ctx context.Context) ([]models.User, error) {
	if m.mockFindAdmins != nil {
		return m.mockFindAdmins(ctx)
	}
	return nil, nil
}

type mockNotificationRepo struct {
	repository.NotificationRepository
	mockCreate func(ctx context.Context, notification *models.Notification) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, notification)
	}
	return nil
}

type mockPricingRuleRepo struct {
	repository.PricingRuleRepository
	mockFindByCompanyAndType func(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error)
	mockCreate               func(ctx context.Context, rule *models.PricingRule) error
	mockReplaceRows          func(ctx context.Context, rule *models.PricingRule, rows []models.PricingRuleRow) error
}

func (m *mockPricingRuleRepo) FindByCompanyAndType(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error) {
	return m.mockFindByCompanyAndType(ctx, companyID, pricingType)
}

func (m *mockPricingRuleRepo) Create(ctx context.Context, rule *models.PricingRule) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, rule)
	}
	return nil
}

func (m *mockPricingRuleRepo) ReplaceRows(ctx context.Context, rule *models.PricingRule, rows []models.PricingRuleRow) error {
	if m.mockReplaceRows != nil {
		return m.mockReplaceRows(ctx, rule, rows)
	}
	return nil
}

type mockRoadServiceRepo struct {
	repository.RoadServiceRepository
	mockFindByID func(ctx context.Context, id uint) (*models.RoadService, error)
	mockCreate   func(ctx context.Context, service *models.RoadService) error
}

func (m *mockRoadServiceRepo) FindByID(ctx context.Context, id uint) (*models.RoadService, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockRoadServiceRepo) Create(ctx context.Context, service *models.RoadService) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, service)
	}
	return nil
}
