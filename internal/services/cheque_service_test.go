package services

import (
	"context"
	"testing"
	"time"

	"github.com/rmedina/segurapp-api/internal/jobs"
	"github.com/rmedina/segurapp-api/internal/locks"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type chequeTestDeps struct {
	chequeRepo   *mockChequeRepo
	policyRepo   *mockPolicyRepo
	customerRepo *mockCustomerRepo
	worker       *jobs.Worker
	service      *ChequeService
}

func newChequeTestDeps() *chequeTestDeps {
	d := &chequeTestDeps{
		chequeRepo:   &mockChequeRepo{},
		policyRepo:   &mockPolicyRepo{},
		customerRepo: &mockCustomerRepo{},
		worker:       jobs.NewWorker(0),
	}
	notifSvc := NewNotificationService(&mockNotificationRepo{}, &mockUserRepo{})
	d.service = NewChequeService(d.chequeRepo, d.policyRepo, d.customerRepo,
		notifSvc, nil, d.worker, locks.NewKeyedMutex())
	return d
}

func pendingCheque() *models.Cheque {
	return &models.Cheque{
		ID:           10,
		GUID:         "7f4bb8a2-0000-0000-0000-000000000000",
		ChequeNumber: "000451",
		BankName:     "Banco Atlántida",
		DueDate:      time.Now().AddDate(0, 1, 0),
		Amount:       2500,
		Status:       models.ChequeStatusPending,
	}
}

func TestChequeService_Create_Standalone(t *testing.T) {
	d := newChequeTestDeps()
	defer d.worker.Shutdown()

	var created *models.Cheque
	d.chequeRepo.mockCreate = func(ctx context.Context, cheque *models.Cheque) error {
		cheque.ID = 10
		created = cheque
		return nil
	}

	cheque := &models.Cheque{
		ChequeNumber: "000451",
		Amount:       2500,
		DueDate:      time.Now().AddDate(0, 1, 0),
	}
	err := d.service.Create(context.Background(), cheque)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, models.ChequeStatusPending, cheque.Status)
	assert.NotEmpty(t, cheque.GUID)
}

func TestChequeService_Create_FillsRefsFromPolicy(t *testing.T) {
	d := newChequeTestDeps()
	defer d.worker.Shutdown()

	policyID := uint(50)
	d.policyRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Policy, error) {
		return activePolicy(1000, 0), nil
	}

	cheque := &models.Cheque{
		ChequeNumber: "000452",
		Amount:       500,
		DueDate:      time.Now().AddDate(0, 1, 0),
		PolicyID:     &policyID,
	}
	err := d.service.Create(context.Background(), cheque)
	require.NoError(t, err)

	require.NotNil(t, cheque.VehicleID)
	require.NotNil(t, cheque.CustomerID)
	assert.Equal(t, uint(3), *cheque.VehicleID)
	assert.Equal(t, uint(7), *cheque.CustomerID)
}

func TestChequeService_Create_InvalidAmount(t *testing.T) {
	d := newChequeTestDeps()
	defer d.worker.Shutdown()

	err := d.service.Create(context.Background(), &models.Cheque{ChequeNumber: "1", Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestChequeService_UpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		target  string
		wantErr bool
	}{
		{"pending to cleared", models.ChequeStatusPending, models.ChequeStatusCleared, false},
		{"pending to returned", models.ChequeStatusPending, models.ChequeStatusReturned, false},
		{"pending to cancelled", models.ChequeStatusPending, models.ChequeStatusCancelled, false},
		{"cleared is terminal", models.ChequeStatusCleared, models.ChequeStatusReturned, true},
		{"returned is terminal", models.ChequeStatusReturned, models.ChequeStatusCleared, true},
		{"cancelled is terminal", models.ChequeStatusCancelled, models.ChequeStatusCleared, true},
		{"no transition back to pending", models.ChequeStatusCleared, models.ChequeStatusPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newChequeTestDeps()
			defer d.worker.Shutdown()

			d.chequeRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Cheque, error) {
				cheque := pendingCheque()
				cheque.Status = tt.from
				return cheque, nil
			}

			cheque, err := d.service.UpdateStatus(context.Background(), 10, tt.target, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, cheque.Status)
		})
	}
}

func TestChequeService_UpdateStatus_ClearedDateSet(t *testing.T) {
	d := newChequeTestDeps()
	defer d.worker.Shutdown()

	d.chequeRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Cheque, error) {
		return pendingCheque(), nil
	}

	cheque, err := d.service.UpdateStatus(context.Background(), 10, models.ChequeStatusCleared, nil)
	require.NoError(t, err)
	assert.NotNil(t, cheque.ClearedDate)
	assert.Nil(t, cheque.ReturnedDate)
}

func TestChequeService_UpdateStatus_ReturnedKeepsReason(t *testing.T) {
	d := newChequeTestDeps()
	defer d.worker.Shutdown()

	d.chequeRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Cheque, error) {
		return pendingCheque(), nil
	}

	reason := "fondos insuficientes"
	cheque, err := d.service.UpdateStatus(context.Background(), 10, models.ChequeStatusReturned, &reason)
	require.NoError(t, err)

	assert.NotNil(t, cheque.ReturnedDate)
	require.NotNil(t, cheque.ReturnedReason)
	assert.Equal(t, reason, *cheque.ReturnedReason)
}

func TestChequeService_UpdateStatus_UnknownStatus(t *testing.T) {
	d := newChequeTestDeps()
	defer d.worker.Shutdown()

	d.chequeRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Cheque, error) {
		return pendingCheque(), nil
	}

	_, err := d.service.UpdateStatus(context.Background(), 10, "bounced", nil)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestChequeService_Delete_StandaloneCheque(t *testing.T) {
	d := newChequeTestDeps()
	defer d.worker.Shutdown()

	deleted := false
	d.chequeRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Cheque, error) {
		return pendingCheque(), nil
	}
	d.chequeRepo.mockDelete = func(ctx context.Context, id uint) error {
		deleted = true
		return nil
	}

	policy, err := d.service.Delete(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, policy)
	assert.True(t, deleted)
}

func TestChequeService_Delete_ReversesLinkedPayment(t *testing.T) {
	d := newChequeTestDeps()
	defer d.worker.Shutdown()

	policyID := uint(50)
	d.chequeRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Cheque, error) {
		cheque := pendingCheque()
		cheque.PolicyID = &policyID
		return cheque, nil
	}
	d.policyRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Policy, error) {
		return activePolicy(1000, 400), nil
	}
	d.chequeRepo.mockDeleteWithReversal = func(ctx context.Context, cheque *models.Cheque) (*models.Policy, error) {
		// The repository removes the cheque-backed payment and recomputes.
		policy := activePolicy(1000, 400)
		policy.Payments = nil
		policy.Recompute()
		return policy, nil
	}

	policy, err := d.service.Delete(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, policy)

	// The debt reappears on the policy.
	assert.Equal(t, 0.0, policy.PaidAmount)
	assert.Equal(t, 1000.0, policy.RemainingDebt)
}

func TestChequeService_Delete_DanglingPolicyRef(t *testing.T) {
	d := newChequeTestDeps()
	defer d.worker.Shutdown()

	policyID := uint(404)
	deleted := false
	d.chequeRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Cheque, error) {
		cheque := pendingCheque()
		cheque.PolicyID = &policyID
		return cheque, nil
	}
	d.policyRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Policy, error) {
		return nil, gorm.ErrRecordNotFound
	}
	d.chequeRepo.mockDelete = func(ctx context.Context, id uint) error {
		deleted = true
		return nil
	}

	policy, err := d.service.Delete(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, policy)
	assert.True(t, deleted)
}
