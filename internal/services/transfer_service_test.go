package services

import (
	"context"
	"testing"

	"github.com/rmedina/segurapp-api/internal/jobs"
	"github.com/rmedina/segurapp-api/internal/locks"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transferTestDeps struct {
	policyRepo   *mockPolicyRepo
	customerRepo *mockCustomerRepo
	financeRepo  *mockFinanceRepo
	worker       *jobs.Worker
	service      *TransferService
}

func newTransferTestDeps() *transferTestDeps {
	d := &transferTestDeps{
		policyRepo:   &mockPolicyRepo{},
		customerRepo: &mockCustomerRepo{},
		financeRepo:  &mockFinanceRepo{},
		worker:       jobs.NewWorker(0),
	}
	notifSvc := NewNotificationService(&mockNotificationRepo{}, &mockUserRepo{})
	d.service = NewTransferService(d.policyRepo, d.customerRepo, d.financeRepo,
		notifSvc, nil, d.worker, locks.NewKeyedMutex())
	return d
}

func TestTransferService_Transfer_CreatesNewPolicyIdentity(t *testing.T) {
	d := newTransferTestDeps()
	defer d.worker.Shutdown()

	d.policyRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Policy, error) {
		return activePolicy(1000, 400), nil
	}
	d.customerRepo.mockFindVehicleByID = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: 9, CustomerID: 7, PlateNumber: "HAB9999"}, nil
	}
	d.policyRepo.mockTransfer = func(ctx context.Context, oldPolicy, newPolicy *models.Policy) error {
		newPolicy.ID = 51
		return nil
	}

	newPolicy, err := d.service.Transfer(context.Background(), 50, &TransferInput{ToVehicleID: 9})
	require.NoError(t, err)

	assert.Equal(t, uint(51), newPolicy.ID)
	assert.Equal(t, uint(9), newPolicy.VehicleID)
	// Financial state carries over unchanged.
	assert.Equal(t, 1000.0, newPolicy.Amount)
	assert.Equal(t, 400.0, newPolicy.PaidAmount)
	assert.Equal(t, 600.0, newPolicy.RemainingDebt)
	assert.Len(t, newPolicy.Payments, 1)
}

func TestTransferService_Transfer_DifferentOwner(t *testing.T) {
	d := newTransferTestDeps()
	defer d.worker.Shutdown()

	d.policyRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Policy, error) {
		return activePolicy(1000, 0), nil
	}
	d.customerRepo.mockFindVehicleByID = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: 9, CustomerID: 8}, nil
	}

	_, err := d.service.Transfer(context.Background(), 50, &TransferInput{ToVehicleID: 9})
	assert.ErrorIs(t, err, ErrVehiclesDifferentOwner)
}

func TestTransferService_Transfer_SameVehicle(t *testing.T) {
	d := newTransferTestDeps()
	defer d.worker.Shutdown()

	d.policyRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Policy, error) {
		return activePolicy(1000, 0), nil
	}
	d.customerRepo.mockFindVehicleByID = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: 3, CustomerID: 7}, nil
	}

	_, err := d.service.Transfer(context.Background(), 50, &TransferInput{ToVehicleID: 3})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestTransferService_Transfer_CancelledPolicy(t *testing.T) {
	d := newTransferTestDeps()
	defer d.worker.Shutdown()

	d.policyRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Policy, error) {
		policy := activePolicy(1000, 0)
		policy.Status = models.PolicyStatusCancelled
		return policy, nil
	}
	d.customerRepo.mockFindVehicleByID = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: 9, CustomerID: 7}, nil
	}

	_, err := d.service.Transfer(context.Background(), 50, &TransferInput{ToVehicleID: 9})
	assert.ErrorIs(t, err, ErrPolicyNotTransferable)
}

func TestTransferService_Transfer_NegativeFee(t *testing.T) {
	d := newTransferTestDeps()
	defer d.worker.Shutdown()

	d.policyRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Policy, error) {
		return activePolicy(1000, 0), nil
	}
	d.customerRepo.mockFindVehicleByID = func(ctx context.Context, id uint) (*models.Vehicle, error) {
		return &models.Vehicle{ID: 9, CustomerID: 7}, nil
	}

	_, err := d.service.Transfer(context.Background(), 50, &TransferInput{ToVehicleID: 9, CustomerFee: -5})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
