package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rmedina/segurapp-api/internal/jobs"
	"github.com/rmedina/segurapp-api/internal/locks"
	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/repository"
	"github.com/rmedina/segurapp-api/internal/statemachine"
)

type ChequeService struct {
	repo            repository.ChequeRepository
	policyRepo      repository.PolicyRepository
	customerRepo    repository.CustomerRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	worker          *jobs.Worker
	customerLocks   *locks.KeyedMutex
}

func NewChequeService(
	repo repository.ChequeRepository,
	policyRepo repository.PolicyRepository,
	customerRepo repository.CustomerRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
	worker *jobs.Worker,
	customerLocks *locks.KeyedMutex,
) *ChequeService {
	return &ChequeService{
		repo:            repo,
		policyRepo:      policyRepo,
		customerRepo:    customerRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		worker:          worker,
		customerLocks:   customerLocks,
	}
}

func (s *ChequeService) FindByID(ctx context.Context, id uint) (*models.Cheque, error) {
	cheque, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return cheque, nil
}

func (s *ChequeService) List(ctx context.Context, query *repository.ListQuery) ([]models.Cheque, int64, error) {
	return s.repo.List(ctx, query)
}

// Create registers a standalone cheque. References to a policy or customer
// are weak ids, validated here because storage does not enforce them.
func (s *ChequeService) Create(ctx context.Context, cheque *models.Cheque) error {
	if cheque.Amount <= 0 {
		return ErrInvalidAmount
	}
	if cheque.ChequeNumber == "" {
		return &Error{KindValidation, "el número de cheque es requerido"}
	}

	if cheque.PolicyID != nil {
		policy, err := s.policyRepo.FindByIDWithDetails(ctx, *cheque.PolicyID)
		if err != nil {
			return asNotFound(err)
		}
		cheque.VehicleID = &policy.VehicleID
		cheque.CustomerID = &policy.Vehicle.CustomerID
	} else if cheque.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(ctx, *cheque.CustomerID); err != nil {
			return asNotFound(err)
		}
	}

	cheque.GUID = uuid.NewString()
	cheque.Status = models.ChequeStatusPending

	if err := s.repo.Create(ctx, cheque); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, 0, "CREATE", "Cheque", cheque.ID,
		fmt.Sprintf("Cheque %s registrado por %.2f, vence %s", cheque.ChequeNumber, cheque.Amount, cheque.DueDate.Format("2006-01-02")), "", "")
	return nil
}

// UpdateStatus transitions a cheque. Only pending cheques move; cleared,
// returned and cancelled are terminal.
func (s *ChequeService) UpdateStatus(ctx context.Context, id uint, target string, reason *string) (*models.Cheque, error) {
	cheque, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !models.ValidChequeStatus(target) {
		return nil, &Error{KindValidation, "estado de cheque desconocido"}
	}

	event, ok := statemachine.EventForStatus(target)
	if !ok {
		return nil, ErrInvalidTransition
	}

	fsm := statemachine.NewChequeFSM(cheque)
	now := time.Now()
	switch event {
	case "clear":
		if err := fsm.Clear(ctx); err != nil {
			return nil, ErrInvalidTransition
		}
		cheque.ClearedDate = &now
	case "return":
		if err := fsm.Return(ctx); err != nil {
			return nil, ErrInvalidTransition
		}
		cheque.ReturnedDate = &now
		cheque.ReturnedReason = reason
	case "cancel":
		if err := fsm.Cancel(ctx); err != nil {
			return nil, ErrInvalidTransition
		}
	}

	if err := s.repo.Update(ctx, cheque); err != nil {
		return nil, err
	}

	if cheque.Status == models.ChequeStatusReturned {
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.notificationSvc.NotifyAdmins(ctx,
				"Cheque devuelto",
				fmt.Sprintf("El cheque %s por %.2f fue devuelto por el banco", cheque.ChequeNumber, cheque.Amount),
				models.NotificationTypeChequeReturned)
		})
	}

	s.auditSvc.Log(ctx, 0, "UPDATE_STATUS", "Cheque", cheque.ID,
		fmt.Sprintf("Cheque %s marcado como %s", cheque.ChequeNumber, cheque.Status), "", "")

	return cheque, nil
}

// Delete removes a cheque. When the cheque backs a policy payment the
// payment event is removed with it and the policy totals are recomputed, all
// in one transaction — the debt reappears on the policy. Returns the updated
// policy, or nil for a standalone cheque.
func (s *ChequeService) Delete(ctx context.Context, id uint) (*models.Policy, error) {
	cheque, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	if cheque.PolicyID == nil {
		if err := s.repo.Delete(ctx, cheque.ID); err != nil {
			return nil, err
		}
		s.auditSvc.Log(ctx, 0, "DELETE", "Cheque", cheque.ID,
			fmt.Sprintf("Cheque %s eliminado", cheque.ChequeNumber), "", "")
		return nil, nil
	}

	linked, err := s.policyRepo.FindByIDWithDetails(ctx, *cheque.PolicyID)
	if err != nil {
		// Dangling reference: the policy is gone, remove the cheque alone.
		if err := s.repo.Delete(ctx, cheque.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	s.customerLocks.Lock(linked.Vehicle.CustomerID)
	defer s.customerLocks.Unlock(linked.Vehicle.CustomerID)

	policy, err := s.repo.DeleteWithReversal(ctx, cheque)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, 0, "DELETE", "Cheque", cheque.ID,
		fmt.Sprintf("Cheque %s eliminado; pago revertido en la póliza #%d. Deuda restante: %.2f", cheque.ChequeNumber, policy.ID, policy.RemainingDebt), "", "")

	return policy, nil
}

// NotifyDueCheques finds pending cheques past their due date and alerts the
// admins. Run on a schedule by the worker.
func (s *ChequeService) NotifyDueCheques(ctx context.Context) error {
	cheques, err := s.repo.FindDuePending(ctx)
	if err != nil {
		return err
	}
	for i := range cheques {
		cheque := cheques[i]
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.notificationSvc.NotifyAdmins(ctx,
				"Cheque vencido",
				fmt.Sprintf("El cheque %s por %.2f venció el %s y sigue pendiente", cheque.ChequeNumber, cheque.Amount, cheque.DueDate.Format("2006-01-02")),
				models.NotificationTypeChequeDue)
		})
	}
	return nil
}
