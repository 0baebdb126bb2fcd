package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/repository"
)

// CommissionService manages the append-only agent commission ledger.
// Entries are never edited or deleted: a mistake is corrected with a
// reversing entry of the opposite type.
type CommissionService struct {
	repo     repository.AgentTransactionRepository
	userRepo repository.UserRepository
	auditSvc *AuditService
}

func NewCommissionService(
	repo repository.AgentTransactionRepository,
	userRepo repository.UserRepository,
	auditSvc *AuditService,
) *CommissionService {
	return &CommissionService{repo: repo, userRepo: userRepo, auditSvc: auditSvc}
}

func (s *CommissionService) FindByID(ctx context.Context, id uint) (*models.AgentTransaction, error) {
	txn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return txn, nil
}

func (s *CommissionService) FindByAgent(ctx context.Context, agentID uint) ([]models.AgentTransaction, error) {
	return s.repo.FindByAgent(ctx, agentID)
}

func (s *CommissionService) List(ctx context.Context, query *repository.ListQuery) ([]models.AgentTransaction, int64, error) {
	return s.repo.List(ctx, query)
}

// Balance returns the agent's net position: credits minus debits,
// excluding cancelled entries.
func (s *CommissionService) Balance(ctx context.Context, agentID uint) (float64, error) {
	if _, err := s.userRepo.FindByID(ctx, agentID); err != nil {
		return 0, asNotFound(err)
	}
	return s.repo.BalanceForAgent(ctx, agentID)
}

// Create records a manual ledger entry
func (s *CommissionService) Create(ctx context.Context, txn *models.AgentTransaction) error {
	if txn.Amount <= 0 {
		return ErrInvalidAmount
	}
	if txn.TxnType != models.TxnTypeCredit && txn.TxnType != models.TxnTypeDebit {
		return &Error{KindValidation, "tipo de asiento desconocido"}
	}
	if _, err := s.userRepo.FindByID(ctx, txn.AgentID); err != nil {
		return asNotFound(err)
	}

	txn.Status = models.TxnStatusPending
	if err := s.repo.Create(ctx, txn); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, 0, "CREATE", "AgentTransaction", txn.ID,
		fmt.Sprintf("Asiento %s de %.2f registrado para el agente #%d", txn.TxnType, txn.Amount, txn.AgentID), "", "")
	return nil
}

// Settle marks a pending entry as settled
func (s *CommissionService) Settle(ctx context.Context, id uint) (*models.AgentTransaction, error) {
	txn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !txn.MaySettle() {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	txn.Status = models.TxnStatusSettled
	txn.SettledDate = &now
	if err := s.repo.UpdateStatus(ctx, txn); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, 0, "SETTLE", "AgentTransaction", txn.ID,
		fmt.Sprintf("Asiento #%d liquidado por %.2f", txn.ID, txn.Amount), "", "")
	return txn, nil
}

// CancelEntry marks a pending entry as cancelled. The row stays in the
// ledger but is excluded from the balance.
func (s *CommissionService) CancelEntry(ctx context.Context, id uint) (*models.AgentTransaction, error) {
	txn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !txn.MayCancel() {
		return nil, ErrInvalidTransition
	}

	txn.Status = models.TxnStatusCancelled
	if err := s.repo.UpdateStatus(ctx, txn); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, 0, "CANCEL", "AgentTransaction", txn.ID,
		fmt.Sprintf("Asiento #%d anulado", txn.ID), "", "")
	return txn, nil
}

// Reverse creates the opposing entry for a past transaction and returns it
func (s *CommissionService) Reverse(ctx context.Context, id uint, reason string) (*models.AgentTransaction, error) {
	original, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	description := fmt.Sprintf("Reversa del asiento #%d", original.ID)
	if reason != "" {
		description = fmt.Sprintf("%s: %s", description, reason)
	}

	reversal := &models.AgentTransaction{
		AgentID:     original.AgentID,
		TxnType:     original.OppositeType(),
		Amount:      original.Amount,
		Status:      models.TxnStatusPending,
		Description: description,
		ReversesID:  &original.ID,
		PolicyID:    original.PolicyID,
		VehicleID:   original.VehicleID,
		CustomerID:  original.CustomerID,
	}
	if err := s.repo.Create(ctx, reversal); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, 0, "REVERSE", "AgentTransaction", reversal.ID,
		fmt.Sprintf("Asiento #%d revertido con el asiento #%d", original.ID, reversal.ID), "", "")
	return reversal, nil
}
