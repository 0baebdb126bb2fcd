package repository

import (
	"context"

	"github.com/rmedina/segurapp-api/internal/models"

	"gorm.io/gorm"
)

// AgentTransactionRepository defines the interface for the commission ledger.
// The ledger is append-only: there is no delete, and UpdateStatus touches
// only the status and settled-date columns of an existing row.
type AgentTransactionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.AgentTransaction, error)
	FindByAgent(ctx context.Context, agentID uint) ([]models.AgentTransaction, error)
	Create(ctx context.Context, txn *models.AgentTransaction) error
	UpdateStatus(ctx context.Context, txn *models.AgentTransaction) error
	List(ctx context.Context, query *ListQuery) ([]models.AgentTransaction, int64, error)
	BalanceForAgent(ctx context.Context, agentID uint) (float64, error)
}

type agentTransactionRepository struct {
	db *gorm.DB
}

// NewAgentTransactionRepository creates a new agent transaction repository
func NewAgentTransactionRepository(db *gorm.DB) AgentTransactionRepository {
	return &agentTransactionRepository{db: db}
}

func (r *agentTransactionRepository) FindByID(ctx context.Context, id uint) (*models.AgentTransaction, error) {
	var txn models.AgentTransaction
	if err := r.db.WithContext(ctx).First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *agentTransactionRepository) FindByAgent(ctx context.Context, agentID uint) ([]models.AgentTransaction, error) {
	var txns []models.AgentTransaction
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}

func (r *agentTransactionRepository) Create(ctx context.Context, txn *models.AgentTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *agentTransactionRepository) UpdateStatus(ctx context.Context, txn *models.AgentTransaction) error {
	return r.db.WithContext(ctx).
		Model(&models.AgentTransaction{}).
		Where("id = ?", txn.ID).
		Updates(map[string]interface{}{
			"status":       txn.Status,
			"settled_date": txn.SettledDate,
		}).Error
}

func (r *agentTransactionRepository) List(ctx context.Context, query *ListQuery) ([]models.AgentTransaction, int64, error) {
	var txns []models.AgentTransaction
	var total int64

	db := r.db.WithContext(ctx).Model(&models.AgentTransaction{})
	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}
	if txnType := query.Filters["txn_type"]; txnType != "" {
		db = db.Where("txn_type = ?", txnType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Agent").
		Order("created_at DESC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&txns).Error
	return txns, total, err
}

// BalanceForAgent sums settled-and-pending credits minus debits.
// Cancelled entries are excluded.
func (r *agentTransactionRepository) BalanceForAgent(ctx context.Context, agentID uint) (float64, error) {
	var result struct {
		Balance float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.AgentTransaction{}).
		Select("COALESCE(SUM(CASE WHEN txn_type = ? THEN amount ELSE -amount END), 0) as balance",
			models.TxnTypeCredit).
		Where("agent_id = ? AND status <> ?", agentID, models.TxnStatusCancelled).
		Scan(&result).Error
	return result.Balance, err
}
