package repository

import (
	"context"

	"github.com/rmedina/segurapp-api/internal/models"

	"gorm.io/gorm"
)

// ChequeRepository defines the interface for cheque data access
type ChequeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Cheque, error)
	Create(ctx context.Context, cheque *models.Cheque) error
	Update(ctx context.Context, cheque *models.Cheque) error
	Delete(ctx context.Context, id uint) error
	DeleteWithReversal(ctx context.Context, cheque *models.Cheque) (*models.Policy, error)
	FindDuePending(ctx context.Context) ([]models.Cheque, error)
	List(ctx context.Context, query *ListQuery) ([]models.Cheque, int64, error)
}

type chequeRepository struct {
	db *gorm.DB
}

// NewChequeRepository creates a new cheque repository
func NewChequeRepository(db *gorm.DB) ChequeRepository {
	return &chequeRepository{db: db}
}

func (r *chequeRepository) FindByID(ctx context.Context, id uint) (*models.Cheque, error) {
	var cheque models.Cheque
	if err := r.db.WithContext(ctx).First(&cheque, id).Error; err != nil {
		return nil, err
	}
	return &cheque, nil
}

func (r *chequeRepository) Create(ctx context.Context, cheque *models.Cheque) error {
	return r.db.WithContext(ctx).Create(cheque).Error
}

func (r *chequeRepository) Update(ctx context.Context, cheque *models.Cheque) error {
	return r.db.WithContext(ctx).Save(cheque).Error
}

func (r *chequeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Cheque{}, id).Error
}

// DeleteWithReversal removes a policy-linked cheque together with the payment
// event that embedded it, then persists the recomputed policy totals. The
// whole reversal is one transaction: a partial failure rolls everything back.
// Returns the updated policy.
func (r *chequeRepository) DeleteWithReversal(ctx context.Context, cheque *models.Cheque) (*models.Policy, error) {
	var policy models.Policy
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cheque_id = ?", cheque.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Cheque{}, cheque.ID).Error; err != nil {
			return err
		}

		if err := tx.Preload("Payments").First(&policy, *cheque.PolicyID).Error; err != nil {
			return err
		}
		policy.Recompute()
		return tx.Model(&models.Policy{}).
			Where("id = ?", policy.ID).
			Updates(map[string]interface{}{
				"paid_amount":    policy.PaidAmount,
				"remaining_debt": policy.RemainingDebt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *chequeRepository) FindDuePending(ctx context.Context) ([]models.Cheque, error) {
	var cheques []models.Cheque
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < CURRENT_DATE", models.ChequeStatusPending).
		Order("due_date ASC").
		Find(&cheques).Error
	return cheques, err
}

func (r *chequeRepository) List(ctx context.Context, query *ListQuery) ([]models.Cheque, int64, error) {
	var cheques []models.Cheque
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Cheque{})
	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}
	if query.Search != "" {
		db = db.Where("cheque_number ILIKE ?", "%"+query.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("due_date ASC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&cheques).Error
	return cheques, total, err
}
