package repository

import (
	"context"

	"github.com/rmedina/segurapp-api/internal/models"

	"gorm.io/gorm"
)

// FinanceRepository defines the interface for the external revenue/expense
// side ledgers. Writers treat these as best-effort collaborators.
type FinanceRepository interface {
	CreateRevenue(ctx context.Context, revenue *models.Revenue) error
	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListRevenues(ctx context.Context, query *ListQuery) ([]models.Revenue, int64, error)
	ListExpenses(ctx context.Context, query *ListQuery) ([]models.Expense, int64, error)
}

type financeRepository struct {
	db *gorm.DB
}

// NewFinanceRepository creates a new finance repository
func NewFinanceRepository(db *gorm.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) CreateRevenue(ctx context.Context, revenue *models.Revenue) error {
	return r.db.WithContext(ctx).Create(revenue).Error
}

func (r *financeRepository) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *financeRepository) ListRevenues(ctx context.Context, query *ListQuery) ([]models.Revenue, int64, error) {
	var revenues []models.Revenue
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Revenue{})
	if sourceType := query.Filters["source_type"]; sourceType != "" {
		db = db.Where("source_type = ?", sourceType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("entry_date DESC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&revenues).Error
	return revenues, total, err
}

func (r *financeRepository) ListExpenses(ctx context.Context, query *ListQuery) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Expense{})
	if sourceType := query.Filters["source_type"]; sourceType != "" {
		db = db.Where("source_type = ?", sourceType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("entry_date DESC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&expenses).Error
	return expenses, total, err
}
