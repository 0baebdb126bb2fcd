package services

import (
	"context"

	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/repository"
)

// FinanceService exposes the revenue/expense side ledgers for reading.
// The entries themselves are written best-effort by the mutating services.
type FinanceService struct {
	repo repository.FinanceRepository
}

func NewFinanceService(repo repository.FinanceRepository) *FinanceService {
	return &FinanceService{repo: repo}
}

func (s *FinanceService) ListRevenues(ctx context.Context, query *repository.ListQuery) ([]models.Revenue, int64, error) {
	return s.repo.ListRevenues(ctx, query)
}

func (s *FinanceService) ListExpenses(ctx context.Context, query *repository.ListQuery) ([]models.Expense, int64, error) {
	return s.repo.ListExpenses(ctx, query)
}
