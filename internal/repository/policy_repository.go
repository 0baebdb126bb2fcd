package repository

import (
	"context"
	"time"

	"github.com/rmedina/segurapp-api/internal/models"

	"gorm.io/gorm"
)

// PolicyRepository defines the interface for policy data access. Mutating
// methods run inside a single database transaction so the payment rows and
// the recomputed paid/remaining columns can never diverge.
type PolicyRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Policy, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Policy, error)
	FindByVehicle(ctx context.Context, vehicleID uint) ([]models.Policy, error)
	FindLatestEndDate(ctx context.Context, vehicleID uint) (*time.Time, error)
	FindExpiringWithin(ctx context.Context, days int) ([]models.Policy, error)
	Create(ctx context.Context, policy *models.Policy) error
	Update(ctx context.Context, policy *models.Policy) error
	AppendPayment(ctx context.Context, policy *models.Policy, payment *models.Payment) error
	Transfer(ctx context.Context, oldPolicy, newPolicy *models.Policy) error
	List(ctx context.Context, query *ListQuery) ([]models.Policy, int64, error)
}

type policyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) FindByID(ctx context.Context, id uint) (*models.Policy, error) {
	var policy models.Policy
	if err := r.db.WithContext(ctx).First(&policy, id).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *policyRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Policy, error) {
	var policy models.Policy
	err := r.db.WithContext(ctx).
		Joins("Vehicle").
		Joins("Company").
		Preload("Company.OfferedTypes").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC, id ASC")
		}).
		Preload("Payments.Cheque").
		First(&policy, id).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *policyRepository) FindByVehicle(ctx context.Context, vehicleID uint) ([]models.Policy, error) {
	var policies []models.Policy
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Preload("Payments").
		Order("created_at ASC").
		Find(&policies).Error
	return policies, err
}

// FindLatestEndDate returns the latest coverage end date among the vehicle's
// policies, or nil when the vehicle has none. Used to chain coverage windows.
func (r *policyRepository) FindLatestEndDate(ctx context.Context, vehicleID uint) (*time.Time, error) {
	var policy models.Policy
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status = ?", vehicleID, models.PolicyStatusActive).
		Order("end_date DESC").
		First(&policy).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &policy.EndDate, nil
}

func (r *policyRepository) FindExpiringWithin(ctx context.Context, days int) ([]models.Policy, error) {
	var policies []models.Policy
	cutoff := time.Now().AddDate(0, 0, days)
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date <= ? AND end_date >= ?", models.PolicyStatusActive, cutoff, time.Now()).
		Joins("Vehicle").
		Find(&policies).Error
	return policies, err
}

// Create inserts the policy, its initial payments and any cheques backing
// them, then persists the recomputed totals — all in one transaction.
func (r *policyRepository) Create(ctx context.Context, policy *models.Policy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := policy.Payments
		policy.Payments = nil

		if err := tx.Create(policy).Error; err != nil {
			return err
		}

		for i := range payments {
			p := &payments[i]
			p.PolicyID = policy.ID
			if p.Cheque != nil {
				p.Cheque.PolicyID = &policy.ID
				p.Cheque.VehicleID = &policy.VehicleID
				if err := tx.Create(p.Cheque).Error; err != nil {
					return err
				}
				p.ChequeID = &p.Cheque.ID
			}
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		policy.Payments = payments
		policy.Recompute()
		return tx.Model(&models.Policy{}).
			Where("id = ?", policy.ID).
			Updates(map[string]interface{}{
				"paid_amount":    policy.PaidAmount,
				"remaining_debt": policy.RemainingDebt,
			}).Error
	})
}

func (r *policyRepository) Update(ctx context.Context, policy *models.Policy) error {
	// Omit associations so a stale Payments slice can never be re-saved.
	return r.db.WithContext(ctx).Omit("Payments", "Vehicle", "Company").Save(policy).Error
}

// AppendPayment inserts the payment (creating its cheque first when one is
// attached), appends it to the in-memory ledger and persists the recomputed
// totals atomically.
func (r *policyRepository) AppendPayment(ctx context.Context, policy *models.Policy, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment.PolicyID = policy.ID
		if payment.Cheque != nil {
			payment.Cheque.PolicyID = &policy.ID
			payment.Cheque.VehicleID = &policy.VehicleID
			if err := tx.Create(payment.Cheque).Error; err != nil {
				return err
			}
			payment.ChequeID = &payment.Cheque.ID
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		policy.Payments = append(policy.Payments, *payment)
		policy.Recompute()
		return tx.Model(&models.Policy{}).
			Where("id = ?", policy.ID).
			Updates(map[string]interface{}{
				"paid_amount":    policy.PaidAmount,
				"remaining_debt": policy.RemainingDebt,
			}).Error
	})
}

// Transfer atomically replaces oldPolicy with newPolicy: the new record and
// copies of the payment rows are inserted, then the old payment rows and the
// old policy are deleted. Cheque rows are untouched — they reference the
// policy weakly and are repointed to the new id.
func (r *policyRepository) Transfer(ctx context.Context, oldPolicy, newPolicy *models.Policy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := newPolicy.Payments
		newPolicy.Payments = nil

		if err := tx.Create(newPolicy).Error; err != nil {
			return err
		}

		for i := range payments {
			p := &payments[i]
			p.ID = 0
			p.PolicyID = newPolicy.ID
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}
		newPolicy.Payments = payments

		if err := tx.Model(&models.Cheque{}).
			Where("policy_id = ?", oldPolicy.ID).
			Updates(map[string]interface{}{
				"policy_id":  newPolicy.ID,
				"vehicle_id": newPolicy.VehicleID,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("policy_id = ?", oldPolicy.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Policy{}, oldPolicy.ID).Error
	})
}

func (r *policyRepository) List(ctx context.Context, query *ListQuery) ([]models.Policy, int64, error) {
	var policies []models.Policy
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Policy{})
	if status := query.Filters["status"]; status != "" {
		db = db.Where("policies.status = ?", status)
	}
	if insuranceType := query.Filters["insurance_type"]; insuranceType != "" {
		db = db.Where("policies.insurance_type = ?", insuranceType)
	}
	if query.Search != "" {
		db = db.Joins("JOIN vehicles ON vehicles.id = policies.vehicle_id").
			Where("vehicles.plate_number ILIKE ?", "%"+query.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Payments").
		Order("policies.created_at DESC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&policies).Error
	return policies, total, err
}
