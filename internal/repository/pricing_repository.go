package repository

import (
	"context"

	"github.com/rmedina/segurapp-api/internal/models"

	"gorm.io/gorm"
)

// CompanyRepository defines the interface for insurance company data access
type CompanyRepository interface {
	FindByID(ctx context.Context, id uint) (*models.InsuranceCompany, error)
	FindByName(ctx context.Context, name string) (*models.InsuranceCompany, error)
	Create(ctx context.Context, company *models.InsuranceCompany) error
	List(ctx context.Context, query *ListQuery) ([]models.InsuranceCompany, int64, error)
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) FindByID(ctx context.Context, id uint) (*models.InsuranceCompany, error) {
	var company models.InsuranceCompany
	err := r.db.WithContext(ctx).
		Preload("OfferedTypes").
		First(&company, id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByName(ctx context.Context, name string) (*models.InsuranceCompany, error) {
	var company models.InsuranceCompany
	err := r.db.WithContext(ctx).
		Preload("OfferedTypes").
		Where("name = ?", name).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Create(ctx context.Context, company *models.InsuranceCompany) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) List(ctx context.Context, query *ListQuery) ([]models.InsuranceCompany, int64, error) {
	var companies []models.InsuranceCompany
	var total int64

	db := r.db.WithContext(ctx).Model(&models.InsuranceCompany{})
	if query.Search != "" {
		db = db.Where("name ILIKE ?", "%"+query.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("OfferedTypes").
		Order("name ASC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&companies).Error
	return companies, total, err
}

// PricingRuleRepository defines the interface for pricing rule data access.
// Rows are always returned in position order — the matcher depends on it.
type PricingRuleRepository interface {
	FindByCompanyAndType(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error)
	FindByCompany(ctx context.Context, companyID uint) ([]models.PricingRule, error)
	Create(ctx context.Context, rule *models.PricingRule) error
	ReplaceRows(ctx context.Context, rule *models.PricingRule, rows []models.PricingRuleRow) error
}

type pricingRuleRepository struct {
	db *gorm.DB
}

// NewPricingRuleRepository creates a new pricing rule repository
func NewPricingRuleRepository(db *gorm.DB) PricingRuleRepository {
	return &pricingRuleRepository{db: db}
}

func (r *pricingRuleRepository) FindByCompanyAndType(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error) {
	var rule models.PricingRule
	err := r.db.WithContext(ctx).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("company_id = ? AND pricing_type = ?", companyID, pricingType).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *pricingRuleRepository) FindByCompany(ctx context.Context, companyID uint) ([]models.PricingRule, error) {
	var rules []models.PricingRule
	err := r.db.WithContext(ctx).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("company_id = ?", companyID).
		Find(&rules).Error
	return rules, err
}

// Create inserts the rule and its rows in one transaction, assigning row
// positions from slice order.
func (r *pricingRuleRepository) Create(ctx context.Context, rule *models.PricingRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := rule.Rows
		rule.Rows = nil

		if err := tx.Create(rule).Error; err != nil {
			return err
		}

		for i := range rows {
			rows[i].RuleID = rule.ID
			rows[i].Position = i
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		rule.Rows = rows
		return nil
	})
}

// ReplaceRows swaps the rule's matrix for a new ordered set of rows.
func (r *pricingRuleRepository) ReplaceRows(ctx context.Context, rule *models.PricingRule, rows []models.PricingRuleRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rule_id = ?", rule.ID).Delete(&models.PricingRuleRow{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].RuleID = rule.ID
			rows[i].Position = i
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		rule.Rows = rows
		return nil
	})
}

// RoadServiceRepository defines the interface for road service data access
type RoadServiceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.RoadService, error)
	Create(ctx context.Context, service *models.RoadService) error
	Update(ctx context.Context, service *models.RoadService) error
	List(ctx context.Context, query *ListQuery) ([]models.RoadService, int64, error)
}

type roadServiceRepository struct {
	db *gorm.DB
}

// NewRoadServiceRepository creates a new road service repository
func NewRoadServiceRepository(db *gorm.DB) RoadServiceRepository {
	return &roadServiceRepository{db: db}
}

func (r *roadServiceRepository) FindByID(ctx context.Context, id uint) (*models.RoadService, error) {
	var service models.RoadService
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *roadServiceRepository) Create(ctx context.Context, service *models.RoadService) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *roadServiceRepository) Update(ctx context.Context, service *models.RoadService) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *roadServiceRepository) List(ctx context.Context, query *ListQuery) ([]models.RoadService, int64, error) {
	var services []models.RoadService
	var total int64

	db := r.db.WithContext(ctx).Model(&models.RoadService{})
	if active := query.Filters["active"]; active != "" {
		db = db.Where("active = ?", active == "true")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("name ASC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&services).Error
	return services, total, err
}
