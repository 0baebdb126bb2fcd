package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/repository"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// PricingService quotes policy prices from per-company rule matrices.
// Matching is deterministic: rows are scanned in position order and the
// first match wins.
type PricingService struct {
	companyRepo repository.CompanyRepository
	ruleRepo    repository.PricingRuleRepository
	auditSvc    *AuditService
}

func NewPricingService(
	companyRepo repository.CompanyRepository,
	ruleRepo repository.PricingRuleRepository,
	auditSvc *AuditService,
) *PricingService {
	return &PricingService{
		companyRepo: companyRepo,
		ruleRepo:    ruleRepo,
		auditSvc:    auditSvc,
	}
}

// QuoteParams are the inputs a matrix row matches against
type QuoteParams struct {
	VehicleType    string  `json:"vehicle_type" binding:"required"`
	DriverAgeGroup string  `json:"driver_age_group" binding:"required"`
	OfferAmount    float64 `json:"offer_amount"`
}

// CalculatePrice quotes a price for the company under the given pricing
// scheme. Compulsory insurance (no scheme) and road service are rejected
// with an error directing the caller to the right mechanism.
func (s *PricingService) CalculatePrice(ctx context.Context, companyID uint, pricingType string, params QuoteParams) (float64, error) {
	switch pricingType {
	case models.PricingTypeMatrix, models.PricingTypeFixedAmount:
	case models.PricingTypeNone:
		return 0, ErrPricingTypeManual
	case models.InsuranceTypeRoadService:
		return 0, ErrPricingTypeRoadService
	default:
		return 0, &Error{KindValidation, "esquema de precios desconocido"}
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCompanyNotFound
		}
		return 0, err
	}
	if !company.OffersPricingType(pricingType) {
		return 0, ErrPricingTypeMismatch
	}

	rule, err := s.ruleRepo.FindByCompanyAndType(ctx, companyID, pricingType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoMatchingRule
		}
		return 0, err
	}
	if !rule.Active {
		return 0, ErrNoMatchingRule
	}

	if pricingType == models.PricingTypeFixedAmount {
		if rule.FixedAmount == nil {
			return 0, &Error{KindIntegrity, "la regla de monto fijo no tiene monto configurado"}
		}
		return *rule.FixedAmount, nil
	}

	for i := range rule.Rows {
		if rule.Rows[i].Matches(params.VehicleType, params.DriverAgeGroup, params.OfferAmount) {
			return rule.Rows[i].Price, nil
		}
	}
	return 0, ErrNoMatchingRule
}

func (s *PricingService) FindByCompany(ctx context.Context, companyID uint) ([]models.PricingRule, error) {
	return s.ruleRepo.FindByCompany(ctx, companyID)
}

// CreateRule registers the quoting configuration for a (company, pricing
// type) pair. The shape must match the scheme: matrix rules need rows,
// fixed-amount rules need an amount.
func (s *PricingService) CreateRule(ctx context.Context, rule *models.PricingRule) error {
	company, err := s.companyRepo.FindByID(ctx, rule.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	if !company.OffersPricingType(rule.PricingType) {
		return ErrPricingTypeMismatch
	}

	switch rule.PricingType {
	case models.PricingTypeMatrix:
		if len(rule.Rows) == 0 {
			return &Error{KindValidation, "una regla de matriz requiere al menos una fila"}
		}
		if err := validateRows(rule.Rows); err != nil {
			return err
		}
	case models.PricingTypeFixedAmount:
		if rule.FixedAmount == nil || *rule.FixedAmount <= 0 {
			return ErrInvalidAmount
		}
	case models.PricingTypeNone:
		if len(rule.Rows) > 0 || rule.FixedAmount != nil {
			return &Error{KindValidation, "un esquema manual no lleva filas ni monto fijo"}
		}
	default:
		return &Error{KindValidation, "esquema de precios desconocido"}
	}

	rule.Active = true
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, 0, "CREATE", "PricingRule", rule.ID,
		fmt.Sprintf("Regla de precios %s creada para %s con %d filas", rule.PricingType, company.Name, len(rule.Rows)), "", "")
	return nil
}

// ImportMatrix loads a matrix from an XLSX workbook and replaces the
// company's current rows. Expected columns: vehicle type, driver age group,
// offer minimum, offer maximum (blank = unbounded), price. Row order in the
// sheet becomes match order.
func (s *PricingService) ImportMatrix(ctx context.Context, companyID uint, r io.Reader) (*models.PricingRule, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	if !company.OffersPricingType(models.PricingTypeMatrix) {
		return nil, ErrPricingTypeMismatch
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &Error{KindValidation, "el archivo no es un libro XLSX válido"}
	}
	defer f.Close()

	sheetRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(sheetRows) < 2 {
		return nil, &Error{KindValidation, "el libro no contiene filas de datos"}
	}

	var rows []models.PricingRuleRow
	for i, cells := range sheetRows[1:] {
		if len(cells) == 0 {
			continue
		}
		row, err := parseMatrixRow(cells)
		if err != nil {
			return nil, &Error{KindValidation, fmt.Sprintf("fila %d: %s", i+2, err.Error())}
		}
		rows = append(rows, *row)
	}
	if err := validateRows(rows); err != nil {
		return nil, err
	}

	rule, err := s.ruleRepo.FindByCompanyAndType(ctx, companyID, models.PricingTypeMatrix)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rule = &models.PricingRule{
			CompanyID:   companyID,
			PricingType: models.PricingTypeMatrix,
			Active:      true,
			Rows:        rows,
		}
		if err := s.ruleRepo.Create(ctx, rule); err != nil {
			return nil, err
		}
	} else {
		if err := s.ruleRepo.ReplaceRows(ctx, rule, rows); err != nil {
			return nil, err
		}
	}

	s.auditSvc.Log(ctx, 0, "IMPORT", "PricingRule", rule.ID,
		fmt.Sprintf("Matriz de precios importada para %s: %d filas", company.Name, len(rows)), "", "")
	return rule, nil
}

func parseMatrixRow(cells []string) (*models.PricingRuleRow, error) {
	if len(cells) < 5 {
		return nil, fmt.Errorf("se esperan 5 columnas, hay %d", len(cells))
	}

	vehicleType := strings.TrimSpace(strings.ToLower(cells[0]))
	ageGroup := strings.TrimSpace(strings.ToLower(cells[1]))

	min, err := strconv.ParseFloat(strings.TrimSpace(cells[2]), 64)
	if err != nil {
		return nil, fmt.Errorf("monto mínimo inválido: %q", cells[2])
	}

	var max *float64
	if raw := strings.TrimSpace(cells[3]); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("monto máximo inválido: %q", cells[3])
		}
		max = &v
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(cells[4]), 64)
	if err != nil {
		return nil, fmt.Errorf("precio inválido: %q", cells[4])
	}

	return &models.PricingRuleRow{
		VehicleType:    vehicleType,
		DriverAgeGroup: ageGroup,
		OfferAmountMin: min,
		OfferAmountMax: max,
		Price:          price,
	}, nil
}

func validateRows(rows []models.PricingRuleRow) error {
	for i := range rows {
		row := &rows[i]
		if !models.ValidVehicleType(row.VehicleType) {
			return &Error{KindValidation, fmt.Sprintf("tipo de vehículo desconocido: %q", row.VehicleType)}
		}
		if !models.ValidAgeGroup(row.DriverAgeGroup) {
			return &Error{KindValidation, fmt.Sprintf("grupo de edad desconocido: %q", row.DriverAgeGroup)}
		}
		if row.Price <= 0 {
			return ErrInvalidAmount
		}
		if row.OfferAmountMin < 0 {
			return &Error{KindValidation, "el monto mínimo no puede ser negativo"}
		}
		if row.OfferAmountMax != nil && *row.OfferAmountMax < row.OfferAmountMin {
			return &Error{KindValidation, "el monto máximo no puede ser menor que el mínimo"}
		}
	}
	return nil
}
