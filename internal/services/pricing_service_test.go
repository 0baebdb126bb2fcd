package services

import (
	"context"
	"testing"

	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func matrixCompany() *models.InsuranceCompany {
	return testCompany(
		models.CompanyInsuranceType{CompanyID: 1, InsuranceType: models.InsuranceTypeComprehensive, PricingType: models.PricingTypeMatrix},
		models.CompanyInsuranceType{CompanyID: 1, InsuranceType: models.InsuranceTypeAccidentWaiver, PricingType: models.PricingTypeFixedAmount},
	)
}

func floatPtr(v float64) *float64 { return &v }

func newPricingTestDeps() (*mockCompanyRepo, *mockPricingRuleRepo, *PricingService) {
	companyRepo := &mockCompanyRepo{}
	ruleRepo := &mockPricingRuleRepo{}
	companyRepo.mockFindByID = func(ctx context.Context, id uint) (*models.InsuranceCompany, error) {
		return matrixCompany(), nil
	}
	return companyRepo, ruleRepo, NewPricingService(companyRepo, ruleRepo, nil)
}

func TestPricingService_CalculatePrice_FirstMatchWins(t *testing.T) {
	_, ruleRepo, service := newPricingTestDeps()

	// Two overlapping rows for the same segment: position order decides.
	ruleRepo.mockFindByCompanyAndType = func(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error) {
		return &models.PricingRule{
			ID: 1, CompanyID: 1, PricingType: models.PricingTypeMatrix, Active: true,
			Rows: []models.PricingRuleRow{
				{Position: 0, VehicleType: models.VehicleTypeCar, DriverAgeGroup: models.AgeGroup24To60, OfferAmountMin: 0, OfferAmountMax: floatPtr(300000), Price: 4500},
				{Position: 1, VehicleType: models.VehicleTypeCar, DriverAgeGroup: models.AgeGroup24To60, OfferAmountMin: 100000, OfferAmountMax: nil, Price: 9999},
			},
		}, nil
	}

	price, err := service.CalculatePrice(context.Background(), 1, models.PricingTypeMatrix, QuoteParams{
		VehicleType:    models.VehicleTypeCar,
		DriverAgeGroup: models.AgeGroup24To60,
		OfferAmount:    150000,
	})
	require.NoError(t, err)
	assert.Equal(t, 4500.0, price)
}

func TestPricingService_CalculatePrice_UnboundedMax(t *testing.T) {
	_, ruleRepo, service := newPricingTestDeps()

	ruleRepo.mockFindByCompanyAndType = func(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error) {
		return &models.PricingRule{
			ID: 1, CompanyID: 1, PricingType: models.PricingTypeMatrix, Active: true,
			Rows: []models.PricingRuleRow{
				{Position: 0, VehicleType: models.VehicleTypeTruck, DriverAgeGroup: models.AgeGroupOver60, OfferAmountMin: 500000, OfferAmountMax: nil, Price: 22000},
			},
		}, nil
	}

	price, err := service.CalculatePrice(context.Background(), 1, models.PricingTypeMatrix, QuoteParams{
		VehicleType:    models.VehicleTypeTruck,
		DriverAgeGroup: models.AgeGroupOver60,
		OfferAmount:    9000000,
	})
	require.NoError(t, err)
	assert.Equal(t, 22000.0, price)
}

func TestPricingService_CalculatePrice_NoMatchingRow(t *testing.T) {
	_, ruleRepo, service := newPricingTestDeps()

	ruleRepo.mockFindByCompanyAndType = func(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error) {
		return &models.PricingRule{
			ID: 1, CompanyID: 1, PricingType: models.PricingTypeMatrix, Active: true,
			Rows: []models.PricingRuleRow{
				{Position: 0, VehicleType: models.VehicleTypeCar, DriverAgeGroup: models.AgeGroup24To60, OfferAmountMin: 100000, OfferAmountMax: floatPtr(300000), Price: 4500},
			},
		}, nil
	}

	_, err := service.CalculatePrice(context.Background(), 1, models.PricingTypeMatrix, QuoteParams{
		VehicleType:    models.VehicleTypeCar,
		DriverAgeGroup: models.AgeGroup24To60,
		OfferAmount:    99999.99,
	})
	assert.ErrorIs(t, err, ErrNoMatchingRule)
}

func TestPricingService_CalculatePrice_FixedAmount(t *testing.T) {
	_, ruleRepo, service := newPricingTestDeps()

	ruleRepo.mockFindByCompanyAndType = func(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error) {
		return &models.PricingRule{
			ID: 2, CompanyID: 1, PricingType: models.PricingTypeFixedAmount, Active: true,
			FixedAmount: floatPtr(750),
		}, nil
	}

	price, err := service.CalculatePrice(context.Background(), 1, models.PricingTypeFixedAmount, QuoteParams{
		VehicleType:    models.VehicleTypeCar,
		DriverAgeGroup: models.AgeGroup24To60,
	})
	require.NoError(t, err)
	assert.Equal(t, 750.0, price)
}

func TestPricingService_CalculatePrice_InactiveRule(t *testing.T) {
	_, ruleRepo, service := newPricingTestDeps()

	ruleRepo.mockFindByCompanyAndType = func(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error) {
		return &models.PricingRule{ID: 1, CompanyID: 1, PricingType: models.PricingTypeMatrix, Active: false}, nil
	}

	_, err := service.CalculatePrice(context.Background(), 1, models.PricingTypeMatrix, QuoteParams{
		VehicleType:    models.VehicleTypeCar,
		DriverAgeGroup: models.AgeGroup24To60,
	})
	assert.ErrorIs(t, err, ErrNoMatchingRule)
}

func TestPricingService_CalculatePrice_NotApplicableSchemes(t *testing.T) {
	_, _, service := newPricingTestDeps()

	_, err := service.CalculatePrice(context.Background(), 1, models.PricingTypeNone, QuoteParams{})
	assert.ErrorIs(t, err, ErrPricingTypeManual)

	_, err = service.CalculatePrice(context.Background(), 1, models.InsuranceTypeRoadService, QuoteParams{})
	assert.ErrorIs(t, err, ErrPricingTypeRoadService)

	_, err = service.CalculatePrice(context.Background(), 1, "haggling", QuoteParams{})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestPricingService_CalculatePrice_CompanyDoesNotUseScheme(t *testing.T) {
	companyRepo, _, service := newPricingTestDeps()

	companyRepo.mockFindByID = func(ctx context.Context, id uint) (*models.InsuranceCompany, error) {
		// Only fixed-amount products, no matrix.
		return testCompany(models.CompanyInsuranceType{
			CompanyID: 1, InsuranceType: models.InsuranceTypeAccidentWaiver, PricingType: models.PricingTypeFixedAmount,
		}), nil
	}

	_, err := service.CalculatePrice(context.Background(), 1, models.PricingTypeMatrix, QuoteParams{
		VehicleType:    models.VehicleTypeCar,
		DriverAgeGroup: models.AgeGroup24To60,
	})
	assert.ErrorIs(t, err, ErrPricingTypeMismatch)
}

func TestPricingService_CalculatePrice_CompanyNotFound(t *testing.T) {
	companyRepo, _, service := newPricingTestDeps()

	companyRepo.mockFindByID = func(ctx context.Context, id uint) (*models.InsuranceCompany, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := service.CalculatePrice(context.Background(), 99, models.PricingTypeMatrix, QuoteParams{
		VehicleType:    models.VehicleTypeCar,
		DriverAgeGroup: models.AgeGroup24To60,
	})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestPricingService_CreateRule_ShapeValidation(t *testing.T) {
	_, _, service := newPricingTestDeps()

	// Matrix without rows
	err := service.CreateRule(context.Background(), &models.PricingRule{
		CompanyID: 1, PricingType: models.PricingTypeMatrix,
	})
	assert.Equal(t, KindValidation, KindOf(err))

	// Fixed amount without amount
	err = service.CreateRule(context.Background(), &models.PricingRule{
		CompanyID: 1, PricingType: models.PricingTypeFixedAmount,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPricingService_CreateRule_MatrixRowValidation(t *testing.T) {
	_, _, service := newPricingTestDeps()

	err := service.CreateRule(context.Background(), &models.PricingRule{
		CompanyID: 1, PricingType: models.PricingTypeMatrix,
		Rows: []models.PricingRuleRow{
			{VehicleType: "spaceship", DriverAgeGroup: models.AgeGroup24To60, OfferAmountMin: 0, Price: 100},
		},
	})
	assert.Equal(t, KindValidation, KindOf(err))

	err = service.CreateRule(context.Background(), &models.PricingRule{
		CompanyID: 1, PricingType: models.PricingTypeMatrix,
		Rows: []models.PricingRuleRow{
			{VehicleType: models.VehicleTypeCar, DriverAgeGroup: models.AgeGroup24To60, OfferAmountMin: 500, OfferAmountMax: floatPtr(100), Price: 100},
		},
	})
	assert.Equal(t, KindValidation, KindOf(err))
}

func matrixWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"vehicle_type", "driver_age_group", "offer_min", "offer_max", "price"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	return f
}

func TestPricingService_ImportMatrix_CreatesRule(t *testing.T) {
	_, ruleRepo, service := newPricingTestDeps()

	ruleRepo.mockFindByCompanyAndType = func(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error) {
		return nil, gorm.ErrRecordNotFound
	}
	var created *models.PricingRule
	ruleRepo.mockCreate = func(ctx context.Context, rule *models.PricingRule) error {
		rule.ID = 5
		created = rule
		return nil
	}

	f := matrixWorkbook(t, [][]interface{}{
		{"car", "24_to_60", 0, 300000, 4500},
		{"car", "24_to_60", 300000, "", 8000},
		{"motorbike", "under_24", 0, "", 2100},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rule, err := service.ImportMatrix(context.Background(), 1, buf)
	require.NoError(t, err)
	require.NotNil(t, created)

	require.Len(t, rule.Rows, 3)
	assert.Equal(t, models.VehicleTypeCar, rule.Rows[0].VehicleType)
	assert.Equal(t, 4500.0, rule.Rows[0].Price)
	// Blank max means unbounded.
	assert.Nil(t, rule.Rows[1].OfferAmountMax)
	assert.Equal(t, models.VehicleTypeMotorbike, rule.Rows[2].VehicleType)
}

func TestPricingService_ImportMatrix_ReplacesExistingRows(t *testing.T) {
	_, ruleRepo, service := newPricingTestDeps()

	existing := &models.PricingRule{ID: 5, CompanyID: 1, PricingType: models.PricingTypeMatrix, Active: true}
	ruleRepo.mockFindByCompanyAndType = func(ctx context.Context, companyID uint, pricingType string) (*models.PricingRule, error) {
		return existing, nil
	}
	replaced := false
	ruleRepo.mockReplaceRows = func(ctx context.Context, rule *models.PricingRule, rows []models.PricingRuleRow) error {
		replaced = true
		rule.Rows = rows
		return nil
	}

	f := matrixWorkbook(t, [][]interface{}{
		{"bus", "over_60", 0, "", 12000},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rule, err := service.ImportMatrix(context.Background(), 1, buf)
	require.NoError(t, err)
	assert.True(t, replaced)
	require.Len(t, rule.Rows, 1)
	assert.Equal(t, models.VehicleTypeBus, rule.Rows[0].VehicleType)
}

func TestPricingService_ImportMatrix_BadRow(t *testing.T) {
	_, _, service := newPricingTestDeps()

	f := matrixWorkbook(t, [][]interface{}{
		{"car", "24_to_60", "not-a-number", "", 4500},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = service.ImportMatrix(context.Background(), 1, buf)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}
