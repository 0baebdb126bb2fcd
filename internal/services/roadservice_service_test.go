package services

import (
	"context"
	"testing"

	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRoadServiceTestDeps() (*mockRoadServiceRepo, *mockCompanyRepo, *RoadServiceService) {
	repo := &mockRoadServiceRepo{}
	companyRepo := &mockCompanyRepo{}
	return repo, companyRepo, NewRoadServiceService(repo, companyRepo, nil)
}

func testRoadService() *models.RoadService {
	return &models.RoadService{
		ID:          4,
		CompanyID:   1,
		Name:        "Asistencia Vial Plus",
		NormalPrice: 900,
		OldCarPrice: 1400,
		CutoffYear:  2010,
		Active:      true,
	}
}

func TestRoadServiceService_Price_CutoffBoundary(t *testing.T) {
	repo, _, service := newRoadServiceTestDeps()
	repo.mockFindByID = func(ctx context.Context, id uint) (*models.RoadService, error) {
		return testRoadService(), nil
	}

	// Strictly older than the cutoff pays the old-car price.
	price, err := service.Price(context.Background(), 4, 2009)
	require.NoError(t, err)
	assert.Equal(t, 1400.0, price)

	// The cutoff year itself pays the normal price.
	price, err = service.Price(context.Background(), 4, 2010)
	require.NoError(t, err)
	assert.Equal(t, 900.0, price)

	price, err = service.Price(context.Background(), 4, 2024)
	require.NoError(t, err)
	assert.Equal(t, 900.0, price)
}

func TestRoadServiceService_Price_InactiveService(t *testing.T) {
	repo, _, service := newRoadServiceTestDeps()
	repo.mockFindByID = func(ctx context.Context, id uint) (*models.RoadService, error) {
		rs := testRoadService()
		rs.Active = false
		return rs, nil
	}

	_, err := service.Price(context.Background(), 4, 2015)
	assert.ErrorIs(t, err, ErrRoadServiceInactive)
}

func TestRoadServiceService_Price_InvalidYear(t *testing.T) {
	_, _, service := newRoadServiceTestDeps()

	_, err := service.Price(context.Background(), 4, 0)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRoadServiceService_Price_NotFound(t *testing.T) {
	repo, _, service := newRoadServiceTestDeps()
	repo.mockFindByID = func(ctx context.Context, id uint) (*models.RoadService, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := service.Price(context.Background(), 99, 2015)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoadServiceService_Create_Validation(t *testing.T) {
	repo, companyRepo, service := newRoadServiceTestDeps()
	companyRepo.mockFindByID = func(ctx context.Context, id uint) (*models.InsuranceCompany, error) {
		return testCompany(), nil
	}
	repo.mockCreate = func(ctx context.Context, rs *models.RoadService) error {
		rs.ID = 4
		return nil
	}

	err := service.Create(context.Background(), &models.RoadService{
		CompanyID: 1, Name: "Vial", NormalPrice: 900, OldCarPrice: 0, CutoffYear: 2010,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	err = service.Create(context.Background(), &models.RoadService{
		CompanyID: 1, Name: "Vial", NormalPrice: 900, OldCarPrice: 1400, CutoffYear: 1800,
	})
	assert.Equal(t, KindValidation, KindOf(err))

	rs := &models.RoadService{CompanyID: 1, Name: "Vial", NormalPrice: 900, OldCarPrice: 1400, CutoffYear: 2010}
	require.NoError(t, service.Create(context.Background(), rs))
	assert.True(t, rs.Active)
}

func TestRoadServiceService_Create_CompanyNotFound(t *testing.T) {
	_, companyRepo, service := newRoadServiceTestDeps()
	companyRepo.mockFindByID = func(ctx context.Context, id uint) (*models.InsuranceCompany, error) {
		return nil, gorm.ErrRecordNotFound
	}

	err := service.Create(context.Background(), &models.RoadService{
		CompanyID: 99, Name: "Vial", NormalPrice: 900, OldCarPrice: 1400, CutoffYear: 2010,
	})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}
