package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/repository"
	"gorm.io/gorm"
)

// RoadServiceService prices roadside-assistance products. The price is a
// two-tier function of the vehicle's model year against the service cutoff.
type RoadServiceService struct {
	repo        repository.RoadServiceRepository
	companyRepo repository.CompanyRepository
	auditSvc    *AuditService
}

func NewRoadServiceService(
	repo repository.RoadServiceRepository,
	companyRepo repository.CompanyRepository,
	auditSvc *AuditService,
) *RoadServiceService {
	return &RoadServiceService{repo: repo, companyRepo: companyRepo, auditSvc: auditSvc}
}

func (s *RoadServiceService) FindByID(ctx context.Context, id uint) (*models.RoadService, error) {
	service, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return service, nil
}

func (s *RoadServiceService) List(ctx context.Context, query *repository.ListQuery) ([]models.RoadService, int64, error) {
	return s.repo.List(ctx, query)
}

// Price quotes the service for a vehicle of the given model year
func (s *RoadServiceService) Price(ctx context.Context, serviceID uint, vehicleYear int) (float64, error) {
	if vehicleYear <= 0 {
		return 0, &Error{KindValidation, "año del vehículo inválido"}
	}

	service, err := s.repo.FindByID(ctx, serviceID)
	if err != nil {
		return 0, asNotFound(err)
	}
	if !service.Active {
		return 0, ErrRoadServiceInactive
	}
	return service.PriceFor(vehicleYear), nil
}

func (s *RoadServiceService) Create(ctx context.Context, service *models.RoadService) error {
	if _, err := s.companyRepo.FindByID(ctx, service.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	if service.NormalPrice <= 0 || service.OldCarPrice <= 0 {
		return ErrInvalidAmount
	}
	if service.CutoffYear < 1900 || service.CutoffYear > time.Now().Year()+1 {
		return &Error{KindValidation, "año de corte inválido"}
	}

	service.Active = true
	if err := s.repo.Create(ctx, service); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, 0, "CREATE", "RoadService", service.ID,
		fmt.Sprintf("Servicio vial %s creado. Normal: %.2f, carro viejo: %.2f, corte: %d",
			service.Name, service.NormalPrice, service.OldCarPrice, service.CutoffYear), "", "")
	return nil
}

func (s *RoadServiceService) Update(ctx context.Context, service *models.RoadService) error {
	if service.NormalPrice <= 0 || service.OldCarPrice <= 0 {
		return ErrInvalidAmount
	}
	return s.repo.Update(ctx, service)
}
