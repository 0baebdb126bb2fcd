package services

import (
	"context"
	"fmt"

	"github.com/rmedina/segurapp-api/internal/models"
	"github.com/rmedina/segurapp-api/internal/repository"
)

type CustomerService struct {
	repo     repository.CustomerRepository
	auditSvc *AuditService
}

func NewCustomerService(repo repository.CustomerRepository, auditSvc *AuditService) *CustomerService {
	return &CustomerService{repo: repo, auditSvc: auditSvc}
}

func (s *CustomerService) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.repo.FindByIDWithVehicles(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return customer, nil
}

func (s *CustomerService) FindVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindVehicleByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return vehicle, nil
}

func (s *CustomerService) List(ctx context.Context, query *repository.ListQuery) ([]models.Customer, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) error {
	if customer.FullName == "" {
		return &Error{KindValidation, "el nombre del cliente es requerido"}
	}
	for i := range customer.Vehicles {
		if !models.ValidVehicleType(customer.Vehicles[i].VehicleType) {
			return &Error{KindValidation, "tipo de vehículo desconocido"}
		}
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, 0, "CREATE", "Customer", customer.ID,
		fmt.Sprintf("Cliente %s registrado con %d vehículos", customer.FullName, len(customer.Vehicles)), "", "")
	return nil
}

func (s *CustomerService) AddVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	if _, err := s.repo.FindByID(ctx, vehicle.CustomerID); err != nil {
		return asNotFound(err)
	}
	if vehicle.PlateNumber == "" {
		return &Error{KindValidation, "la placa del vehículo es requerida"}
	}
	if !models.ValidVehicleType(vehicle.VehicleType) {
		return &Error{KindValidation, "tipo de vehículo desconocido"}
	}

	if err := s.repo.CreateVehicle(ctx, vehicle); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, 0, "CREATE", "Vehicle", vehicle.ID,
		fmt.Sprintf("Vehículo %s agregado al cliente #%d", vehicle.PlateNumber, vehicle.CustomerID), "", "")
	return nil
}
