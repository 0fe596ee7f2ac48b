package services

import (
	"context"
	"strings"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
)

// FleetService gerencia linhas e veículos de uma organização
type FleetService struct {
	lineRepo    repositories.LineRepository
	vehicleRepo repositories.VehicleRepository
	logger      ports.Logger
}

// NewFleetService cria um novo FleetService
func NewFleetService(
	lineRepo repositories.LineRepository,
	vehicleRepo repositories.VehicleRepository,
	logger ports.Logger,
) *FleetService {
	return &FleetService{lineRepo: lineRepo, vehicleRepo: vehicleRepo, logger: logger}
}

// CreateLineInput são os dados de uma nova linha
type CreateLineInput struct {
	OrganizationID string
	Name           string
	DepartureCity  string
	ArrivalCity    string
	TransportType  entities.TransportType
	DistanceKm     float64
	BasePrice      float64
}

// CreateLine cria uma linha na organização do escopo
func (s *FleetService) CreateLine(ctx context.Context, scope *string, input CreateLineInput) (*entities.TransportLine, error) {
	org, err := ownerOrganization(scope, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	line := &entities.TransportLine{
		OrganizationID: org,
		Name:           strings.TrimSpace(input.Name),
		DepartureCity:  strings.TrimSpace(input.DepartureCity),
		ArrivalCity:    strings.TrimSpace(input.ArrivalCity),
		TransportType:  input.TransportType,
		DistanceKm:     input.DistanceKm,
		BasePrice:      input.BasePrice,
		Active:         true,
	}
	if line.Name == "" {
		line.Name = line.Label()
	}
	if err := line.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.lineRepo.Create(ctx, line); err != nil {
		return nil, err
	}

	s.logger.Info("line created", "line_id", line.ID, "organization_id", org)
	return line, nil
}

// ListLines lista as linhas do escopo
func (s *FleetService) ListLines(ctx context.Context, scope *string) ([]*entities.TransportLine, error) {
	return s.lineRepo.List(ctx, scope)
}

// CreateVehicleInput são os dados de um novo veículo
type CreateVehicleInput struct {
	OrganizationID string
	Registration   string
	Model          string
	TransportType  entities.TransportType
	Capacity       int
}

// CreateVehicle cadastra um veículo; a placa é única na plataforma
func (s *FleetService) CreateVehicle(ctx context.Context, scope *string, input CreateVehicleInput) (*entities.Vehicle, error) {
	org, err := ownerOrganization(scope, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	vehicle := &entities.Vehicle{
		OrganizationID: org,
		Registration:   strings.ToUpper(strings.TrimSpace(input.Registration)),
		Model:          strings.TrimSpace(input.Model),
		TransportType:  input.TransportType,
		Capacity:       input.Capacity,
		Status:         entities.VehicleActive,
	}
	if err := vehicle.Validate(); err != nil {
		return nil, invalid(err)
	}

	existing, err := s.vehicleRepo.FindByRegistration(ctx, vehicle.Registration)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrVehicleExists
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// UpdateVehicleInput são os campos alteráveis de um veículo
type UpdateVehicleInput struct {
	Model    *string
	Capacity *int
	Status   *entities.VehicleStatus
}

// UpdateVehicle altera um veículo do escopo
func (s *FleetService) UpdateVehicle(ctx context.Context, scope *string, id string, input UpdateVehicleInput) (*entities.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, errors.ErrVehicleNotFound
	}

	if input.Model != nil {
		vehicle.Model = strings.TrimSpace(*input.Model)
	}
	if input.Capacity != nil {
		vehicle.Capacity = *input.Capacity
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}
	if err := vehicle.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle updated", "vehicle_id", vehicle.ID, "status", vehicle.Status)
	return vehicle, nil
}

// ListVehicles lista a frota do escopo, opcionalmente por estado
func (s *FleetService) ListVehicles(ctx context.Context, scope *string, status *entities.VehicleStatus) ([]*entities.Vehicle, error) {
	return s.vehicleRepo.List(ctx, scope, status)
}
