package services

import (
	"context"
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
)

// TripService programa viagens e atende a busca pública
type TripService struct {
	tripRepo    repositories.TripRepository
	lineRepo    repositories.LineRepository
	vehicleRepo repositories.VehicleRepository
	events      ports.EventPublisher
	logger      ports.Logger
	now         func() time.Time
}

// NewTripService cria um novo TripService
func NewTripService(
	tripRepo repositories.TripRepository,
	lineRepo repositories.LineRepository,
	vehicleRepo repositories.VehicleRepository,
	events ports.EventPublisher,
	logger ports.Logger,
) *TripService {
	return &TripService{
		tripRepo:    tripRepo,
		lineRepo:    lineRepo,
		vehicleRepo: vehicleRepo,
		events:      events,
		logger:      logger,
		now:         time.Now,
	}
}

// Search busca viagens reserváveis
func (s *TripService) Search(ctx context.Context, search repositories.TripSearch) ([]*entities.Trip, error) {
	return s.tripRepo.Search(ctx, search)
}

// Get busca uma viagem; scope nil dispensa o filtro de organização (rota pública)
func (s *TripService) Get(ctx context.Context, scope *string, id string) (*entities.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, errors.ErrTripNotFound
	}
	return trip, nil
}

// List lista as viagens do escopo
func (s *TripService) List(ctx context.Context, scope *string, status *entities.TripStatus) ([]*entities.Trip, error) {
	return s.tripRepo.List(ctx, scope, status)
}

// ScheduleTripInput são os dados de uma nova partida
type ScheduleTripInput struct {
	LineID        string
	VehicleID     *string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Price         *float64
	TotalSeats    *int
}

// Schedule programa uma viagem numa linha do escopo.
// Sem preço usa o preço base da linha; sem lotação usa a capacidade do veículo.
func (s *TripService) Schedule(ctx context.Context, scope *string, input ScheduleTripInput) (*entities.Trip, error) {
	line, err := s.lineRepo.FindByID(ctx, scope, input.LineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, errors.ErrLineNotFound
	}

	trip := &entities.Trip{
		OrganizationID: line.OrganizationID,
		LineID:         line.ID,
		DepartureTime:  input.DepartureTime.UTC(),
		ArrivalTime:    input.ArrivalTime.UTC(),
		Price:          line.BasePrice,
		Status:         entities.TripScheduled,
		Line:           line,
	}
	if input.Price != nil {
		trip.Price = *input.Price
	}

	if input.VehicleID != nil && *input.VehicleID != "" {
		orgScope := line.OrganizationID
		vehicle, err := s.vehicleRepo.FindByID(ctx, &orgScope, *input.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil || vehicle.Status != entities.VehicleActive {
			return nil, errors.ErrVehicleNotFound
		}
		trip.VehicleID = &vehicle.ID
		trip.TotalSeats = vehicle.Capacity
	}
	if input.TotalSeats != nil {
		trip.TotalSeats = *input.TotalSeats
	}
	trip.AvailableSeats = trip.TotalSeats

	if !trip.DepartureTime.After(s.now()) {
		return nil, invalid(errDepartureInPast)
	}
	if err := trip.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.logger.Info("trip scheduled", "trip_id", trip.ID, "line_id", line.ID, "seats", trip.TotalSeats)
	return trip, nil
}

// ChangeStatus avança o estado de uma viagem do escopo
func (s *TripService) ChangeStatus(ctx context.Context, scope *string, id string, status entities.TripStatus) (*entities.Trip, error) {
	trip, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if !trip.Status.CanTransitionTo(status) {
		return nil, errors.ErrInvalidTransition
	}

	if err := s.tripRepo.UpdateStatus(ctx, trip.ID, status); err != nil {
		return nil, err
	}

	s.logger.Info("trip status changed", "trip_id", trip.ID, "from", trip.Status, "to", status)
	trip.Status = status

	s.events.Publish(ctx, ports.Event{
		Type:           ports.EventTripStatus,
		OrganizationID: trip.OrganizationID,
		Data:           map[string]any{"trip_id": trip.ID, "status": status},
		OccurredAt:     s.now().UTC(),
	})
	return trip, nil
}
