package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
)

// BookingService reserva e cancela assentos
type BookingService struct {
	bookingRepo repositories.BookingRepository
	tripRepo    repositories.TripRepository
	registry    *entities.RoleRegistry
	uow         ports.UnitOfWork
	events      ports.EventPublisher
	logger      ports.Logger
	now         func() time.Time
}

// NewBookingService cria um novo BookingService
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	tripRepo repositories.TripRepository,
	registry *entities.RoleRegistry,
	uow ports.UnitOfWork,
	events ports.EventPublisher,
	logger ports.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		registry:    registry,
		uow:         uow,
		events:      events,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateBookingInput são os dados de uma reserva
type CreateBookingInput struct {
	TripID         string
	PassengerCount int
}

// Create reserva assentos numa viagem. A baixa de assentos e a reserva ficam na mesma transação.
func (s *BookingService) Create(ctx context.Context, identity *entities.Identity, input CreateBookingInput) (*entities.Booking, error) {
	if input.PassengerCount < 1 {
		input.PassengerCount = 1
	}

	var booking *entities.Booking
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		trip, err := s.tripRepo.FindByID(ctx, nil, input.TripID)
		if err != nil {
			return err
		}
		if trip == nil {
			return errors.ErrTripNotFound
		}
		if !trip.IsBookable(s.now()) {
			return errors.ErrTripNotBookable
		}

		ok, err := s.tripRepo.ReserveSeats(ctx, trip.ID, input.PassengerCount)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrSeatsUnavailable
		}
		trip.AvailableSeats -= input.PassengerCount

		booking = &entities.Booking{
			Reference:      NewBookingReference(),
			UserID:         identity.UserID,
			TripID:         trip.ID,
			PassengerCount: input.PassengerCount,
			TotalAmount:    trip.Price * float64(input.PassengerCount),
			Status:         entities.BookingPending,
			Trip:           trip,
		}
		return s.bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"reference", booking.Reference,
		"trip_id", booking.TripID,
		"passengers", booking.PassengerCount,
	)
	s.publish(ctx, ports.EventBookingCreated, booking)
	return booking, nil
}

// Get retorna uma reserva visível para o chamador
func (s *BookingService) Get(ctx context.Context, identity *entities.Identity, id string) (*entities.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil || !s.canAccess(identity, booking) {
		return nil, errors.ErrBookingNotFound
	}
	return booking, nil
}

// ListMine lista as reservas do próprio passageiro
func (s *BookingService) ListMine(ctx context.Context, identity *entities.Identity) ([]*entities.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, identity.UserID)
}

// ListForOrganization lista as reservas das viagens do escopo
func (s *BookingService) ListForOrganization(ctx context.Context, scope *string, limit int) ([]*entities.Booking, error) {
	return s.bookingRepo.ListByOrganization(ctx, scope, limit)
}

// Cancel cancela uma reserva antes da partida e devolve os assentos
func (s *BookingService) Cancel(ctx context.Context, identity *entities.Identity, id string) (*entities.Booking, error) {
	var booking *entities.Booking
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.Get(ctx, identity, id)
		if err != nil {
			return err
		}
		if !booking.IsCancellable() {
			return errors.ErrBookingNotCancelable
		}
		if booking.Trip != nil && booking.Trip.Status != entities.TripScheduled && booking.Trip.Status != entities.TripBoarding {
			return errors.ErrBookingNotCancelable
		}

		ok, err := s.bookingRepo.MarkCancelled(ctx, booking.ID)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrBookingNotCancelable
		}
		booking.Status = entities.BookingCancelled
		return s.tripRepo.ReleaseSeats(ctx, booking.TripID, booking.PassengerCount)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled", "booking_id", booking.ID, "by", identity.UserID)
	s.publish(ctx, ports.EventBookingCancelled, booking)
	return booking, nil
}

// canAccess libera o dono da reserva, o papel de topo e a equipe da organização da viagem
func (s *BookingService) canAccess(identity *entities.Identity, booking *entities.Booking) bool {
	if identity == nil {
		return false
	}
	if booking.UserID == identity.UserID || s.registry.IsTopLevel(identity.Role) {
		return true
	}
	if !s.registry.Dominates(identity.Role, entities.RoleOperator) || booking.Trip == nil {
		return false
	}
	return identity.HasOrganization() && *identity.OrganizationID == booking.Trip.OrganizationID
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *entities.Booking) {
	org := ""
	if booking.Trip != nil {
		org = booking.Trip.OrganizationID
	}
	s.events.Publish(ctx, ports.Event{
		Type:           eventType,
		OrganizationID: org,
		Data: map[string]any{
			"booking_id":      booking.ID,
			"reference":       booking.Reference,
			"trip_id":         booking.TripID,
			"passenger_count": booking.PassengerCount,
			"total_amount":    booking.TotalAmount,
			"status":          booking.Status,
		},
		OccurredAt: s.now().UTC(),
	})
}

// NewBookingReference gera uma referência curta de reserva (CM-XXXXXXXX)
func NewBookingReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "CM-" + strings.ToUpper(id[:8])
}
