package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
)

// PaymentService inicia pagamentos e registra o retorno do provedor
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	bookingRepo repositories.BookingRepository
	tripRepo    repositories.TripRepository
	bookings    *BookingService
	uow         ports.UnitOfWork
	events      ports.EventPublisher
	logger      ports.Logger
	now         func() time.Time
}

// NewPaymentService cria um novo PaymentService
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	bookingRepo repositories.BookingRepository,
	tripRepo repositories.TripRepository,
	bookings *BookingService,
	uow ports.UnitOfWork,
	events ports.EventPublisher,
	logger ports.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		bookings:    bookings,
		uow:         uow,
		events:      events,
		logger:      logger,
		now:         time.Now,
	}
}

// InitiatePaymentInput são os dados para iniciar um pagamento
type InitiatePaymentInput struct {
	BookingID string
	Method    entities.PaymentMethod
}

// Initiate cria um pagamento pendente no valor total da reserva.
// Se já existe um pagamento pendente para a reserva, ele é devolvido.
func (s *PaymentService) Initiate(ctx context.Context, identity *entities.Identity, input InitiatePaymentInput) (*entities.Payment, error) {
	if !input.Method.IsValid() {
		return nil, invalid(errInvalidPaymentMethod)
	}

	booking, err := s.bookings.Get(ctx, identity, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != entities.BookingPending {
		return nil, errors.ErrBookingNotPayable
	}

	pending, err := s.paymentRepo.FindPendingByBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return pending, nil
	}

	payment := &entities.Payment{
		BookingID:         booking.ID,
		Amount:            booking.TotalAmount,
		Currency:          entities.DefaultCurrency,
		Method:            input.Method,
		Status:            entities.PaymentPending,
		ProviderReference: "PAY-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12]),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment initiated",
		"payment_id", payment.ID,
		"booking_id", booking.ID,
		"method", payment.Method,
		"amount", payment.Amount,
	)
	return payment, nil
}

// Get retorna um pagamento cuja reserva é visível para o chamador
func (s *PaymentService) Get(ctx context.Context, identity *entities.Identity, id string) (*entities.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errors.ErrPaymentNotFound
	}
	if _, err := s.bookings.Get(ctx, identity, payment.BookingID); err != nil {
		if stderrors.Is(err, errors.ErrBookingNotFound) {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// UpdateStatus registra o resultado do pagamento para a equipe da organização.
// completed confirma a reserva; refunded cancela a reserva e devolve os assentos.
func (s *PaymentService) UpdateStatus(ctx context.Context, scope *string, id string, status entities.PaymentStatus) (*entities.Payment, error) {
	var (
		payment *entities.Payment
		booking *entities.Booking
	)

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.paymentRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if payment == nil {
			return errors.ErrPaymentNotFound
		}

		booking, err = s.bookingRepo.FindByID(ctx, payment.BookingID)
		if err != nil {
			return err
		}
		if booking == nil || booking.Trip == nil || !inScope(scope, &booking.Trip.OrganizationID) {
			return errors.ErrPaymentNotFound
		}

		if !payment.Status.CanTransitionTo(status) {
			return errors.ErrInvalidTransition
		}
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, status); err != nil {
			return err
		}
		payment.Status = status

		switch status {
		case entities.PaymentCompleted:
			if booking.Status == entities.BookingPending {
				booking.Status = entities.BookingConfirmed
				return s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status)
			}
		case entities.PaymentRefunded:
			if booking.Status != entities.BookingCancelled {
				ok, err := s.bookingRepo.MarkCancelled(ctx, booking.ID)
				if err != nil || !ok {
					return err
				}
				booking.Status = entities.BookingCancelled
				return s.tripRepo.ReleaseSeats(ctx, booking.TripID, booking.PassengerCount)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment status changed", "payment_id", payment.ID, "status", status)
	s.events.Publish(ctx, ports.Event{
		Type:           ports.EventPaymentUpdated,
		OrganizationID: booking.Trip.OrganizationID,
		Data: map[string]any{
			"payment_id":     payment.ID,
			"booking_id":     booking.ID,
			"status":         payment.Status,
			"booking_status": booking.Status,
			"amount":         payment.Amount,
		},
		OccurredAt: s.now().UTC(),
	})
	return payment, nil
}
