package services

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	domainerrors "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/logging"
)

var _ = Describe("BookingService e PaymentService", func() {
	var (
		ctx       context.Context
		clock     *fakeClock
		trips     *memTripRepo
		bookRepo  *memBookingRepo
		payRepo   *memPaymentRepo
		events    *recordingPublisher
		bookings  *BookingService
		payments  *PaymentService
		passenger *entities.Identity
		orgScope  string
	)

	BeforeEach(func() {
		ctx = context.Background()
		clock = &fakeClock{t: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
		orgScope = "org-onatra"

		trips = newMemTripRepo(&entities.Trip{
			ID:             "trip-kin-mat",
			OrganizationID: orgScope,
			LineID:         "line-1",
			DepartureTime:  clock.t.Add(6 * time.Hour),
			ArrivalTime:    clock.t.Add(14 * time.Hour),
			Price:          25000,
			TotalSeats:     3,
			AvailableSeats: 3,
			Status:         entities.TripScheduled,
		})
		bookRepo = &memBookingRepo{bookings: map[string]*entities.Booking{}, trips: trips}
		payRepo = &memPaymentRepo{payments: map[string]*entities.Payment{}}
		events = &recordingPublisher{}

		registry := entities.DefaultRoleRegistry()
		log := logging.NewNopLogger()
		bookings = NewBookingService(bookRepo, trips, registry, &inlineUoW{}, events, log)
		bookings.now = clock.now
		payments = NewPaymentService(payRepo, bookRepo, trips, bookings, &inlineUoW{}, events, log)
		payments.now = clock.now

		passenger = &entities.Identity{UserID: "passenger-1", Role: entities.RoleUser}
	})

	Describe("reserva", func() {
		It("baixa os assentos, calcula o total e publica o evento", func() {
			booking, err := bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 2})
			Expect(err).NotTo(HaveOccurred())

			Expect(booking.Reference).To(MatchRegexp(`^CM-[0-9A-F]{8}$`))
			Expect(booking.TotalAmount).To(Equal(50000.0))
			Expect(booking.Status).To(Equal(entities.BookingPending))
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(1))

			Expect(events.types()).To(Equal([]string{ports.EventBookingCreated}))
			Expect(events.events[0].OrganizationID).To(Equal(orgScope))
		})

		It("recusa quando faltam assentos", func() {
			_, err := bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 4})
			Expect(err).To(MatchError(domainerrors.ErrSeatsUnavailable))
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(3))
		})

		It("recusa viagens que já partiram", func() {
			clock.t = clock.t.Add(7 * time.Hour)
			_, err := bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 1})
			Expect(err).To(MatchError(domainerrors.ErrTripNotBookable))
		})

		It("viagem inexistente", func() {
			_, err := bookings.Create(ctx, passenger, CreateBookingInput{TripID: "nope", PassengerCount: 1})
			Expect(err).To(MatchError(domainerrors.ErrTripNotFound))
		})

		It("cancelamento devolve os assentos", func() {
			booking, err := bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 2})
			Expect(err).NotTo(HaveOccurred())

			cancelled, err := bookings.Cancel(ctx, passenger, booking.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(cancelled.Status).To(Equal(entities.BookingCancelled))
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(3))

			_, err = bookings.Cancel(ctx, passenger, booking.ID)
			Expect(err).To(MatchError(domainerrors.ErrBookingNotCancelable))
		})

		It("cancelamento concorrente não devolve os assentos duas vezes", func() {
			first, err := bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 2})
			Expect(err).NotTo(HaveOccurred())
			_, err = bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(0))

			_, err = bookings.Cancel(ctx, passenger, first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(2))

			// a segunda requisição leu a reserva ainda pendente
			stale := NewBookingService(&staleBookingRepo{memBookingRepo: bookRepo, status: entities.BookingPending},
				trips, entities.DefaultRoleRegistry(), &inlineUoW{}, events, logging.NewNopLogger())
			stale.now = clock.now

			_, err = stale.Cancel(ctx, passenger, first.ID)
			Expect(err).To(MatchError(domainerrors.ErrBookingNotCancelable))
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(2))
		})

		It("outro passageiro não enxerga a reserva", func() {
			booking, _ := bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 1})

			stranger := &entities.Identity{UserID: "passenger-2", Role: entities.RoleUser}
			_, err := bookings.Get(ctx, stranger, booking.ID)
			Expect(err).To(MatchError(domainerrors.ErrBookingNotFound))
		})

		It("operador da organização da viagem enxerga a reserva, de outra organização não", func() {
			booking, _ := bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 1})

			own, other := orgScope, "org-other"
			_, err := bookings.Get(ctx, &entities.Identity{UserID: "op", Role: entities.RoleOperator, OrganizationID: &own}, booking.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = bookings.Get(ctx, &entities.Identity{UserID: "op2", Role: entities.RoleOperator, OrganizationID: &other}, booking.ID)
			Expect(err).To(MatchError(domainerrors.ErrBookingNotFound))
		})
	})

	Describe("pagamento", func() {
		var booking *entities.Booking

		BeforeEach(func() {
			var err error
			booking, err = bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 2})
			Expect(err).NotTo(HaveOccurred())
		})

		It("inicia pagamento pendente no valor da reserva e é idempotente", func() {
			payment, err := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentMobileMoney})
			Expect(err).NotTo(HaveOccurred())
			Expect(payment.Amount).To(Equal(50000.0))
			Expect(payment.Currency).To(Equal("CDF"))
			Expect(payment.Status).To(Equal(entities.PaymentPending))

			again, err := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentCard})
			Expect(err).NotTo(HaveOccurred())
			Expect(again.ID).To(Equal(payment.ID))
		})

		It("recusa meio de pagamento desconhecido", func() {
			_, err := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: "bitcoin"})
			var domainErr *domainerrors.DomainError
			Expect(errors.As(err, &domainErr)).To(BeTrue())
			Expect(domainErr.Type).To(Equal(domainerrors.ProblemTypeValidation))
		})

		It("pagamento concluído confirma a reserva", func() {
			payment, _ := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentCash})

			updated, err := payments.UpdateStatus(ctx, &orgScope, payment.ID, entities.PaymentCompleted)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(entities.PaymentCompleted))
			Expect(bookRepo.bookings[booking.ID].Status).To(Equal(entities.BookingConfirmed))
			Expect(events.types()).To(ContainElement(ports.EventPaymentUpdated))

			_, err = payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentCash})
			Expect(err).To(MatchError(domainerrors.ErrBookingNotPayable))
		})

		It("reembolso cancela a reserva e devolve os assentos", func() {
			payment, _ := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentCard})
			_, err := payments.UpdateStatus(ctx, &orgScope, payment.ID, entities.PaymentCompleted)
			Expect(err).NotTo(HaveOccurred())

			_, err = payments.UpdateStatus(ctx, &orgScope, payment.ID, entities.PaymentRefunded)
			Expect(err).NotTo(HaveOccurred())
			Expect(bookRepo.bookings[booking.ID].Status).To(Equal(entities.BookingCancelled))
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(3))
		})

		It("reembolso depois de um cancelamento concorrente não devolve os assentos de novo", func() {
			payment, _ := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentCard})
			_, err := payments.UpdateStatus(ctx, &orgScope, payment.ID, entities.PaymentCompleted)
			Expect(err).NotTo(HaveOccurred())
			_, err = bookings.Create(ctx, passenger, CreateBookingInput{TripID: "trip-kin-mat", PassengerCount: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(0))

			_, err = bookings.Cancel(ctx, passenger, booking.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(2))

			stale := NewPaymentService(payRepo, &staleBookingRepo{memBookingRepo: bookRepo, status: entities.BookingConfirmed},
				trips, bookings, &inlineUoW{}, events, logging.NewNopLogger())
			stale.now = clock.now

			refunded, err := stale.UpdateStatus(ctx, &orgScope, payment.ID, entities.PaymentRefunded)
			Expect(err).NotTo(HaveOccurred())
			Expect(refunded.Status).To(Equal(entities.PaymentRefunded))
			Expect(trips.trips["trip-kin-mat"].AvailableSeats).To(Equal(2))
		})

		It("pagamento de reserva de outro passageiro aparece como inexistente", func() {
			payment, _ := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentCard})
			stranger := &entities.Identity{UserID: "passenger-2", Role: entities.RoleUser}
			_, err := payments.Get(ctx, stranger, payment.ID)
			Expect(err).To(MatchError(domainerrors.ErrPaymentNotFound))
		})

		It("transição inválida é recusada", func() {
			payment, _ := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentCard})
			_, err := payments.UpdateStatus(ctx, &orgScope, payment.ID, entities.PaymentRefunded)
			Expect(err).To(MatchError(domainerrors.ErrInvalidTransition))
		})

		It("operador de outra organização não altera o pagamento", func() {
			payment, _ := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentCard})
			other := "org-other"
			_, err := payments.UpdateStatus(ctx, &other, payment.ID, entities.PaymentCompleted)
			Expect(err).To(MatchError(domainerrors.ErrPaymentNotFound))
		})

		It("papel de topo altera pagamentos de qualquer organização", func() {
			payment, _ := payments.Initiate(ctx, passenger, InitiatePaymentInput{BookingID: booking.ID, Method: entities.PaymentCard})
			_, err := payments.UpdateStatus(ctx, nil, payment.ID, entities.PaymentFailed)
			Expect(err).NotTo(HaveOccurred())
			Expect(bookRepo.bookings[booking.ID].Status).To(Equal(entities.BookingPending))
		})
	})
})
