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

var _ = Describe("TripService e FleetService", func() {
	var (
		ctx      context.Context
		clock    *fakeClock
		lines    *memLineRepo
		vehicles *memVehicleRepo
		trips    *memTripRepo
		events   *recordingPublisher
		tripSvc  *TripService
		fleetSvc *FleetService
		onatra   string
		other    string
	)

	BeforeEach(func() {
		ctx = context.Background()
		clock = &fakeClock{t: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
		onatra, other = "org-onatra", "org-other"

		lines = &memLineRepo{lines: map[string]*entities.TransportLine{
			"line-kin-mat": {
				ID: "line-kin-mat", OrganizationID: onatra, Name: "Kinshasa → Matadi",
				DepartureCity: "Kinshasa", ArrivalCity: "Matadi", TransportType: entities.TransportBus,
				BasePrice: 30000, Active: true,
			},
		}}
		vehicles = &memVehicleRepo{vehicles: map[string]*entities.Vehicle{
			"bus-1":   {ID: "bus-1", OrganizationID: onatra, Registration: "KN-1234-BB", TransportType: entities.TransportBus, Capacity: 52, Status: entities.VehicleActive},
			"bus-2":   {ID: "bus-2", OrganizationID: onatra, Registration: "KN-5678-BB", TransportType: entities.TransportBus, Capacity: 40, Status: entities.VehicleMaintenance},
			"other-1": {ID: "other-1", OrganizationID: other, Registration: "LB-0001-AA", TransportType: entities.TransportBus, Capacity: 30, Status: entities.VehicleActive},
		}}
		trips = newMemTripRepo()
		events = &recordingPublisher{}

		log := logging.NewNopLogger()
		tripSvc = NewTripService(trips, lines, vehicles, events, log)
		tripSvc.now = clock.now
		fleetSvc = NewFleetService(lines, vehicles, log)
	})

	schedule := func(vehicleID string) (*entities.Trip, error) {
		input := ScheduleTripInput{
			LineID:        "line-kin-mat",
			DepartureTime: clock.t.Add(24 * time.Hour),
			ArrivalTime:   clock.t.Add(32 * time.Hour),
		}
		if vehicleID != "" {
			input.VehicleID = &vehicleID
		}
		return tripSvc.Schedule(ctx, &onatra, input)
	}

	Describe("Schedule", func() {
		It("usa o preço base da linha e a capacidade do veículo", func() {
			trip, err := schedule("bus-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(trip.Price).To(Equal(30000.0))
			Expect(trip.TotalSeats).To(Equal(52))
			Expect(trip.AvailableSeats).To(Equal(52))
			Expect(trip.OrganizationID).To(Equal(onatra))
			Expect(trip.Status).To(Equal(entities.TripScheduled))
		})

		It("recusa veículo em manutenção ou de outra organização", func() {
			_, err := schedule("bus-2")
			Expect(err).To(MatchError(domainerrors.ErrVehicleNotFound))

			_, err = schedule("other-1")
			Expect(err).To(MatchError(domainerrors.ErrVehicleNotFound))
		})

		It("linha fora do escopo não existe", func() {
			_, err := tripSvc.Schedule(ctx, &other, ScheduleTripInput{
				LineID:        "line-kin-mat",
				DepartureTime: clock.t.Add(time.Hour),
				ArrivalTime:   clock.t.Add(2 * time.Hour),
			})
			Expect(err).To(MatchError(domainerrors.ErrLineNotFound))
		})

		It("partida no passado é erro de validação", func() {
			seats := 10
			_, err := tripSvc.Schedule(ctx, &onatra, ScheduleTripInput{
				LineID:        "line-kin-mat",
				DepartureTime: clock.t.Add(-time.Hour),
				ArrivalTime:   clock.t.Add(time.Hour),
				TotalSeats:    &seats,
			})
			var domainErr *domainerrors.DomainError
			Expect(errors.As(err, &domainErr)).To(BeTrue())
			Expect(domainErr.Type).To(Equal(domainerrors.ProblemTypeValidation))
		})
	})

	Describe("ChangeStatus", func() {
		It("segue as transições permitidas e publica o evento", func() {
			trip, err := schedule("bus-1")
			Expect(err).NotTo(HaveOccurred())

			updated, err := tripSvc.ChangeStatus(ctx, &onatra, trip.ID, entities.TripBoarding)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(entities.TripBoarding))
			Expect(events.types()).To(Equal([]string{ports.EventTripStatus}))

			_, err = tripSvc.ChangeStatus(ctx, &onatra, trip.ID, entities.TripArrived)
			Expect(err).To(MatchError(domainerrors.ErrInvalidTransition))
		})

		It("viagem de outra organização não existe", func() {
			trip, _ := schedule("")
			_, err := tripSvc.ChangeStatus(ctx, &other, trip.ID, entities.TripCancelled)
			Expect(err).To(MatchError(domainerrors.ErrTripNotFound))
		})
	})

	Describe("FleetService", func() {
		It("cria linha na organização do escopo com nome padrão", func() {
			line, err := fleetSvc.CreateLine(ctx, &onatra, CreateLineInput{
				OrganizationID: other,
				DepartureCity:  "Kinshasa",
				ArrivalCity:    "Kisangani",
				TransportType:  entities.TransportBoat,
				BasePrice:      120000,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(line.OrganizationID).To(Equal(onatra))
			Expect(line.Name).To(Equal("Kinshasa → Kisangani"))
		})

		It("papel de topo precisa informar a organização", func() {
			_, err := fleetSvc.CreateLine(ctx, nil, CreateLineInput{
				DepartureCity: "Goma", ArrivalCity: "Bukavu", TransportType: entities.TransportBoat,
			})
			Expect(err).To(MatchError(domainerrors.ErrOrganizationRequired))
		})

		It("placa é única e normalizada", func() {
			_, err := fleetSvc.CreateVehicle(ctx, &onatra, CreateVehicleInput{
				Registration: " kn-1234-bb ", TransportType: entities.TransportBus, Capacity: 50,
			})
			Expect(err).To(MatchError(domainerrors.ErrVehicleExists))
		})

		It("atualiza estado do veículo do escopo", func() {
			status := entities.VehicleRetired
			vehicle, err := fleetSvc.UpdateVehicle(ctx, &onatra, "bus-1", UpdateVehicleInput{Status: &status})
			Expect(err).NotTo(HaveOccurred())
			Expect(vehicle.Status).To(Equal(entities.VehicleRetired))

			_, err = fleetSvc.UpdateVehicle(ctx, &other, "bus-1", UpdateVehicleInput{Status: &status})
			Expect(err).To(MatchError(domainerrors.ErrVehicleNotFound))
		})
	})
})
