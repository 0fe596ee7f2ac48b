package entities

import (
	"errors"
	"time"
)

// TripStatus é o estado de uma viagem
type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
	TripBoarding  TripStatus = "boarding"
	TripDeparted  TripStatus = "departed"
	TripArrived   TripStatus = "arrived"
	TripCancelled TripStatus = "cancelled"
)

var tripTransitions = map[TripStatus][]TripStatus{
	TripScheduled: {TripBoarding, TripCancelled},
	TripBoarding:  {TripDeparted, TripCancelled},
	TripDeparted:  {TripArrived},
}

// CanTransitionTo verifica se a mudança de estado é permitida
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Trip é uma partida programada de uma linha
type Trip struct {
	ID             string
	OrganizationID string
	LineID         string
	VehicleID      *string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	Price          float64
	TotalSeats     int
	AvailableSeats int
	Status         TripStatus
	Line           *TransportLine
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsBookable verifica se a viagem ainda aceita reservas
func (t *Trip) IsBookable(now time.Time) bool {
	return (t.Status == TripScheduled || t.Status == TripBoarding) && t.DepartureTime.After(now)
}

// OccupancyRate retorna a ocupação em porcentagem (0 quando não há assentos)
func (t *Trip) OccupancyRate() float64 {
	if t.TotalSeats <= 0 {
		return 0
	}
	return float64(t.TotalSeats-t.AvailableSeats) / float64(t.TotalSeats) * 100
}

// Validate valida regras de negócio da viagem
func (t *Trip) Validate() error {
	if t.LineID == "" {
		return errors.New("line is required")
	}
	if !t.ArrivalTime.After(t.DepartureTime) {
		return errors.New("arrival must be after departure")
	}
	if t.Price < 0 {
		return errors.New("price must not be negative")
	}
	if t.TotalSeats < 0 || t.AvailableSeats < 0 || t.AvailableSeats > t.TotalSeats {
		return errors.New("invalid seat inventory")
	}
	return nil
}
