package entities

import (
	"errors"
	"time"
)

// TransportType é o modal de transporte de uma linha ou veículo
type TransportType string

const (
	TransportBus   TransportType = "bus"
	TransportBoat  TransportType = "boat"
	TransportTrain TransportType = "train"
	TransportPlane TransportType = "plane"
)

// IsValid verifica se o modal é conhecido
func (t TransportType) IsValid() bool {
	switch t {
	case TransportBus, TransportBoat, TransportTrain, TransportPlane:
		return true
	}
	return false
}

// TransportLine é uma ligação origem → destino operada por uma organização
type TransportLine struct {
	ID             string
	OrganizationID string
	Name           string
	DepartureCity  string
	ArrivalCity    string
	TransportType  TransportType
	DistanceKm     float64
	BasePrice      float64
	Active         bool
	CreatedAt      time.Time
}

// Label retorna o rótulo usado nos relatórios ("Kinshasa → Matadi")
func (l *TransportLine) Label() string {
	return l.DepartureCity + " → " + l.ArrivalCity
}

// Validate valida regras de negócio da linha
func (l *TransportLine) Validate() error {
	if l.DepartureCity == "" || l.ArrivalCity == "" {
		return errors.New("departure and arrival cities are required")
	}
	if l.DepartureCity == l.ArrivalCity {
		return errors.New("departure and arrival cities must differ")
	}
	if !l.TransportType.IsValid() {
		return errors.New("invalid transport type")
	}
	if l.BasePrice < 0 {
		return errors.New("base price must not be negative")
	}
	return nil
}

// VehicleStatus é o estado operacional de um veículo
type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRetired     VehicleStatus = "retired"
)

// IsValid verifica se o estado é conhecido
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleActive, VehicleMaintenance, VehicleRetired:
		return true
	}
	return false
}

// Vehicle é um item da frota de uma organização
type Vehicle struct {
	ID             string
	OrganizationID string
	Registration   string
	Model          string
	TransportType  TransportType
	Capacity       int
	Status         VehicleStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate valida regras de negócio do veículo
func (v *Vehicle) Validate() error {
	if v.Registration == "" {
		return errors.New("registration is required")
	}
	if v.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}
	if !v.TransportType.IsValid() {
		return errors.New("invalid transport type")
	}
	if !v.Status.IsValid() {
		return errors.New("invalid vehicle status")
	}
	return nil
}
