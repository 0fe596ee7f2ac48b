package dto

import (
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
)

// CreateLineRequest representa uma nova linha de transporte
type CreateLineRequest struct {
	OrganizationID string  `json:"organization_id" binding:"omitempty,uuid"`
	Name           string  `json:"name" binding:"omitempty,max=120"`
	DepartureCity  string  `json:"departure_city" binding:"required,min=2,max=80"`
	ArrivalCity    string  `json:"arrival_city" binding:"required,min=2,max=80"`
	TransportType  string  `json:"transport_type" binding:"required,transport_type"`
	DistanceKm     float64 `json:"distance_km" binding:"gte=0"`
	BasePrice      float64 `json:"base_price" binding:"gte=0"`
}

// LineResponse representa uma linha
type LineResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	Name           string  `json:"name"`
	DepartureCity  string  `json:"departure_city"`
	ArrivalCity    string  `json:"arrival_city"`
	TransportType  string  `json:"transport_type"`
	DistanceKm     float64 `json:"distance_km"`
	BasePrice      float64 `json:"base_price"`
	Active         bool    `json:"active"`
}

// ToLineResponse converte uma linha
func ToLineResponse(line *entities.TransportLine) LineResponse {
	return LineResponse{
		ID:             line.ID,
		OrganizationID: line.OrganizationID,
		Name:           line.Name,
		DepartureCity:  line.DepartureCity,
		ArrivalCity:    line.ArrivalCity,
		TransportType:  string(line.TransportType),
		DistanceKm:     line.DistanceKm,
		BasePrice:      line.BasePrice,
		Active:         line.Active,
	}
}

// ToLineResponses converte uma lista de linhas
func ToLineResponses(lines []*entities.TransportLine) []LineResponse {
	responses := make([]LineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToLineResponse(line)
	}
	return responses
}

// CreateVehicleRequest representa um novo veículo
type CreateVehicleRequest struct {
	OrganizationID string `json:"organization_id" binding:"omitempty,uuid"`
	Registration   string `json:"registration" binding:"required,min=3,max=20"`
	Model          string `json:"model" binding:"omitempty,max=80"`
	TransportType  string `json:"transport_type" binding:"required,transport_type"`
	Capacity       int    `json:"capacity" binding:"required,gt=0"`
}

// UpdateVehicleRequest representa a alteração de um veículo
type UpdateVehicleRequest struct {
	Model    *string `json:"model" binding:"omitempty,max=80"`
	Capacity *int    `json:"capacity" binding:"omitempty,gt=0"`
	Status   *string `json:"status" binding:"omitempty,oneof=active maintenance retired"`
}

// VehicleResponse representa um veículo
type VehicleResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Registration   string    `json:"registration"`
	Model          string    `json:"model,omitempty"`
	TransportType  string    `json:"transport_type"`
	Capacity       int       `json:"capacity"`
	Status         string    `json:"status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToVehicleResponse converte um veículo
func ToVehicleResponse(v *entities.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:             v.ID,
		OrganizationID: v.OrganizationID,
		Registration:   v.Registration,
		Model:          v.Model,
		TransportType:  string(v.TransportType),
		Capacity:       v.Capacity,
		Status:         string(v.Status),
		UpdatedAt:      v.UpdatedAt,
	}
}

// ToVehicleResponses converte uma lista de veículos
func ToVehicleResponses(vehicles []*entities.Vehicle) []VehicleResponse {
	responses := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		responses[i] = ToVehicleResponse(v)
	}
	return responses
}

// TripSearchQuery são os filtros da busca pública
type TripSearchQuery struct {
	From          string `form:"from"`
	To            string `form:"to"`
	Date          string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	TransportType string `form:"transport_type" binding:"omitempty,transport_type"`
	Passengers    int    `form:"passengers" binding:"omitempty,gte=1,max=50"`
}

// ScheduleTripRequest representa uma nova partida
type ScheduleTripRequest struct {
	LineID        string    `json:"line_id" binding:"required,uuid"`
	VehicleID     *string   `json:"vehicle_id" binding:"omitempty,uuid"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required,gtfield=DepartureTime"`
	Price         *float64  `json:"price" binding:"omitempty,gte=0"`
	TotalSeats    *int      `json:"total_seats" binding:"omitempty,gt=0"`
}

// ChangeTripStatusRequest representa a mudança de estado de uma viagem
type ChangeTripStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled boarding departed arrived cancelled"`
}

// TripResponse representa uma viagem
type TripResponse struct {
	ID             string        `json:"id"`
	OrganizationID string        `json:"organization_id"`
	LineID         string        `json:"line_id"`
	VehicleID      *string       `json:"vehicle_id,omitempty"`
	DepartureTime  time.Time     `json:"departure_time"`
	ArrivalTime    time.Time     `json:"arrival_time"`
	Price          float64       `json:"price"`
	TotalSeats     int           `json:"total_seats"`
	AvailableSeats int           `json:"available_seats"`
	Status         string        `json:"status"`
	Line           *LineResponse `json:"line,omitempty"`
}

// ToTripResponse converte uma viagem
func ToTripResponse(trip *entities.Trip) TripResponse {
	response := TripResponse{
		ID:             trip.ID,
		OrganizationID: trip.OrganizationID,
		LineID:         trip.LineID,
		VehicleID:      trip.VehicleID,
		DepartureTime:  trip.DepartureTime,
		ArrivalTime:    trip.ArrivalTime,
		Price:          trip.Price,
		TotalSeats:     trip.TotalSeats,
		AvailableSeats: trip.AvailableSeats,
		Status:         string(trip.Status),
	}
	if trip.Line != nil {
		line := ToLineResponse(trip.Line)
		response.Line = &line
	}
	return response
}

// ToTripResponses converte uma lista de viagens
func ToTripResponses(trips []*entities.Trip) []TripResponse {
	responses := make([]TripResponse, len(trips))
	for i, trip := range trips {
		responses[i] = ToTripResponse(trip)
	}
	return responses
}
