package dto

import (
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
)

// RevenueBucketResponse é um bucket do relatório de receita
type RevenueBucketResponse struct {
	Period     time.Time `json:"period"`
	Revenue    float64   `json:"revenue"`
	Trips      int64     `json:"trips"`
	Passengers int64     `json:"passengers"`
}

// ToRevenueResponses converte os buckets; lista vazia nunca vira null
func ToRevenueResponses(buckets []repositories.RevenueBucket) []RevenueBucketResponse {
	responses := make([]RevenueBucketResponse, len(buckets))
	for i, b := range buckets {
		responses[i] = RevenueBucketResponse{
			Period:     b.Period,
			Revenue:    b.Revenue,
			Trips:      b.Trips,
			Passengers: b.Passengers,
		}
	}
	return responses
}

// LinePerformanceResponse é uma linha do relatório de desempenho
type LinePerformanceResponse struct {
	LineName      string  `json:"line_name"`
	Revenue       float64 `json:"revenue"`
	OccupancyRate int64   `json:"occupancy_rate"`
	TripsCount    int64   `json:"trips_count"`
}

// ToPerformanceResponses converte o relatório de desempenho
func ToPerformanceResponses(lines []repositories.LinePerformance) []LinePerformanceResponse {
	responses := make([]LinePerformanceResponse, len(lines))
	for i, l := range lines {
		responses[i] = LinePerformanceResponse{
			LineName:      l.LineName,
			Revenue:       l.Revenue,
			OccupancyRate: l.OccupancyRate,
			TripsCount:    l.TripsCount,
		}
	}
	return responses
}

// DashboardResponse são os indicadores do painel do operador
type DashboardResponse struct {
	UpcomingTrips   int64   `json:"upcoming_trips"`
	ActiveVehicles  int64   `json:"active_vehicles"`
	BookingsToday   int64   `json:"bookings_today"`
	RevenueToday    float64 `json:"revenue_today"`
	PendingPayments int64   `json:"pending_payments"`
}

// ToDashboardResponse converte o resumo do painel
func ToDashboardResponse(s *repositories.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		UpcomingTrips:   s.UpcomingTrips,
		ActiveVehicles:  s.ActiveVehicles,
		BookingsToday:   s.BookingsToday,
		RevenueToday:    s.RevenueToday,
		PendingPayments: s.PendingPayments,
	}
}
