package repositories

import (
	"context"
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
)

// RevenueBucket é uma linha do relatório de receita
type RevenueBucket struct {
	Period     time.Time
	Trips      int64
	Passengers int64
	Revenue    float64
}

// LinePerformance é uma linha do relatório de desempenho
type LinePerformance struct {
	LineName      string
	Revenue       float64
	OccupancyRate int64
	TripsCount    int64
}

// DashboardSummary são os indicadores do painel do operador
type DashboardSummary struct {
	UpcomingTrips   int64
	ActiveVehicles  int64
	BookingsToday   int64
	RevenueToday    float64
	PendingPayments int64
}

// ReportRepository executa as consultas agregadas de relatórios (scope nil = global)
type ReportRepository interface {
	Revenue(ctx context.Context, scope *string, bucketing valueobjects.Bucketing) ([]RevenueBucket, error)
	Performance(ctx context.Context, scope *string, limit int) ([]LinePerformance, error)
	Dashboard(ctx context.Context, scope *string, now time.Time) (*DashboardSummary, error)
}
