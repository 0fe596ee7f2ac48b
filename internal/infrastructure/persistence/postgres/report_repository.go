package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
)

// ReportRepository implementa repositories.ReportRepository com SQL agregado
type ReportRepository struct {
	conn
}

// NewReportRepository cria um novo ReportRepository
func NewReportRepository(db *gorm.DB) repositories.ReportRepository {
	return &ReportRepository{conn{db: db}}
}

// Os buckets vêm de generate_series para que períodos sem venda apareçam com zero.
const revenueQuery = `
WITH buckets AS (
	SELECT generate_series(
		date_trunc(@unit, NOW() - CAST(@window AS interval)),
		date_trunc(@unit, NOW()),
		CAST(@step AS interval)
	) AS bucket
),
paid AS (
	SELECT date_trunc(@unit, p.created_at) AS bucket,
	       t.id AS trip_id,
	       b.passenger_count,
	       p.amount
	FROM payments p
	JOIN bookings b ON b.id = p.booking_id
	JOIN trips t ON t.id = b.trip_id
	WHERE p.status = 'completed'
	  AND p.created_at >= NOW() - CAST(@window AS interval)
	  %s
)
SELECT bk.bucket AS period,
       COUNT(DISTINCT paid.trip_id) AS trips,
       COALESCE(SUM(paid.passenger_count), 0) AS passengers,
       COALESCE(SUM(paid.amount), 0) AS revenue
FROM buckets bk
LEFT JOIN paid ON paid.bucket = bk.bucket
GROUP BY bk.bucket
ORDER BY bk.bucket ASC`

const performanceQuery = `
WITH line_trips AS (
	SELECT t.line_id,
	       COUNT(*) AS trips_count,
	       ROUND(AVG(CAST(t.total_seats - t.available_seats AS numeric) / NULLIF(t.total_seats, 0)) * 100) AS occupancy_rate
	FROM trips t
	WHERE TRUE
	  %[1]s
	GROUP BY t.line_id
),
line_revenue AS (
	SELECT t.line_id, SUM(p.amount) AS revenue
	FROM payments p
	JOIN bookings b ON b.id = p.booking_id
	JOIN trips t ON t.id = b.trip_id
	WHERE p.status = 'completed'
	  %[1]s
	GROUP BY t.line_id
)
SELECT l.departure_city || ' → ' || l.arrival_city AS line_name,
       COALESCE(lr.revenue, 0) AS revenue,
       COALESCE(lt.occupancy_rate, 0) AS occupancy_rate,
       lt.trips_count
FROM line_trips lt
JOIN transport_lines l ON l.id = lt.line_id
LEFT JOIN line_revenue lr ON lr.line_id = lt.line_id
ORDER BY revenue DESC, line_name ASC
LIMIT @limit`

const dashboardQuery = `
SELECT
	(SELECT COUNT(*) FROM trips t
	  WHERE t.status IN ('scheduled', 'boarding') AND t.departure_time >= @now %[1]s) AS upcoming_trips,
	(SELECT COUNT(*) FROM vehicles v
	  WHERE v.status = 'active' %[2]s) AS active_vehicles,
	(SELECT COUNT(*) FROM bookings b JOIN trips t ON t.id = b.trip_id
	  WHERE b.created_at >= @day_start %[1]s) AS bookings_today,
	(SELECT COALESCE(SUM(p.amount), 0) FROM payments p
	  JOIN bookings b ON b.id = p.booking_id JOIN trips t ON t.id = b.trip_id
	  WHERE p.status = 'completed' AND p.created_at >= @day_start %[1]s) AS revenue_today,
	(SELECT COUNT(*) FROM payments p
	  JOIN bookings b ON b.id = p.booking_id JOIN trips t ON t.id = b.trip_id
	  WHERE p.status = 'pending' %[1]s) AS pending_payments`

type revenueRow struct {
	Period     time.Time
	Trips      sql.NullInt64
	Passengers sql.NullInt64
	Revenue    sql.NullFloat64
}

type performanceRow struct {
	LineName      string
	Revenue       sql.NullFloat64
	OccupancyRate sql.NullFloat64
	TripsCount    sql.NullInt64
}

type dashboardRow struct {
	UpcomingTrips   sql.NullInt64
	ActiveVehicles  sql.NullInt64
	BookingsToday   sql.NullInt64
	RevenueToday    sql.NullFloat64
	PendingPayments sql.NullInt64
}

// scopeClause gera o predicado de organização; vazio para escopo global
func scopeClause(alias string, scope *string) string {
	if scope == nil {
		return ""
	}
	return "AND " + alias + ".organization_id = @org"
}

func namedArgs(scope *string, extra map[string]interface{}) map[string]interface{} {
	args := make(map[string]interface{}, len(extra)+1)
	for k, v := range extra {
		args[k] = v
	}
	if scope != nil {
		args["org"] = *scope
	}
	return args
}

// Revenue agrupa pagamentos concluídos por período dentro da janela retroativa
func (r *ReportRepository) Revenue(ctx context.Context, scope *string, bucketing valueobjects.Bucketing) ([]repositories.RevenueBucket, error) {
	var rows []revenueRow

	query := fmt.Sprintf(revenueQuery, scopeClause("t", scope))
	args := namedArgs(scope, map[string]interface{}{
		"unit":   bucketing.Unit,
		"window": bucketing.Window,
		"step":   bucketing.Step,
	})

	if err := r.getDB(ctx).Raw(strings.TrimSpace(query), args).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("revenue report: %w", err)
	}

	buckets := make([]repositories.RevenueBucket, len(rows))
	for i, row := range rows {
		buckets[i] = repositories.RevenueBucket{
			Period:     row.Period,
			Trips:      row.Trips.Int64,
			Passengers: row.Passengers.Int64,
			Revenue:    row.Revenue.Float64,
		}
	}
	return buckets, nil
}

// Performance retorna as linhas com maior receita e a ocupação média.
// Todas as viagens da linha contam, inclusive canceladas, nos dois agregados.
func (r *ReportRepository) Performance(ctx context.Context, scope *string, limit int) ([]repositories.LinePerformance, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []performanceRow

	query := fmt.Sprintf(performanceQuery, scopeClause("t", scope))
	args := namedArgs(scope, map[string]interface{}{"limit": limit})

	if err := r.getDB(ctx).Raw(strings.TrimSpace(query), args).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("performance report: %w", err)
	}

	lines := make([]repositories.LinePerformance, len(rows))
	for i, row := range rows {
		lines[i] = repositories.LinePerformance{
			LineName:      row.LineName,
			Revenue:       row.Revenue.Float64,
			OccupancyRate: int64(row.OccupancyRate.Float64),
			TripsCount:    row.TripsCount.Int64,
		}
	}
	return lines, nil
}

// Dashboard calcula os indicadores do painel do operador
func (r *ReportRepository) Dashboard(ctx context.Context, scope *string, now time.Time) (*repositories.DashboardSummary, error) {
	var row dashboardRow

	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	query := fmt.Sprintf(dashboardQuery, scopeClause("t", scope), scopeClause("v", scope))
	args := namedArgs(scope, map[string]interface{}{"now": now, "day_start": dayStart})

	if err := r.getDB(ctx).Raw(strings.TrimSpace(query), args).Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	return &repositories.DashboardSummary{
		UpcomingTrips:   row.UpcomingTrips.Int64,
		ActiveVehicles:  row.ActiveVehicles.Int64,
		BookingsToday:   row.BookingsToday.Int64,
		RevenueToday:    row.RevenueToday.Float64,
		PendingPayments: row.PendingPayments.Int64,
	}, nil
}
