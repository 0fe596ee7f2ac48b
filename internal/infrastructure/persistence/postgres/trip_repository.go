package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
)

// TripRepository implementa repositories.TripRepository
type TripRepository struct {
	conn
}

// NewTripRepository cria um novo TripRepository
func NewTripRepository(db *gorm.DB) repositories.TripRepository {
	return &TripRepository{conn{db: db}}
}

func (r *TripRepository) Create(ctx context.Context, trip *entities.Trip) error {
	model := tripToModel(trip)
	if err := r.getDB(ctx).Omit("Line").Create(model).Error; err != nil {
		return err
	}
	trip.ID = model.ID
	trip.CreatedAt = model.CreatedAt
	trip.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *TripRepository) FindByID(ctx context.Context, scope *string, id string) (*entities.Trip, error) {
	var model TripModel
	query := scoped(r.getDB(ctx).Preload("Line").Where("trips.id = ?", id), "trips.organization_id", scope)
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return tripToEntity(&model), nil
}

// Search busca viagens reserváveis (programadas, no futuro, com assentos)
func (r *TripRepository) Search(ctx context.Context, search repositories.TripSearch) ([]*entities.Trip, error) {
	var models []*TripModel

	query := r.getDB(ctx).
		Preload("Line").
		Joins("JOIN transport_lines tl ON tl.id = trips.line_id").
		Where("trips.status = ?", string(entities.TripScheduled)).
		Where("trips.departure_time > ?", time.Now().UTC()).
		Where("trips.available_seats >= ?", max(search.MinSeats, 1))

	if search.DepartureCity != "" {
		query = query.Where("tl.departure_city ILIKE ?", search.DepartureCity+"%")
	}
	if search.ArrivalCity != "" {
		query = query.Where("tl.arrival_city ILIKE ?", search.ArrivalCity+"%")
	}
	if search.TransportType != nil {
		query = query.Where("tl.transport_type = ?", string(*search.TransportType))
	}
	if search.Date != nil {
		start := time.Date(search.Date.Year(), search.Date.Month(), search.Date.Day(), 0, 0, 0, 0, time.UTC)
		query = query.Where("trips.departure_time >= ? AND trips.departure_time < ?", start, start.AddDate(0, 0, 1))
	}

	limit := search.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if err := query.Order("trips.departure_time ASC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return tripsToEntities(models), nil
}

func (r *TripRepository) List(ctx context.Context, scope *string, status *entities.TripStatus) ([]*entities.Trip, error) {
	var models []*TripModel
	query := scoped(r.getDB(ctx).Preload("Line"), "trips.organization_id", scope)
	if status != nil {
		query = query.Where("trips.status = ?", string(*status))
	}
	if err := query.Order("trips.departure_time DESC").Limit(200).Find(&models).Error; err != nil {
		return nil, err
	}
	return tripsToEntities(models), nil
}

func (r *TripRepository) UpdateStatus(ctx context.Context, id string, status entities.TripStatus) error {
	return r.getDB(ctx).Model(&TripModel{}).Where("id = ?", id).Update("status", string(status)).Error
}

// ReserveSeats decrementa os assentos só se ainda houver o suficiente
func (r *TripRepository) ReserveSeats(ctx context.Context, id string, seats int) (bool, error) {
	result := r.getDB(ctx).Model(&TripModel{}).
		Where("id = ? AND available_seats >= ?", id, seats).
		UpdateColumn("available_seats", gorm.Expr("available_seats - ?", seats))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ReleaseSeats devolve assentos sem ultrapassar a capacidade
func (r *TripRepository) ReleaseSeats(ctx context.Context, id string, seats int) error {
	return r.getDB(ctx).Model(&TripModel{}).
		Where("id = ?", id).
		UpdateColumn("available_seats", gorm.Expr("LEAST(total_seats, available_seats + ?)", seats)).Error
}

func tripToModel(t *entities.Trip) *TripModel {
	return &TripModel{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		LineID:         t.LineID,
		VehicleID:      t.VehicleID,
		DepartureTime:  t.DepartureTime,
		ArrivalTime:    t.ArrivalTime,
		Price:          t.Price,
		TotalSeats:     t.TotalSeats,
		AvailableSeats: t.AvailableSeats,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func tripToEntity(m *TripModel) *entities.Trip {
	if m == nil {
		return nil
	}
	return &entities.Trip{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		LineID:         m.LineID,
		VehicleID:      m.VehicleID,
		DepartureTime:  m.DepartureTime,
		ArrivalTime:    m.ArrivalTime,
		Price:          m.Price,
		TotalSeats:     m.TotalSeats,
		AvailableSeats: m.AvailableSeats,
		Status:         entities.TripStatus(m.Status),
		Line:           lineToEntity(m.Line),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func tripsToEntities(models []*TripModel) []*entities.Trip {
	trips := make([]*entities.Trip, len(models))
	for i, m := range models {
		trips[i] = tripToEntity(m)
	}
	return trips
}
