package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
)

// LineRepository implementa repositories.LineRepository
type LineRepository struct {
	conn
}

// NewLineRepository cria um novo LineRepository
func NewLineRepository(db *gorm.DB) repositories.LineRepository {
	return &LineRepository{conn{db: db}}
}

func (r *LineRepository) Create(ctx context.Context, line *entities.TransportLine) error {
	model := lineToModel(line)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	line.ID = model.ID
	line.CreatedAt = model.CreatedAt
	return nil
}

func (r *LineRepository) FindByID(ctx context.Context, scope *string, id string) (*entities.TransportLine, error) {
	var model TransportLineModel
	query := scoped(r.getDB(ctx).Where("id = ?", id), "organization_id", scope)
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return lineToEntity(&model), nil
}

func (r *LineRepository) List(ctx context.Context, scope *string) ([]*entities.TransportLine, error) {
	var models []*TransportLineModel
	query := scoped(r.getDB(ctx).Model(&TransportLineModel{}), "organization_id", scope)
	if err := query.Order("departure_city, arrival_city").Find(&models).Error; err != nil {
		return nil, err
	}

	lines := make([]*entities.TransportLine, len(models))
	for i, m := range models {
		lines[i] = lineToEntity(m)
	}
	return lines, nil
}

func lineToModel(l *entities.TransportLine) *TransportLineModel {
	return &TransportLineModel{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		Name:           l.Name,
		DepartureCity:  l.DepartureCity,
		ArrivalCity:    l.ArrivalCity,
		TransportType:  string(l.TransportType),
		DistanceKm:     l.DistanceKm,
		BasePrice:      l.BasePrice,
		Active:         l.Active,
		CreatedAt:      l.CreatedAt,
	}
}

func lineToEntity(m *TransportLineModel) *entities.TransportLine {
	if m == nil {
		return nil
	}
	return &entities.TransportLine{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		DepartureCity:  m.DepartureCity,
		ArrivalCity:    m.ArrivalCity,
		TransportType:  entities.TransportType(m.TransportType),
		DistanceKm:     m.DistanceKm,
		BasePrice:      m.BasePrice,
		Active:         m.Active,
		CreatedAt:      m.CreatedAt,
	}
}

// VehicleRepository implementa repositories.VehicleRepository
type VehicleRepository struct {
	conn
}

// NewVehicleRepository cria um novo VehicleRepository
func NewVehicleRepository(db *gorm.DB) repositories.VehicleRepository {
	return &VehicleRepository{conn{db: db}}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *entities.Vehicle) error {
	model := vehicleToModel(vehicle)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	vehicle.ID = model.ID
	vehicle.CreatedAt = model.CreatedAt
	vehicle.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, scope *string, id string) (*entities.Vehicle, error) {
	return r.findOne(scoped(r.getDB(ctx).Where("id = ?", id), "organization_id", scope))
}

func (r *VehicleRepository) FindByRegistration(ctx context.Context, registration string) (*entities.Vehicle, error) {
	return r.findOne(r.getDB(ctx).Where("registration = ?", registration))
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *entities.Vehicle) error {
	return r.getDB(ctx).Save(vehicleToModel(vehicle)).Error
}

func (r *VehicleRepository) List(ctx context.Context, scope *string, status *entities.VehicleStatus) ([]*entities.Vehicle, error) {
	var models []*VehicleModel
	query := scoped(r.getDB(ctx).Model(&VehicleModel{}), "organization_id", scope)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	if err := query.Order("registration").Find(&models).Error; err != nil {
		return nil, err
	}

	vehicles := make([]*entities.Vehicle, len(models))
	for i, m := range models {
		vehicles[i] = vehicleToEntity(m)
	}
	return vehicles, nil
}

func (r *VehicleRepository) findOne(query *gorm.DB) (*entities.Vehicle, error) {
	var model VehicleModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return vehicleToEntity(&model), nil
}

func vehicleToModel(v *entities.Vehicle) *VehicleModel {
	return &VehicleModel{
		ID:             v.ID,
		OrganizationID: v.OrganizationID,
		Registration:   v.Registration,
		Model:          v.Model,
		TransportType:  string(v.TransportType),
		Capacity:       v.Capacity,
		Status:         string(v.Status),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func vehicleToEntity(m *VehicleModel) *entities.Vehicle {
	return &entities.Vehicle{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Registration:   m.Registration,
		Model:          m.Model,
		TransportType:  entities.TransportType(m.TransportType),
		Capacity:       m.Capacity,
		Status:         entities.VehicleStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
