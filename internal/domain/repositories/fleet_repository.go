package repositories

import (
	"context"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
)

// LineRepository define a persistência de linhas de transporte.
// scope nil = sem filtro de organização.
type LineRepository interface {
	Create(ctx context.Context, line *entities.TransportLine) error
	FindByID(ctx context.Context, scope *string, id string) (*entities.TransportLine, error)
	List(ctx context.Context, scope *string) ([]*entities.TransportLine, error)
}

// VehicleRepository define a persistência da frota
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entities.Vehicle) error
	FindByID(ctx context.Context, scope *string, id string) (*entities.Vehicle, error)
	FindByRegistration(ctx context.Context, registration string) (*entities.Vehicle, error)
	Update(ctx context.Context, vehicle *entities.Vehicle) error
	List(ctx context.Context, scope *string, status *entities.VehicleStatus) ([]*entities.Vehicle, error)
}
