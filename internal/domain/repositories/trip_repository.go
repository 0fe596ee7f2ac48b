package repositories

import (
	"context"
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
)

// TripSearch são os critérios da busca pública de viagens
type TripSearch struct {
	DepartureCity string
	ArrivalCity   string
	Date          *time.Time
	TransportType *entities.TransportType
	MinSeats      int
	Limit         int
}

// TripRepository define a persistência de viagens
type TripRepository interface {
	Create(ctx context.Context, trip *entities.Trip) error
	FindByID(ctx context.Context, scope *string, id string) (*entities.Trip, error)
	Search(ctx context.Context, search TripSearch) ([]*entities.Trip, error)
	List(ctx context.Context, scope *string, status *entities.TripStatus) ([]*entities.Trip, error)
	UpdateStatus(ctx context.Context, id string, status entities.TripStatus) error
	// ReserveSeats decrementa assentos de forma atômica; false quando não há assentos suficientes
	ReserveSeats(ctx context.Context, id string, seats int) (bool, error)
	ReleaseSeats(ctx context.Context, id string, seats int) error
}
