package repositories

import (
	"context"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
)

// OrganizationRepository define a persistência de organizações
type OrganizationRepository interface {
	Create(ctx context.Context, org *entities.Organization) error
	FindByID(ctx context.Context, id string) (*entities.Organization, error)
	FindByCode(ctx context.Context, code string) (*entities.Organization, error)
	List(ctx context.Context) ([]*entities.Organization, error)
}
