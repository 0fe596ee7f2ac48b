package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
)

// OrganizationRepository implementa repositories.OrganizationRepository
type OrganizationRepository struct {
	conn
}

// NewOrganizationRepository cria um novo OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) repositories.OrganizationRepository {
	return &OrganizationRepository{conn{db: db}}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *entities.Organization) error {
	model := &OrganizationModel{
		Name:         org.Name,
		Code:         org.Code,
		ContactEmail: org.ContactEmail,
		Active:       org.Active,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	org.ID = model.ID
	org.CreatedAt = model.CreatedAt
	org.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*entities.Organization, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *OrganizationRepository) FindByCode(ctx context.Context, code string) (*entities.Organization, error) {
	return r.findOne(ctx, "code = ?", code)
}

func (r *OrganizationRepository) List(ctx context.Context) ([]*entities.Organization, error) {
	var models []*OrganizationModel
	if err := r.getDB(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	orgs := make([]*entities.Organization, len(models))
	for i, m := range models {
		orgs[i] = organizationToEntity(m)
	}
	return orgs, nil
}

func (r *OrganizationRepository) findOne(ctx context.Context, query string, arg string) (*entities.Organization, error) {
	var model OrganizationModel
	if err := r.getDB(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return organizationToEntity(&model), nil
}

func organizationToEntity(m *OrganizationModel) *entities.Organization {
	return &entities.Organization{
		ID:           m.ID,
		Name:         m.Name,
		Code:         m.Code,
		ContactEmail: m.ContactEmail,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
