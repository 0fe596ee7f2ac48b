package services

import (
	"context"
	"strings"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
)

// OrganizationService gerencia os transportadores da plataforma
type OrganizationService struct {
	orgRepo repositories.OrganizationRepository
	logger  ports.Logger
}

// NewOrganizationService cria um novo OrganizationService
func NewOrganizationService(orgRepo repositories.OrganizationRepository, logger ports.Logger) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo, logger: logger}
}

// CreateOrganizationInput são os dados de uma nova organização
type CreateOrganizationInput struct {
	Name         string
	Code         string
	ContactEmail string
}

// Create cadastra uma organização; o código é único e guardado em maiúsculas
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*entities.Organization, error) {
	org := &entities.Organization{
		Name:         strings.TrimSpace(input.Name),
		Code:         strings.ToUpper(strings.TrimSpace(input.Code)),
		ContactEmail: valueobjects.NormalizeEmail(input.ContactEmail),
		Active:       true,
	}
	if err := org.Validate(); err != nil {
		return nil, invalid(err)
	}

	existing, err := s.orgRepo.FindByCode(ctx, org.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrOrganizationExists
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info("organization created", "organization_id", org.ID, "code", org.Code)
	return org, nil
}

// Get busca uma organização por ID
func (s *OrganizationService) Get(ctx context.Context, id string) (*entities.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, errors.ErrOrganizationNotFound
	}
	return org, nil
}

// List lista todas as organizações
func (s *OrganizationService) List(ctx context.Context) ([]*entities.Organization, error) {
	return s.orgRepo.List(ctx)
}
