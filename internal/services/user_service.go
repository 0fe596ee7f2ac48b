package services

import (
	"context"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para a gestão de usuários pelos administradores
type UserService struct {
	userRepo repositories.UserRepository
	registry *entities.RoleRegistry
	hasher   PasswordHasher
	uow      ports.UnitOfWork
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	registry *entities.RoleRegistry,
	hasher PasswordHasher,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		registry: registry,
		hasher:   hasher,
		uow:      uow,
		logger:   logger,
	}
}

// CreateUserInput representa os dados para criar um usuário da equipe
type CreateUserInput struct {
	Email          string
	FullName       string
	Phone          *string
	Password       string
	Role           entities.Role
	OrganizationID string
}

// CreateUser cria um usuário na organização do administrador.
// O papel atribuído nunca passa do papel de quem cria.
func (s *UserService) CreateUser(ctx context.Context, actor *entities.AuthorizationContext, input CreateUserInput) (*entities.User, error) {
	role := entities.NormalizeRole(string(input.Role))
	if err := s.checkAssignable(actor, role); err != nil {
		return nil, err
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	s.logger.Info("creating user", "role", role, "by", actor.Identity.UserID)

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		FullName:     input.FullName,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         role,
	}
	if !s.registry.IsTopLevel(role) {
		org, err := ownerOrganization(actor.OrganizationScope, input.OrganizationID)
		if err == nil {
			user.OrganizationID = &org
		}
	}

	if err := user.Validate(s.registry); err != nil {
		return nil, invalid(err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser busca um usuário por ID dentro do escopo do chamador
func (s *UserService) GetUser(ctx context.Context, scope *string, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !inScope(scope, user.OrganizationID) {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers lista usuários com filtros; o escopo sempre sobrescreve o filtro de organização
func (s *UserService) ListUsers(ctx context.Context, scope *string, filters repositories.UserFilters) ([]*entities.User, error) {
	if scope != nil {
		filters.OrganizationID = scope
	}
	return s.userRepo.List(ctx, filters)
}

// ChangeRole altera o papel de um usuário. O chamador não pode promover acima do próprio nível
// nem alterar quem já está acima dele.
func (s *UserService) ChangeRole(ctx context.Context, actor *entities.AuthorizationContext, userID string, newRole entities.Role) (*entities.User, error) {
	role := entities.NormalizeRole(string(newRole))
	if err := s.checkAssignable(actor, role); err != nil {
		return nil, err
	}

	var updated *entities.User
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.GetUser(ctx, actor.OrganizationScope, userID)
		if err != nil {
			return err
		}
		if !s.registry.Dominates(actor.Role, user.Role) {
			return errors.ErrRoleAboveCaller
		}

		previous := user.Role
		user.Role = role
		if user.OrganizationID == nil && actor.OrganizationScope != nil && !s.registry.IsTopLevel(role) {
			org := *actor.OrganizationScope
			user.OrganizationID = &org
		}
		if err := user.Validate(s.registry); err != nil {
			return invalid(err)
		}

		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}

		s.logger.Info("user role changed",
			"user_id", user.ID,
			"from", previous,
			"to", role,
			"by", actor.Identity.UserID,
		)
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *UserService) checkAssignable(actor *entities.AuthorizationContext, role entities.Role) error {
	if !s.registry.Recognized(role) {
		return errors.ErrUnrecognizedRole
	}
	if s.registry.Level(role) > s.registry.Level(actor.Role) {
		return errors.ErrRoleAboveCaller
	}
	return nil
}

// inScope verifica se o recurso pertence à organização do escopo (nil = global)
func inScope(scope *string, org *string) bool {
	if scope == nil {
		return true
	}
	return org != nil && *org == *scope
}
