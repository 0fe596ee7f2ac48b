package services

import (
	"context"
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
)

// TokenIssuer assina tokens de acesso
type TokenIssuer interface {
	Issue(user *entities.User) (string, time.Time, error)
}

// PasswordHasher gera e confere hashes de senha
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// AuthService cadastra passageiros e emite tokens
type AuthService struct {
	userRepo repositories.UserRepository
	registry *entities.RoleRegistry
	tokens   TokenIssuer
	hasher   PasswordHasher
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	registry *entities.RoleRegistry,
	tokens TokenIssuer,
	hasher PasswordHasher,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		registry: registry,
		tokens:   tokens,
		hasher:   hasher,
		logger:   logger,
	}
}

// RegisterInput são os dados do cadastro de passageiro
type RegisterInput struct {
	Email    string
	FullName string
	Phone    *string
	Password string
}

// AuthResult é o usuário autenticado e seu token
type AuthResult struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}

// Register cria um passageiro (papel user) e já devolve um token
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

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
		Role:         entities.RoleUser,
	}
	if err := user.Validate(s.registry); err != nil {
		return nil, invalid(err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("passenger registered", "user_id", user.ID)
	return s.issue(user)
}

// Login confere email e senha. Email inexistente e senha errada dão o mesmo erro.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, valueobjects.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, errors.ErrInvalidCredentials
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn("login failed", "user_id", user.ID)
		return nil, errors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me retorna o usuário dono do token
func (s *AuthService) Me(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issue(user *entities.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
