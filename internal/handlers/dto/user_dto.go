package dto

import (
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
)

// RegisterRequest representa o cadastro de um passageiro
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	FullName string  `json:"full_name" binding:"required,min=2,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,min=6,max=20"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse é o usuário autenticado com seu token de acesso
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest representa a criação de um usuário da equipe por um administrador
type CreateUserRequest struct {
	Email          string  `json:"email" binding:"required,email"`
	FullName       string  `json:"full_name" binding:"required,min=2,max=100"`
	Phone          *string `json:"phone" binding:"omitempty,min=6,max=20"`
	Password       string  `json:"password" binding:"required,min=8,max=72"`
	Role           string  `json:"role" binding:"required"`
	OrganizationID string  `json:"organization_id" binding:"omitempty,uuid"`
}

// ChangeRoleRequest representa a troca de papel de um usuário
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ListUsersQuery são os filtros da listagem de usuários
type ListUsersQuery struct {
	Role     string `form:"role"`
	Page     int    `form:"page" binding:"omitempty,gte=1"`
	PageSize int    `form:"page_size" binding:"omitempty,gte=1,max=100"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Phone          *string   `json:"phone,omitempty"`
	Role           string    `json:"role"`
	OrganizationID *string   `json:"organization_id,omitempty"`
	Dashboard      string    `json:"dashboard"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email.String(),
		FullName:       user.FullName,
		Phone:          user.Phone,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
		Dashboard:      entities.DashboardPath(user.Role),
		CreatedAt:      user.CreatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// CreateOrganizationRequest representa o cadastro de um transportador
type CreateOrganizationRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=120"`
	Code         string `json:"code" binding:"required,min=2,max=20"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
}

// OrganizationResponse representa um transportador
type OrganizationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToOrganizationResponse converte uma organização
func ToOrganizationResponse(org *entities.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:           org.ID,
		Name:         org.Name,
		Code:         org.Code,
		ContactEmail: org.ContactEmail,
		Active:       org.Active,
		CreatedAt:    org.CreatedAt,
	}
}

// ToOrganizationResponses converte uma lista de organizações
func ToOrganizationResponses(orgs []*entities.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, len(orgs))
	for i, org := range orgs {
		responses[i] = ToOrganizationResponse(org)
	}
	return responses
}
