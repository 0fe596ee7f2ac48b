package entities

import (
	"errors"
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema (passageiro, operador, admin ou super-admin)
type User struct {
	ID             string
	Email          valueobjects.Email
	FullName       string
	Phone          *string
	PasswordHash   string
	Role           Role
	OrganizationID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time // Soft delete
}

// IsDeleted verifica se o usuário foi deletado (soft delete)
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// SoftDelete marca o usuário como deletado
func (u *User) SoftDelete() {
	now := time.Now()
	u.DeletedAt = &now
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate(registry *RoleRegistry) error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if len(u.FullName) < 2 {
		return errors.New("full name must be at least 2 characters")
	}

	if !registry.Recognized(u.Role) {
		return errors.New("invalid role")
	}

	// Todo papel abaixo do topo pertence a uma organização, exceto passageiros
	if u.Role != RoleUser && !registry.IsTopLevel(u.Role) && u.OrganizationID == nil {
		return errors.New("organization is required for staff roles")
	}

	return nil
}
