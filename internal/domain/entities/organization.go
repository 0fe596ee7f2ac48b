package entities

import (
	"errors"
	"strings"
	"time"
)

// Organization é um transportador (tenant) da plataforma
type Organization struct {
	ID           string
	Name         string
	Code         string
	ContactEmail string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate valida regras de negócio da organização
func (o *Organization) Validate() error {
	if len(strings.TrimSpace(o.Name)) < 2 {
		return errors.New("organization name must be at least 2 characters")
	}
	if strings.TrimSpace(o.Code) == "" {
		return errors.New("organization code is required")
	}
	return nil
}
