package services

import (
	stderrors "errors"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
)

var (
	errDepartureInPast      = stderrors.New("departure must be in the future")
	errInvalidPaymentMethod = stderrors.New("invalid payment method")
)

// invalid embrulha uma regra de entidade violada como erro de validação (400)
func invalid(err error) error {
	return &errors.DomainError{
		Type:    errors.ProblemTypeValidation,
		Title:   "error.validation.title",
		Message: err.Error(),
		Err:     err,
	}
}

// ownerOrganization escolhe a organização dona de um recurso criado.
// Com escopo, o escopo vence; sem escopo (papel de topo) a organização precisa vir na entrada.
func ownerOrganization(scope *string, requested string) (string, error) {
	if scope != nil {
		return *scope, nil
	}
	if requested == "" {
		return "", errors.ErrOrganizationRequired
	}
	return requested, nil
}
