package errors

import (
	"errors"
	"strings"
)

// Authorization errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções ficam em internal/infrastructure/i18n/locales/*.json
var (
	ErrMissingCredential       = errors.New("error.missing_credential")
	ErrInvalidCredential       = errors.New("error.invalid_credential")
	ErrUnrecognizedRole        = errors.New("error.unrecognized_role")
	ErrForbidden               = errors.New("error.forbidden")
	ErrOrganizationRequired    = errors.New("error.organization_required")
	ErrProfileStoreUnavailable = errors.New("error.profile_store_unavailable")
	ErrInternalAuthorization   = errors.New("error.internal_authorization")
)

// Business errors
var (
	ErrUserNotFound         = errors.New("error.user_not_found")
	ErrEmailAlreadyExists   = errors.New("error.email_already_exists")
	ErrInvalidCredentials   = errors.New("error.invalid_credentials")
	ErrOrganizationNotFound = errors.New("error.organization_not_found")
	ErrOrganizationExists   = errors.New("error.organization_exists")
	ErrLineNotFound         = errors.New("error.line_not_found")
	ErrVehicleNotFound      = errors.New("error.vehicle_not_found")
	ErrVehicleExists        = errors.New("error.vehicle_exists")
	ErrTripNotFound         = errors.New("error.trip_not_found")
	ErrTripNotBookable      = errors.New("error.trip_not_bookable")
	ErrSeatsUnavailable     = errors.New("error.seats_unavailable")
	ErrBookingNotFound      = errors.New("error.booking_not_found")
	ErrBookingNotPayable    = errors.New("error.booking_not_payable")
	ErrBookingNotCancelable = errors.New("error.booking_not_cancelable")
	ErrPaymentNotFound      = errors.New("error.payment_not_found")
	ErrInvalidTransition    = errors.New("error.invalid_transition")
	ErrRoleAboveCaller      = errors.New("error.role_above_caller")
)

// Domain errors
var (
	ErrInvalidEmail = errors.New("error.invalid_email")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeUnavailable  = "/problems/service-unavailable"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// AuthorizationError é uma negação de acesso com o diagnóstico de papéis
type AuthorizationError struct {
	Err           error
	RequiredRoles []string
	CurrentRole   string
}

func (e *AuthorizationError) Error() string {
	msg := e.Err.Error()
	if e.CurrentRole != "" {
		msg += ": role " + e.CurrentRole
	}
	if len(e.RequiredRoles) > 0 {
		msg += " not in [" + strings.Join(e.RequiredRoles, ", ") + "]"
	}
	return msg
}

func (e *AuthorizationError) Unwrap() error {
	return e.Err
}
