package dto

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/moogar0880/problems"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
)

// BaseURLContextKey guarda a URL base usada nas URIs de tipo de problema
const BaseURLContextKey = "base_url"

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs).
// Error repete a mensagem curta; RequiredRoles/AllowedRoles e CurrentRole só aparecem nas negações de papel.
type ErrorResponse struct {
	problems.Problem
	Error         string            `json:"error"`
	RequiredRoles []string          `json:"requiredRoles,omitempty"`
	AllowedRoles  []string          `json:"allowedRoles,omitempty"`
	CurrentRole   string            `json:"currentRole,omitempty"`
	Errors        []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
}

// SuccessResponse envelopa as respostas dos relatórios
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, errorKey string, status int, params ...map[string]interface{}) ErrorResponse {
	baseURL := c.GetString(BaseURLContextKey)
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	message := T(c, errorKey, params...)

	problem := problems.NewDetailedProblem(status, message)
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey, params...)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{
		Problem: *problem,
		Error:   message,
	}
}

// Abort escreve o problema com o content type application/problem+json e interrompe a cadeia
func Abort(c *gin.Context, response ErrorResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

// AbortWithError traduz um erro de domínio para a resposta HTTP correspondente
func AbortWithError(c *gin.Context, err error) {
	Abort(c, FromError(c, err))
}

// FromError mapeia erros de domínio para status e corpo.
// Erros desconhecidos viram 500 sem expor a mensagem original.
func FromError(c *gin.Context, err error) ErrorResponse {
	var authErr *errors.AuthorizationError
	if stderrors.As(err, &authErr) {
		return ForbiddenErrorResponseI18n(c, authErr.RequiredRoles, authErr.CurrentRole)
	}

	var domainErr *errors.DomainError
	if stderrors.As(err, &domainErr) && domainErr.Type == errors.ProblemTypeValidation {
		response := ValidationErrorResponseI18n(c, nil)
		response.Detail = domainErr.Message
		return response
	}

	for _, sentinel := range []struct {
		err         error
		status      int
		problemType string
		titleKey    string
	}{
		{errors.ErrMissingCredential, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized.title"},
		{errors.ErrInvalidCredential, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized.title"},
		{errors.ErrUnrecognizedRole, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized.title"},
		{errors.ErrInvalidCredentials, http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized.title"},
		{errors.ErrOrganizationRequired, http.StatusForbidden, errors.ProblemTypeForbidden, "error.forbidden.title"},
		{errors.ErrRoleAboveCaller, http.StatusForbidden, errors.ProblemTypeForbidden, "error.forbidden.title"},
		{errors.ErrProfileStoreUnavailable, http.StatusServiceUnavailable, errors.ProblemTypeUnavailable, "error.unavailable.title"},
		{errors.ErrInternalAuthorization, http.StatusInternalServerError, errors.ProblemTypeInternal, "error.internal.title"},
		{errors.ErrInvalidEmail, http.StatusBadRequest, errors.ProblemTypeValidation, "error.validation.title"},
	} {
		if stderrors.Is(err, sentinel.err) {
			return NewErrorResponseI18n(c, sentinel.problemType, sentinel.titleKey, sentinel.err.Error(), sentinel.status)
		}
	}

	if stderrors.Is(err, errors.ErrForbidden) {
		return ForbiddenErrorResponseI18n(c, nil, "")
	}

	for _, notFound := range []error{
		errors.ErrUserNotFound,
		errors.ErrOrganizationNotFound,
		errors.ErrLineNotFound,
		errors.ErrVehicleNotFound,
		errors.ErrTripNotFound,
		errors.ErrBookingNotFound,
		errors.ErrPaymentNotFound,
	} {
		if stderrors.Is(err, notFound) {
			return NotFoundErrorResponseI18n(c, notFound.Error())
		}
	}

	for _, conflict := range []error{
		errors.ErrEmailAlreadyExists,
		errors.ErrOrganizationExists,
		errors.ErrVehicleExists,
		errors.ErrTripNotBookable,
		errors.ErrSeatsUnavailable,
		errors.ErrBookingNotPayable,
		errors.ErrBookingNotCancelable,
		errors.ErrInvalidTransition,
	} {
		if stderrors.Is(err, conflict) {
			return ConflictErrorResponseI18n(c, conflict.Error())
		}
	}

	return InternalErrorResponseI18n(c)
}

// ValidationErrorResponseI18n cria uma resposta de erro de validação
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		errors.ProblemTypeValidation,
		"error.validation.title",
		"error.validation.detail",
		http.StatusBadRequest,
	)
	response.Errors = validationErrors
	return response
}

// BindingErrorResponseI18n converte o erro do binding do gin em erros de campo traduzidos.
// Os nomes de campo vêm da tag json (ver RegisterValidators).
func BindingErrorResponseI18n(c *gin.Context, err error) ErrorResponse {
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return NewErrorResponseI18n(c, errors.ProblemTypeBadRequest, "error.bad_request.title", "error.malformed_body", http.StatusBadRequest)
	}

	details := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		field := fe.Field()
		params := map[string]interface{}{"Field": field, "Param": fe.Param()}

		key := "validation." + fe.Tag()
		message := T(c, key, params)
		if message == key {
			message = T(c, "validation.invalid", params)
		}

		details = append(details, ValidationError{
			Field:   field,
			Message: message,
			Tag:     fe.Tag(),
		})
	}
	return ValidationErrorResponseI18n(c, details)
}

// NotFoundErrorResponseI18n cria uma resposta de erro 404
func NotFoundErrorResponseI18n(c *gin.Context, errorKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeNotFound,
		"error.not_found.title",
		errorKey,
		http.StatusNotFound,
	)
}

// ConflictErrorResponseI18n cria uma resposta de erro 409
func ConflictErrorResponseI18n(c *gin.Context, errorKey string, params ...map[string]interface{}) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeConflict,
		"error.conflict.title",
		errorKey,
		http.StatusConflict,
		params...,
	)
}

// ForbiddenErrorResponseI18n cria uma resposta 403 com o diagnóstico de papéis
func ForbiddenErrorResponseI18n(c *gin.Context, requiredRoles []string, currentRole string) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		errors.ProblemTypeForbidden,
		"error.forbidden.title",
		errors.ErrForbidden.Error(),
		http.StatusForbidden,
	)
	if currentRole != "" {
		response.Detail = T(c, "error.forbidden.detail", map[string]interface{}{
			"Current":  currentRole,
			"Required": strings.Join(requiredRoles, ", "),
		})
	}
	response.RequiredRoles = requiredRoles
	response.CurrentRole = currentRole
	return response
}

// TooManyRequestsErrorResponseI18n cria uma resposta de erro 429
func TooManyRequestsErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		"/problems/too-many-requests",
		"error.too_many_requests.title",
		"error.too_many_requests.detail",
		http.StatusTooManyRequests,
	)
}

// PayloadTooLargeErrorResponseI18n cria uma resposta de erro 413
func PayloadTooLargeErrorResponseI18n(c *gin.Context, limit int64) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		"/problems/payload-too-large",
		"error.payload_too_large.title",
		"error.payload_too_large.detail",
		http.StatusRequestEntityTooLarge,
		map[string]interface{}{"Limit": limit},
	)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeInternal,
		"error.internal.title",
		"error.internal.detail",
		http.StatusInternalServerError,
	)
}

// ReportErrorResponseI18n cria o 500 de relatório. A mensagem do banco só vai no detail quando exposeCause é true.
func ReportErrorResponseI18n(c *gin.Context, cause error, exposeCause bool) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		errors.ProblemTypeInternal,
		"error.internal.title",
		"error.report_failed",
		http.StatusInternalServerError,
	)
	if exposeCause && cause != nil {
		response.Detail = cause.Error()
	}
	return response
}
