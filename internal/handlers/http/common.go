package http

import (
	stderrors "errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/middleware"
)

// RegisterValidators registra no validator do gin a regra transport_type
// e passa a reportar os campos pelo nome da tag json
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	return v.RegisterValidation("transport_type", func(fl validator.FieldLevel) bool {
		return entities.TransportType(fl.Field().String()).IsValid()
	})
}

// bindJSON faz o binding do corpo; em caso de erro já responde 400 ou 413
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			dto.Abort(c, dto.PayloadTooLargeErrorResponseI18n(c, tooLarge.Limit))
			return false
		}
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		dto.Abort(c, dto.BindingErrorResponseI18n(c, err))
		return false
	}
	return true
}

// pathID lê um id de rota; ids que não são UUID respondem com o not found do recurso
func pathID(c *gin.Context, name string, notFound error) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		dto.AbortWithError(c, notFound)
		return "", false
	}
	return id, true
}

// scope retorna o escopo resolvido pela cadeia. Rota sem RequireOrganization nunca recebe escopo global.
func scope(c *gin.Context) (*string, bool) {
	authCtx, ok := middleware.GetAuthorization(c)
	if !ok || !authCtx.Scoped {
		dto.AbortWithError(c, errors.ErrOrganizationRequired)
		return nil, false
	}
	return authCtx.OrganizationScope, true
}

func authorization(c *gin.Context) (*entities.AuthorizationContext, bool) {
	authCtx, ok := middleware.GetAuthorization(c)
	if !ok {
		dto.AbortWithError(c, errors.ErrMissingCredential)
		return nil, false
	}
	return authCtx, true
}

func identity(c *gin.Context) (*entities.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		dto.AbortWithError(c, errors.ErrMissingCredential)
		return nil, false
	}
	return id, true
}
