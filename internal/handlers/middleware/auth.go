package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	domainerrors "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/metrics"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

const (
	// IdentityContextKey guarda as claims verificadas da requisição
	IdentityContextKey = "identity"
	// AuthorizationContextKey guarda o *entities.AuthorizationContext montado pela cadeia
	AuthorizationContextKey = "authorization"
	// AccessTokenCookie é o cookie lido pelas rotas de página quando não há header Authorization
	AccessTokenCookie = "access_token"
)

// TokenVerifier decodifica credenciais bearer
type TokenVerifier interface {
	VerifyHeader(header string) (*entities.Identity, error)
	Verify(token string) (*entities.Identity, error)
}

// AuthMiddleware monta a cadeia autenticação → papel → organização das rotas protegidas
type AuthMiddleware struct {
	tokens TokenVerifier
	authz  *services.Authorizer
	scopes *services.ScopeResolver
	logger ports.Logger
}

// NewAuthMiddleware cria o middleware de autorização
func NewAuthMiddleware(tokens TokenVerifier, authz *services.Authorizer, scopes *services.ScopeResolver, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		authz:  authz,
		scopes: scopes,
		logger: logger,
	}
}

// Gate retorna Authenticate seguido de RequireRoles
func (m *AuthMiddleware) Gate(roles ...entities.Role) []gin.HandlerFunc {
	return []gin.HandlerFunc{m.Authenticate(), m.RequireRoles(roles...)}
}

// ScopedGate é o Gate seguido de RequireOrganization
func (m *AuthMiddleware) ScopedGate(roles ...entities.Role) []gin.HandlerFunc {
	return append(m.Gate(roles...), m.RequireOrganization())
}

// Authenticate verifica o header Authorization e anexa a identidade à requisição.
// Papéis fora do registry são recusados aqui, antes de qualquer handler.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := m.guard(c, "authenticate", func() error {
			identity, err := m.tokens.VerifyHeader(c.GetHeader("Authorization"))
			if err != nil {
				return err
			}
			if !m.authz.Registry().Recognized(identity.Role) {
				m.logger.Warn("token carries unrecognized role", "user_id", identity.UserID, "role", identity.Role)
				return domainerrors.ErrUnrecognizedRole
			}

			c.Set(IdentityContextKey, identity)
			c.Set(AuthorizationContextKey, &entities.AuthorizationContext{
				Identity: identity,
				Role:     entities.NormalizeRole(string(identity.Role)),
			})
			return nil
		})
		if err != nil {
			m.reject(c, err)
			return
		}
		c.Next()
	}
}

// RequireRoles permite a requisição quando o papel do chamador alcança algum dos papéis informados
func (m *AuthMiddleware) RequireRoles(roles ...entities.Role) gin.HandlerFunc {
	m.authz.CheckDeclaredRoles(roles...)

	return func(c *gin.Context) {
		err := m.guard(c, "require_roles", func() error {
			authCtx, ok := GetAuthorization(c)
			if !ok {
				return domainerrors.ErrMissingCredential
			}
			return m.authz.Authorize(authCtx.Identity, roles...).Err()
		})
		if err != nil {
			m.reject(c, err)
			return
		}
		c.Next()
	}
}

// RequireOrganization resolve o escopo de organização do chamador.
// O papel de topo segue com escopo global (nil).
func (m *AuthMiddleware) RequireOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := m.guard(c, "require_organization", func() error {
			authCtx, ok := GetAuthorization(c)
			if !ok {
				return domainerrors.ErrMissingCredential
			}

			scope, err := m.scopes.Resolve(c.Request.Context(), authCtx.Identity)
			if err != nil {
				return err
			}
			authCtx.OrganizationScope = scope
			authCtx.Scoped = true
			return nil
		})
		if err != nil {
			m.reject(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth anexa a identidade quando há credencial válida (header ou cookie) e nunca bloqueia
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity := m.optionalIdentity(c); identity != nil {
			c.Set(IdentityContextKey, identity)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) optionalIdentity(c *gin.Context) *entities.Identity {
	if header := c.GetHeader("Authorization"); header != "" {
		if identity, err := m.tokens.VerifyHeader(header); err == nil {
			return identity
		}
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		if identity, err := m.tokens.Verify(cookie); err == nil {
			return identity
		}
	}
	return nil
}

// guard executa um passo da cadeia; pânico vira ErrInternalAuthorization (500)
func (m *AuthMiddleware) guard(c *gin.Context, step string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("authorization step panicked",
				"step", step,
				"path", c.Request.URL.Path,
				"panic", r,
			)
			err = domainerrors.ErrInternalAuthorization
		}
	}()
	return fn()
}

func (m *AuthMiddleware) reject(c *gin.Context, err error) {
	reason := failureReason(err)
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()

	if reason == "invalid_credential" {
		// a causa (expirado, assinatura) só vai para o log
		m.logger.Info("credential rejected", "path", c.Request.URL.Path, "error", err)
	}

	dto.AbortWithError(c, err)
}

func failureReason(err error) string {
	for _, sentinel := range []error{
		domainerrors.ErrMissingCredential,
		domainerrors.ErrInvalidCredential,
		domainerrors.ErrUnrecognizedRole,
		domainerrors.ErrForbidden,
		domainerrors.ErrOrganizationRequired,
		domainerrors.ErrProfileStoreUnavailable,
		domainerrors.ErrInternalAuthorization,
	} {
		if errors.Is(err, sentinel) {
			return strings.TrimPrefix(sentinel.Error(), "error.")
		}
	}
	return "other"
}

// GetIdentity retorna a identidade anexada por Authenticate ou OptionalAuth
func GetIdentity(c *gin.Context) (*entities.Identity, bool) {
	v, ok := c.Get(IdentityContextKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*entities.Identity)
	return identity, ok && identity != nil
}

// GetAuthorization retorna o contexto de autorização da requisição
func GetAuthorization(c *gin.Context) (*entities.AuthorizationContext, bool) {
	v, ok := c.Get(AuthorizationContextKey)
	if !ok {
		return nil, false
	}
	authCtx, ok := v.(*entities.AuthorizationContext)
	return authCtx, ok && authCtx != nil
}

// Scope retorna o escopo de organização resolvido (nil = global)
func Scope(c *gin.Context) *string {
	authCtx, ok := GetAuthorization(c)
	if !ok {
		return nil
	}
	return authCtx.OrganizationScope
}

// BearerFromCookie promove o cookie de sessão a header Authorization em upgrades websocket,
// onde o navegador não consegue enviar headers próprios.
func BearerFromCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" && strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
				c.Request.Header.Set("Authorization", "Bearer "+cookie)
			}
		}
		c.Next()
	}
}
