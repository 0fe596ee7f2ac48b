package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
)

// IsAPIRequest distingue chamadas de API de navegações do browser:
// prefixo /api/, XMLHttpRequest ou Accept pedindo JSON.
func IsAPIRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), "application/json")
}

// RequireRoleOrRedirect protege rotas de página. Papel suficiente segue adiante;
// API recebe 403 com allowedRoles e currentRole; navegação é redirecionada ao painel do papel.
func (m *AuthMiddleware) RequireRoleOrRedirect(allowed ...entities.Role) gin.HandlerFunc {
	m.authz.CheckDeclaredRoles(allowed...)

	return func(c *gin.Context) {
		identity := m.optionalIdentity(c)

		decision := m.authz.Authorize(identity, allowed...)
		if decision.Allowed {
			c.Set(IdentityContextKey, identity)
			c.Next()
			return
		}

		if IsAPIRequest(c.Request) {
			response := dto.ForbiddenErrorResponseI18n(c, decision.RequiredRoles, decision.CurrentRole)
			response.AllowedRoles, response.RequiredRoles = response.RequiredRoles, nil
			dto.Abort(c, response)
			return
		}

		target := entities.DashboardPath(entities.Role(decision.CurrentRole))
		if target == c.Request.URL.Path {
			// evita loop de redirecionamento
			target = entities.DashboardPath(entities.RoleGuest)
		}
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// RedirectToDashboard manda qualquer chamador para o painel do seu papel (visitante vai para /login)
func (m *AuthMiddleware) RedirectToDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entities.RoleGuest
		if identity := m.optionalIdentity(c); identity != nil {
			role = identity.Role
		}
		c.Redirect(http.StatusFound, entities.DashboardPath(role))
		c.Abort()
	}
}
