package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	domainerrors "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/metrics"
)

// Decision é o resultado do gate de autorização
type Decision struct {
	Allowed       bool
	RequiredRoles []string
	CurrentRole   string
}

// Err converte uma negação em *AuthorizationError; nil quando permitido
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &domainerrors.AuthorizationError{
		Err:           domainerrors.ErrForbidden,
		RequiredRoles: d.RequiredRoles,
		CurrentRole:   d.CurrentRole,
	}
}

// Authorizer decide se um papel atende o conjunto de papéis aceitos por uma rota
type Authorizer struct {
	registry *entities.RoleRegistry
	logger   ports.Logger
}

// NewAuthorizer cria um Authorizer sobre o registry informado
func NewAuthorizer(registry *entities.RoleRegistry, logger ports.Logger) *Authorizer {
	return &Authorizer{registry: registry, logger: logger}
}

// Registry retorna a hierarquia usada pelo gate
func (a *Authorizer) Registry() *entities.RoleRegistry {
	return a.registry
}

// Authorize permite quando o nível do chamador alcança o nível de pelo menos um dos papéis aceitos.
// Papel desconhecido vale 0 dos dois lados. Conjunto vazio permite qualquer autenticado.
func (a *Authorizer) Authorize(identity *entities.Identity, acceptable ...entities.Role) Decision {
	required := make([]string, len(acceptable))
	for i, r := range acceptable {
		required[i] = string(entities.NormalizeRole(string(r)))
	}

	if identity == nil {
		return Decision{Allowed: false, RequiredRoles: required, CurrentRole: string(entities.RoleGuest)}
	}

	current := entities.NormalizeRole(string(identity.Role))
	decision := Decision{RequiredRoles: required, CurrentRole: string(current)}

	if len(acceptable) == 0 {
		decision.Allowed = true
	} else {
		callerLevel := a.registry.Level(current)
		for _, r := range acceptable {
			if callerLevel >= a.registry.Level(r) {
				decision.Allowed = true
				break
			}
		}
	}

	if decision.Allowed {
		metrics.AuthzDecisionsTotal.WithLabelValues(string(current), "allow").Inc()
		return decision
	}

	metrics.AuthzDecisionsTotal.WithLabelValues(string(current), "deny").Inc()
	a.logger.Warn("access denied",
		"user_id", identity.UserID,
		"role", current,
		"required_roles", required,
	)
	return decision
}

// CheckDeclaredRoles avisa sobre papéis de rota fora do registry:
// eles valem 0 e liberam a rota para qualquer autenticado
func (a *Authorizer) CheckDeclaredRoles(acceptable ...entities.Role) {
	for _, r := range acceptable {
		if !a.registry.Recognized(r) {
			a.logger.Warn("route declares a role unknown to the registry; it admits every caller",
				"role", r,
			)
		}
	}
}

// ScopeResolver determina a organização que limita os dados de uma requisição
type ScopeResolver struct {
	registry *entities.RoleRegistry
	store    ports.ProfileStore
	logger   ports.Logger
}

// NewScopeResolver cria o resolver; store pode ser nil (só claims)
func NewScopeResolver(registry *entities.RoleRegistry, store ports.ProfileStore, logger ports.Logger) *ScopeResolver {
	return &ScopeResolver{registry: registry, store: store, logger: logger}
}

// Resolve retorna nil para o papel de topo (acesso global).
// Demais papéis usam a organização das claims ou, na falta dela, o profile store.
// Perfil sem organização vira ErrOrganizationRequired; falha do store vira ErrProfileStoreUnavailable.
func (r *ScopeResolver) Resolve(ctx context.Context, identity *entities.Identity) (*string, error) {
	if identity == nil {
		return nil, domainerrors.ErrMissingCredential
	}

	if r.registry.IsTopLevel(identity.Role) {
		return nil, nil
	}

	if identity.HasOrganization() {
		org := *identity.OrganizationID
		return &org, nil
	}

	if r.store == nil || identity.Email == "" {
		return nil, domainerrors.ErrOrganizationRequired
	}

	org, err := r.store.OrganizationIDByEmail(ctx, identity.Email)
	if err != nil {
		r.logger.Error("organization lookup failed",
			"user_id", identity.UserID,
			"error", err,
		)
		if errors.Is(err, domainerrors.ErrProfileStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domainerrors.ErrProfileStoreUnavailable, err)
	}

	if org == "" {
		r.logger.Warn("caller has no organization", "user_id", identity.UserID, "role", identity.Role)
		return nil, domainerrors.ErrOrganizationRequired
	}

	return &org, nil
}
