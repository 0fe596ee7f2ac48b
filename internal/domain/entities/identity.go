package entities

import "time"

// Identity são as claims decodificadas de um token de acesso.
// Reconstruída a cada requisição, nunca persistida.
type Identity struct {
	UserID         string
	Email          string
	Role           Role
	OrganizationID *string
	IssuedAt       time.Time
	ExpiresAt      time.Time
}

// HasOrganization verifica se as claims trazem uma organização
func (i *Identity) HasOrganization() bool {
	return i.OrganizationID != nil && *i.OrganizationID != ""
}

// AuthorizationContext é o estado de autorização anexado a uma requisição protegida
type AuthorizationContext struct {
	Identity *Identity
	Role     Role
	// OrganizationScope nil significa acesso global (apenas o papel de topo)
	OrganizationScope *string
	// Scoped indica que o resolver de organização já rodou
	Scoped bool
}

// IsGlobal verifica se o contexto não tem restrição de organização
func (a *AuthorizationContext) IsGlobal() bool {
	return a.Scoped && a.OrganizationScope == nil
}

// ScopeValue retorna o id da organização ou "" para acesso global
func (a *AuthorizationContext) ScopeValue() string {
	if a.OrganizationScope == nil {
		return ""
	}
	return *a.OrganizationScope
}
