package entities

import (
	"sort"
	"strings"
)

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleGuest      Role = "guest"
	RoleUser       Role = "user"
	RoleOperator   Role = "operator"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// DefaultRole é atribuído quando o token não traz nenhum papel
const DefaultRole = RoleUser

// NormalizeRole converte variações de escrita (SUPER_ADMIN, super-admin) para a forma canônica
func NormalizeRole(raw string) Role {
	r := strings.ToLower(strings.TrimSpace(raw))
	r = strings.NewReplacer("-", "", "_", "", " ", "").Replace(r)
	return Role(r)
}

// String retorna o nome do papel
func (r Role) String() string {
	return string(r)
}

// RoleLevel associa um papel ao seu nível numérico
type RoleLevel struct {
	Role  Role
	Level int
}

// RoleRegistry é a hierarquia de papéis. Nível maior inclui todas as permissões dos níveis menores.
// É imutável depois de construído.
type RoleRegistry struct {
	levels   map[Role]int
	topLevel Role
}

// NewRoleRegistry cria um registry a partir das entradas informadas.
// O papel de maior nível é o papel de topo (acesso global, sem escopo de organização).
func NewRoleRegistry(entries ...RoleLevel) *RoleRegistry {
	reg := &RoleRegistry{levels: make(map[Role]int, len(entries))}

	best := -1
	for _, e := range entries {
		role := NormalizeRole(string(e.Role))
		reg.levels[role] = e.Level
		if e.Level > best {
			best = e.Level
			reg.topLevel = role
		}
	}

	return reg
}

// DefaultRoleRegistry retorna a hierarquia canônica da plataforma
func DefaultRoleRegistry() *RoleRegistry {
	return NewRoleRegistry(
		RoleLevel{Role: RoleUser, Level: 10},
		RoleLevel{Role: RoleOperator, Level: 50},
		RoleLevel{Role: RoleAdmin, Level: 100},
		RoleLevel{Role: RoleSuperAdmin, Level: 1000},
	)
}

// Level retorna o nível do papel. Papel desconhecido vale 0.
func (r *RoleRegistry) Level(role Role) int {
	return r.levels[NormalizeRole(string(role))]
}

// Recognized verifica se o papel existe no registry
func (r *RoleRegistry) Recognized(role Role) bool {
	_, ok := r.levels[NormalizeRole(string(role))]
	return ok
}

// TopLevel retorna o papel de topo
func (r *RoleRegistry) TopLevel() Role {
	return r.topLevel
}

// IsTopLevel verifica se o papel é o papel de topo
func (r *RoleRegistry) IsTopLevel(role Role) bool {
	return r.topLevel != "" && NormalizeRole(string(role)) == r.topLevel
}

// Dominates verifica se `role` tem nível maior ou igual ao de `other`
func (r *RoleRegistry) Dominates(role, other Role) bool {
	return r.Level(role) >= r.Level(other)
}

// Roles lista os papéis em ordem crescente de nível
func (r *RoleRegistry) Roles() []RoleLevel {
	out := make([]RoleLevel, 0, len(r.levels))
	for role, level := range r.levels {
		out = append(out, RoleLevel{Role: role, Level: level})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level == out[j].Level {
			return out[i].Role < out[j].Role
		}
		return out[i].Level < out[j].Level
	})
	return out
}

// dashboardPaths mapeia cada papel para a página inicial do frontend
var dashboardPaths = map[Role]string{
	RoleSuperAdmin: "/superadmin/dashboard",
	RoleAdmin:      "/admin/dashboard",
	RoleOperator:   "/operator/dashboard",
	RoleUser:       "/passenger/dashboard",
	RoleGuest:      "/login",
}

// DashboardPath retorna a página inicial do papel. Papéis sem página vão para /login.
func DashboardPath(role Role) string {
	if p, ok := dashboardPaths[NormalizeRole(string(role))]; ok {
		return p
	}
	return dashboardPaths[RoleGuest]
}
