package services

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	domainerrors "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/logging"
)

func identityWith(role entities.Role) *entities.Identity {
	return &entities.Identity{UserID: "u-1", Email: "agent@onatra.cd", Role: role}
}

var _ = Describe("Authorizer", func() {
	var authz *Authorizer

	BeforeEach(func() {
		authz = NewAuthorizer(entities.DefaultRoleRegistry(), logging.NewNopLogger())
	})

	It("autoriza qualquer papel de nível maior ou igual em rotas de papéis menores", func() {
		roles := authz.Registry().Roles()
		for _, caller := range roles {
			for _, required := range roles {
				decision := authz.Authorize(identityWith(caller.Role), required.Role)
				Expect(decision.Allowed).To(Equal(caller.Level >= required.Level),
					"caller %s on route %s", caller.Role, required.Role)
			}
		}
	})

	It("permite admin numa rota de operator", func() {
		decision := authz.Authorize(identityWith(entities.RoleAdmin), entities.RoleOperator)
		Expect(decision.Allowed).To(BeTrue())
		Expect(decision.Err()).To(BeNil())
	})

	It("nega user numa rota de operator com o diagnóstico de papéis", func() {
		decision := authz.Authorize(identityWith(entities.RoleUser), entities.RoleOperator)
		Expect(decision.Allowed).To(BeFalse())
		Expect(decision.RequiredRoles).To(Equal([]string{"operator"}))
		Expect(decision.CurrentRole).To(Equal("user"))

		var authErr *domainerrors.AuthorizationError
		Expect(errors.As(decision.Err(), &authErr)).To(BeTrue())
		Expect(errors.Is(authErr, domainerrors.ErrForbidden)).To(BeTrue())
		Expect(authErr.RequiredRoles).To(Equal([]string{"operator"}))
		Expect(authErr.CurrentRole).To(Equal("user"))
	})

	It("basta alcançar o menor papel aceito", func() {
		decision := authz.Authorize(identityWith(entities.RoleOperator), entities.RoleSuperAdmin, entities.RoleOperator)
		Expect(decision.Allowed).To(BeTrue())
	})

	It("conjunto vazio permite qualquer autenticado", func() {
		Expect(authz.Authorize(identityWith(entities.RoleUser)).Allowed).To(BeTrue())
	})

	It("papel de rota desconhecido vale zero e libera a rota", func() {
		Expect(authz.Authorize(identityWith(entities.RoleUser), "auditor").Allowed).To(BeTrue())
	})

	It("papel do chamador desconhecido vale zero", func() {
		Expect(authz.Authorize(identityWith("driver"), entities.RoleUser).Allowed).To(BeFalse())
	})

	It("normaliza variações de escrita do papel", func() {
		decision := authz.Authorize(identityWith("SUPER_ADMIN"), entities.RoleAdmin)
		Expect(decision.Allowed).To(BeTrue())
		Expect(decision.CurrentRole).To(Equal("superadmin"))
	})

	It("nega quando não há identidade", func() {
		decision := authz.Authorize(nil, entities.RoleUser)
		Expect(decision.Allowed).To(BeFalse())
		Expect(decision.CurrentRole).To(Equal("guest"))
	})

	It("aceita hierarquias alternativas injetadas", func() {
		custom := NewAuthorizer(entities.NewRoleRegistry(
			entities.RoleLevel{Role: "viewer", Level: 1},
			entities.RoleLevel{Role: "editor", Level: 2},
		), logging.NewNopLogger())

		Expect(custom.Authorize(identityWith("editor"), "viewer").Allowed).To(BeTrue())
		Expect(custom.Authorize(identityWith("viewer"), "editor").Allowed).To(BeFalse())
		Expect(custom.Registry().TopLevel()).To(Equal(entities.Role("editor")))
	})
})

var _ = Describe("ScopeResolver", func() {
	var (
		store    *fakeProfileStore
		resolver *ScopeResolver
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = &fakeProfileStore{}
		resolver = NewScopeResolver(entities.DefaultRoleRegistry(), store, logging.NewNopLogger())
	})

	It("papel de topo recebe escopo global sem consultar o store", func() {
		org := "org-9"
		identity := identityWith(entities.RoleSuperAdmin)
		identity.OrganizationID = &org

		scope, err := resolver.Resolve(ctx, identity)
		Expect(err).NotTo(HaveOccurred())
		Expect(scope).To(BeNil())
		Expect(store.calls).To(BeZero())
	})

	It("usa a organização das claims sem consultar o store", func() {
		org := "org-1"
		identity := identityWith(entities.RoleOperator)
		identity.OrganizationID = &org

		scope, err := resolver.Resolve(ctx, identity)
		Expect(err).NotTo(HaveOccurred())
		Expect(*scope).To(Equal("org-1"))
		Expect(store.calls).To(BeZero())
	})

	It("consulta o store quando as claims não trazem organização", func() {
		store.org = "org-2"

		scope, err := resolver.Resolve(ctx, identityWith(entities.RoleAdmin))
		Expect(err).NotTo(HaveOccurred())
		Expect(*scope).To(Equal("org-2"))
		Expect(store.calls).To(Equal(1))
	})

	It("falha com OrganizationRequired quando nenhum caminho resolve", func() {
		_, err := resolver.Resolve(ctx, identityWith(entities.RoleOperator))
		Expect(err).To(MatchError(domainerrors.ErrOrganizationRequired))
	})

	It("distingue falha do store de ausência", func() {
		store.err = errors.New("dial tcp: connection refused")

		_, err := resolver.Resolve(ctx, identityWith(entities.RoleOperator))
		Expect(errors.Is(err, domainerrors.ErrProfileStoreUnavailable)).To(BeTrue())
		Expect(errors.Is(err, domainerrors.ErrOrganizationRequired)).To(BeFalse())
	})

	It("sem store configurado exige organização nas claims", func() {
		noStore := NewScopeResolver(entities.DefaultRoleRegistry(), nil, logging.NewNopLogger())
		_, err := noStore.Resolve(ctx, identityWith(entities.RoleOperator))
		Expect(err).To(MatchError(domainerrors.ErrOrganizationRequired))
	})
})
