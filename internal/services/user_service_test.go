package services

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	domainerrors "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/logging"
)

func mustEmail(raw string) valueobjects.Email {
	e, err := valueobjects.NewEmail(raw)
	Expect(err).NotTo(HaveOccurred())
	return e
}

func actorFor(role entities.Role, scope *string) *entities.AuthorizationContext {
	return &entities.AuthorizationContext{
		Identity:          &entities.Identity{UserID: "actor", Role: role, OrganizationID: scope},
		Role:              role,
		OrganizationScope: scope,
		Scoped:            true,
	}
}

var _ = Describe("UserService", func() {
	var (
		ctx     context.Context
		users   *memUserRepo
		uow     *inlineUoW
		service *UserService
		onatra  string
		sctp    string
	)

	BeforeEach(func() {
		ctx = context.Background()
		onatra, sctp = "org-onatra", "org-sctp"
		users = newMemUserRepo(
			&entities.User{ID: "op-1", Email: mustEmail("op@onatra.cd"), FullName: "Mbuyi Kalala", Role: entities.RoleOperator, OrganizationID: &onatra},
			&entities.User{ID: "admin-2", Email: mustEmail("admin@sctp.cd"), FullName: "Ilunga Tshibanda", Role: entities.RoleAdmin, OrganizationID: &sctp},
			&entities.User{ID: "pax-1", Email: mustEmail("pax@mail.cd"), FullName: "Nsimba Lukusa", Role: entities.RoleUser},
		)
		uow = &inlineUoW{}
		service = NewUserService(users, entities.DefaultRoleRegistry(), plainHasher{}, uow, logging.NewNopLogger())
	})

	Describe("CreateUser", func() {
		It("cria operador na organização do admin, ignorando a organização pedida", func() {
			user, err := service.CreateUser(ctx, actorFor(entities.RoleAdmin, &onatra), CreateUserInput{
				Email:          "Agent@Onatra.cd",
				FullName:       "Kabila Mwamba",
				Password:       "s3cret!!",
				Role:           "OPERATOR",
				OrganizationID: sctp,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email.String()).To(Equal("agent@onatra.cd"))
			Expect(user.Role).To(Equal(entities.RoleOperator))
			Expect(*user.OrganizationID).To(Equal(onatra))
			Expect(user.PasswordHash).To(Equal("hash:s3cret!!"))
		})

		It("admin não cria superadmin", func() {
			_, err := service.CreateUser(ctx, actorFor(entities.RoleAdmin, &onatra), CreateUserInput{
				Email: "boss@onatra.cd", FullName: "Boss", Password: "s3cret!!", Role: entities.RoleSuperAdmin,
			})
			Expect(err).To(MatchError(domainerrors.ErrRoleAboveCaller))
		})

		It("papel desconhecido", func() {
			_, err := service.CreateUser(ctx, actorFor(entities.RoleAdmin, &onatra), CreateUserInput{
				Email: "x@onatra.cd", FullName: "Xavier", Password: "s3cret!!", Role: "driver",
			})
			Expect(err).To(MatchError(domainerrors.ErrUnrecognizedRole))
		})

		It("email duplicado", func() {
			_, err := service.CreateUser(ctx, actorFor(entities.RoleAdmin, &onatra), CreateUserInput{
				Email: "op@onatra.cd", FullName: "Outro", Password: "s3cret!!", Role: entities.RoleOperator,
			})
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})

		It("superadmin sem organização na entrada não cria equipe", func() {
			_, err := service.CreateUser(ctx, actorFor(entities.RoleSuperAdmin, nil), CreateUserInput{
				Email: "new@onatra.cd", FullName: "Novo Agente", Password: "s3cret!!", Role: entities.RoleOperator,
			})
			var domainErr *domainerrors.DomainError
			Expect(errors.As(err, &domainErr)).To(BeTrue())
			Expect(domainErr.Type).To(Equal(domainerrors.ProblemTypeValidation))
		})
	})

	Describe("GetUser e ListUsers", func() {
		It("escondem usuários de outra organização", func() {
			_, err := service.GetUser(ctx, &onatra, "admin-2")
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))

			user, err := service.GetUser(ctx, nil, "admin-2")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.FullName).To(Equal("Ilunga Tshibanda"))
		})

		It("o escopo sobrescreve o filtro de organização", func() {
			list, err := service.ListUsers(ctx, &onatra, repositories.UserFilters{OrganizationID: &sctp})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal("op-1"))
		})
	})

	Describe("ChangeRole", func() {
		It("promove operador a admin dentro da transação", func() {
			user, err := service.ChangeRole(ctx, actorFor(entities.RoleAdmin, &onatra), "op-1", "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleAdmin))
			Expect(users.users["op-1"].Role).To(Equal(entities.RoleAdmin))
			Expect(uow.calls).To(Equal(1))
		})

		It("não promove acima do próprio nível", func() {
			_, err := service.ChangeRole(ctx, actorFor(entities.RoleOperator, &onatra), "op-1", entities.RoleAdmin)
			Expect(err).To(MatchError(domainerrors.ErrRoleAboveCaller))
		})

		It("usuário de outra organização não é encontrado", func() {
			_, err := service.ChangeRole(ctx, actorFor(entities.RoleAdmin, &onatra), "admin-2", entities.RoleOperator)
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})

		It("superadmin promove passageiro e a organização precisa existir", func() {
			_, err := service.ChangeRole(ctx, actorFor(entities.RoleSuperAdmin, nil), "pax-1", entities.RoleOperator)
			var domainErr *domainerrors.DomainError
			Expect(errors.As(err, &domainErr)).To(BeTrue())

			user, err := service.ChangeRole(ctx, actorFor(entities.RoleAdmin, &onatra), "pax-1", entities.RoleOperator)
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
			Expect(user).To(BeNil())
		})
	})
})

var _ = Describe("AuthService", func() {
	var (
		ctx     context.Context
		users   *memUserRepo
		service *AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = newMemUserRepo()
		service = NewAuthService(users, entities.DefaultRoleRegistry(), stubIssuer{}, plainHasher{}, logging.NewNopLogger())
	})

	It("cadastra passageiro com papel user e devolve token", func() {
		result, err := service.Register(ctx, RegisterInput{Email: "Pax@Mail.cd", FullName: "Nsimba Lukusa", Password: "s3cret!!"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.User.Role).To(Equal(entities.RoleUser))
		Expect(result.User.OrganizationID).To(BeNil())
		Expect(result.Token).To(Equal("token-for-" + result.User.ID))
	})

	It("recusa email inválido e email repetido", func() {
		_, err := service.Register(ctx, RegisterInput{Email: "not-an-email", FullName: "Nsimba", Password: "s3cret!!"})
		Expect(err).To(MatchError(domainerrors.ErrInvalidEmail))

		_, err = service.Register(ctx, RegisterInput{Email: "pax@mail.cd", FullName: "Nsimba", Password: "s3cret!!"})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Register(ctx, RegisterInput{Email: "PAX@mail.cd", FullName: "Nsimba", Password: "s3cret!!"})
		Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
	})

	It("login com senha errada e email inexistente dão o mesmo erro", func() {
		_, err := service.Register(ctx, RegisterInput{Email: "pax@mail.cd", FullName: "Nsimba", Password: "s3cret!!"})
		Expect(err).NotTo(HaveOccurred())

		_, err = service.Login(ctx, "pax@mail.cd", "wrong")
		Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		_, err = service.Login(ctx, "ghost@mail.cd", "s3cret!!")
		Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))

		result, err := service.Login(ctx, " PAX@mail.cd ", "s3cret!!")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Token).NotTo(BeEmpty())
	})

	It("Me ignora usuários removidos", func() {
		result, _ := service.Register(ctx, RegisterInput{Email: "pax@mail.cd", FullName: "Nsimba", Password: "s3cret!!"})
		users.users[result.User.ID].SoftDelete()

		_, err := service.Me(ctx, result.User.ID)
		Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
	})
})
