package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

// UserHandler lida com a administração de usuários
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser cria um usuário da equipe
// @Summary      Novo usuário da equipe
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateUserRequest  true  "Usuário"
// @Success      201   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := authorization(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), actor, services.CreateUserInput{
		Email:          req.Email,
		FullName:       req.FullName,
		Phone:          req.Phone,
		Password:       req.Password,
		Role:           entities.Role(req.Role),
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// GetUser busca um usuário por ID
// @Summary      Detalhe do usuário
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", errors.ErrUserNotFound)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), orgScope, id)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers lista usuários do escopo com filtros opcionais
// @Summary      Usuários da organização
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role       query  string  false  "Filtro de papel"
// @Param        page       query  int     false  "Página (começa em 1)"
// @Param        page_size  query  int     false  "Itens por página (máx 100)"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	var query dto.ListUsersQuery
	if !bindQuery(c, &query) {
		return
	}

	filters := repositories.UserFilters{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Role != "" {
		role := entities.NormalizeRole(query.Role)
		filters.Role = &role
	}

	users, err := h.userService.ListUsers(c.Request.Context(), orgScope, filters)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// ChangeRole troca o papel de um usuário do escopo
// @Summary      Trocar papel
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User ID"
// @Param        body  body      dto.ChangeRoleRequest  true  "Novo papel"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actor, ok := authorization(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", errors.ErrUserNotFound)
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), actor, id, entities.Role(req.Role))
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
