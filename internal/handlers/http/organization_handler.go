package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

// OrganizationHandler lida com os transportadores
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler cria um novo OrganizationHandler
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// Current retorna a organização do administrador.
// Com escopo global o id vem de ?id=.
// @Summary      Organização do administrador
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  false  "Organization ID (apenas escopo global)"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/organization [get]
func (h *OrganizationHandler) Current(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	var id string
	if orgScope != nil {
		id = *orgScope
	} else {
		id = c.Query("id")
		if id == "" {
			dto.AbortWithError(c, errors.ErrOrganizationRequired)
			return
		}
		if _, err := uuid.Parse(id); err != nil {
			dto.AbortWithError(c, errors.ErrOrganizationNotFound)
			return
		}
	}

	org, err := h.orgService.Get(c.Request.Context(), id)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// List lista todas as organizações
// @Summary      Organizações
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.OrganizationResponse
// @Router       /api/superadmin/organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.orgService.List(c.Request.Context())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponses(orgs))
}

// Create cadastra um transportador
// @Summary      Nova organização
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateOrganizationRequest  true  "Organização"
// @Success      201   {object}  dto.OrganizationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/superadmin/organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), services.CreateOrganizationInput{
		Name:         req.Name,
		Code:         req.Code,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}
