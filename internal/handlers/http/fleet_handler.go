package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

// FleetHandler lida com linhas e veículos da organização
type FleetHandler struct {
	fleetService *services.FleetService
}

// NewFleetHandler cria um novo FleetHandler
func NewFleetHandler(fleetService *services.FleetService) *FleetHandler {
	return &FleetHandler{fleetService: fleetService}
}

// ListLines lista as linhas
// @Summary      Linhas da organização
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.LineResponse
// @Router       /api/operator/lines [get]
func (h *FleetHandler) ListLines(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	lines, err := h.fleetService.ListLines(c.Request.Context(), orgScope)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLineResponses(lines))
}

// CreateLine cria uma linha
// @Summary      Nova linha
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateLineRequest  true  "Linha"
// @Success      201   {object}  dto.LineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operator/lines [post]
func (h *FleetHandler) CreateLine(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	var req dto.CreateLineRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.fleetService.CreateLine(c.Request.Context(), orgScope, services.CreateLineInput{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		DepartureCity:  req.DepartureCity,
		ArrivalCity:    req.ArrivalCity,
		TransportType:  entities.TransportType(req.TransportType),
		DistanceKm:     req.DistanceKm,
		BasePrice:      req.BasePrice,
	})
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLineResponse(line))
}

// ListVehicles lista os veículos, opcionalmente por estado
// @Summary      Veículos da organização
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "active, maintenance ou retired"
// @Success      200  {array}  dto.VehicleResponse
// @Router       /api/operator/vehicles [get]
func (h *FleetHandler) ListVehicles(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	var status *entities.VehicleStatus
	if raw := c.Query("status"); raw != "" {
		s := entities.VehicleStatus(raw)
		status = &s
	}

	vehicles, err := h.fleetService.ListVehicles(c.Request.Context(), orgScope, status)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponses(vehicles))
}

// CreateVehicle cadastra um veículo
// @Summary      Novo veículo
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateVehicleRequest  true  "Veículo"
// @Success      201   {object}  dto.VehicleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operator/vehicles [post]
func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	var req dto.CreateVehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	vehicle, err := h.fleetService.CreateVehicle(c.Request.Context(), orgScope, services.CreateVehicleInput{
		OrganizationID: req.OrganizationID,
		Registration:   req.Registration,
		Model:          req.Model,
		TransportType:  entities.TransportType(req.TransportType),
		Capacity:       req.Capacity,
	})
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVehicleResponse(vehicle))
}

// UpdateVehicle altera modelo, capacidade ou estado
// @Summary      Atualizar veículo
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Vehicle ID"
// @Param        body  body      dto.UpdateVehicleRequest  true  "Campos alterados"
// @Success      200   {object}  dto.VehicleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operator/vehicles/{id} [patch]
func (h *FleetHandler) UpdateVehicle(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", errors.ErrVehicleNotFound)
	if !ok {
		return
	}

	var req dto.UpdateVehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.UpdateVehicleInput{Model: req.Model, Capacity: req.Capacity}
	if req.Status != nil {
		s := entities.VehicleStatus(*req.Status)
		input.Status = &s
	}

	vehicle, err := h.fleetService.UpdateVehicle(c.Request.Context(), orgScope, id, input)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}
