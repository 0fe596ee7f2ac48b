package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

const searchLimit = 50

// TripHandler atende a busca pública e a programação de viagens pelo operador
type TripHandler struct {
	tripService *services.TripService
}

// NewTripHandler cria um novo TripHandler
func NewTripHandler(tripService *services.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// Search busca viagens reserváveis
// @Summary      Busca de viagens
// @Tags         trips
// @Produce      json
// @Param        from            query  string  false  "Cidade de partida"
// @Param        to              query  string  false  "Cidade de chegada"
// @Param        date            query  string  false  "Data (YYYY-MM-DD)"
// @Param        transport_type  query  string  false  "bus, boat, train ou plane"
// @Success      200  {array}   dto.TripResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/trips/search [get]
func (h *TripHandler) Search(c *gin.Context) {
	var query dto.TripSearchQuery
	if !bindQuery(c, &query) {
		return
	}

	search := repositories.TripSearch{
		DepartureCity: strings.TrimSpace(query.From),
		ArrivalCity:   strings.TrimSpace(query.To),
		MinSeats:      query.Passengers,
		Limit:         searchLimit,
	}
	if query.Date != "" {
		// o binding já validou o formato
		date, _ := time.Parse(time.DateOnly, query.Date)
		search.Date = &date
	}
	if query.TransportType != "" {
		tt := entities.TransportType(query.TransportType)
		search.TransportType = &tt
	}

	trips, err := h.tripService.Search(c.Request.Context(), search)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponses(trips))
}

// Get retorna uma viagem (rota pública)
// @Summary      Detalhe da viagem
// @Tags         trips
// @Produce      json
// @Param        id   path      string  true  "Trip ID"
// @Success      200  {object}  dto.TripResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trips/{id} [get]
func (h *TripHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", errors.ErrTripNotFound)
	if !ok {
		return
	}

	trip, err := h.tripService.Get(c.Request.Context(), nil, id)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// List lista as viagens da organização
// @Summary      Viagens da organização
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filtro de estado"
// @Success      200  {array}   dto.TripResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/operator/trips [get]
func (h *TripHandler) List(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	var status *entities.TripStatus
	if raw := c.Query("status"); raw != "" {
		s := entities.TripStatus(raw)
		status = &s
	}

	trips, err := h.tripService.List(c.Request.Context(), orgScope, status)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponses(trips))
}

// Schedule programa uma nova viagem
// @Summary      Programar viagem
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ScheduleTripRequest  true  "Partida"
// @Success      201   {object}  dto.TripResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operator/trips [post]
func (h *TripHandler) Schedule(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	var req dto.ScheduleTripRequest
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.tripService.Schedule(c.Request.Context(), orgScope, services.ScheduleTripInput{
		LineID:        req.LineID,
		VehicleID:     req.VehicleID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		TotalSeats:    req.TotalSeats,
	})
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

// ChangeStatus muda o estado de uma viagem
// @Summary      Mudar estado da viagem
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Trip ID"
// @Param        body  body      dto.ChangeTripStatusRequest  true  "Novo estado"
// @Success      200   {object}  dto.TripResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operator/trips/{id}/status [patch]
func (h *TripHandler) ChangeStatus(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", errors.ErrTripNotFound)
	if !ok {
		return
	}

	var req dto.ChangeTripStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.tripService.ChangeStatus(c.Request.Context(), orgScope, id, entities.TripStatus(req.Status))
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}
