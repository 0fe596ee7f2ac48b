package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

const (
	defaultBookingsLimit = 50
	maxBookingsLimit     = 200
)

// BookingHandler lida com reservas e pagamentos
type BookingHandler struct {
	bookingService *services.BookingService
	paymentService *services.PaymentService
}

// NewBookingHandler cria um novo BookingHandler
func NewBookingHandler(bookingService *services.BookingService, paymentService *services.PaymentService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, paymentService: paymentService}
}

// Create reserva assentos numa viagem
// @Summary      Nova reserva
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateBookingRequest  true  "Reserva"
// @Success      201   {object}  dto.BookingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), caller, services.CreateBookingInput{
		TripID:         req.TripID,
		PassengerCount: req.PassengerCount,
	})
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// ListMine lista as reservas do passageiro
// @Summary      Minhas reservas
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.BookingResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListMine(c.Request.Context(), caller)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

// Get retorna uma reserva do passageiro ou da organização do operador
// @Summary      Detalhe da reserva
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  dto.BookingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", errors.ErrBookingNotFound)
	if !ok {
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), caller, id)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// Cancel cancela uma reserva
// @Summary      Cancelar reserva
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  dto.BookingResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", errors.ErrBookingNotFound)
	if !ok {
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), caller, id)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// ListForOrganization lista as reservas mais recentes da organização
// @Summary      Reservas da organização
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Máximo de reservas (padrão 50)"
// @Success      200  {array}  dto.BookingResponse
// @Router       /api/operator/bookings [get]
func (h *BookingHandler) ListForOrganization(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	limit := defaultBookingsLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxBookingsLimit)
		}
	}

	bookings, err := h.bookingService.ListForOrganization(c.Request.Context(), orgScope, limit)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

// InitiatePayment inicia o pagamento de uma reserva
// @Summary      Iniciar pagamento
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.InitiatePaymentRequest  true  "Pagamento"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *BookingHandler) InitiatePayment(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	var req dto.InitiatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.Initiate(c.Request.Context(), caller, services.InitiatePaymentInput{
		BookingID: req.BookingID,
		Method:    entities.PaymentMethod(req.Method),
	})
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// GetPayment retorna um pagamento
// @Summary      Detalhe do pagamento
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *BookingHandler) GetPayment(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", errors.ErrPaymentNotFound)
	if !ok {
		return
	}

	payment, err := h.paymentService.Get(c.Request.Context(), caller, id)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// UpdatePaymentStatus registra o resultado do pagamento
// @Summary      Atualizar pagamento
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                          true  "Payment ID"
// @Param        body  body      dto.UpdatePaymentStatusRequest  true  "Novo estado"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operator/payments/{id}/status [patch]
func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", errors.ErrPaymentNotFound)
	if !ok {
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.UpdateStatus(c.Request.Context(), orgScope, id, entities.PaymentStatus(req.Status))
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
