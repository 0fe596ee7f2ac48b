package dto

import (
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
)

// CreateBookingRequest representa uma reserva
type CreateBookingRequest struct {
	TripID         string `json:"trip_id" binding:"required,uuid"`
	PassengerCount int    `json:"passenger_count" binding:"required,gte=1,max=50"`
}

// BookingResponse representa uma reserva
type BookingResponse struct {
	ID             string        `json:"id"`
	Reference      string        `json:"reference"`
	UserID         string        `json:"user_id"`
	TripID         string        `json:"trip_id"`
	PassengerCount int           `json:"passenger_count"`
	TotalAmount    float64       `json:"total_amount"`
	Status         string        `json:"status"`
	Trip           *TripResponse `json:"trip,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ToBookingResponse converte uma reserva
func ToBookingResponse(b *entities.Booking) BookingResponse {
	response := BookingResponse{
		ID:             b.ID,
		Reference:      b.Reference,
		UserID:         b.UserID,
		TripID:         b.TripID,
		PassengerCount: b.PassengerCount,
		TotalAmount:    b.TotalAmount,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
	}
	if b.Trip != nil {
		trip := ToTripResponse(b.Trip)
		response.Trip = &trip
	}
	return response
}

// ToBookingResponses converte uma lista de reservas
func ToBookingResponses(bookings []*entities.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = ToBookingResponse(b)
	}
	return responses
}

// InitiatePaymentRequest representa o início de um pagamento
type InitiatePaymentRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Method    string `json:"method" binding:"required,oneof=mobile_money card cash"`
}

// UpdatePaymentStatusRequest representa o retorno do provedor de pagamento
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed failed refunded"`
}

// PaymentResponse representa um pagamento
type PaymentResponse struct {
	ID                string    `json:"id"`
	BookingID         string    `json:"booking_id"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	Method            string    `json:"method"`
	Status            string    `json:"status"`
	ProviderReference string    `json:"provider_reference"`
	CreatedAt         time.Time `json:"created_at"`
}

// ToPaymentResponse converte um pagamento
func ToPaymentResponse(p *entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		BookingID:         p.BookingID,
		Amount:            p.Amount,
		Currency:          p.Currency,
		Method:            string(p.Method),
		Status:            string(p.Status),
		ProviderReference: p.ProviderReference,
		CreatedAt:         p.CreatedAt,
	}
}
