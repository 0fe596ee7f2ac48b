package ports

import (
	"context"
	"time"
)

// Tipos de evento publicados para o painel ao vivo
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventPaymentUpdated   = "payment.updated"
	EventTripStatus       = "trip.status"
)

// Event é uma notificação de negócio destinada aos painéis de uma organização
type Event struct {
	Type           string    `json:"type"`
	OrganizationID string    `json:"organization_id"`
	Data           any       `json:"data"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EventPublisher entrega eventos para os assinantes interessados
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
