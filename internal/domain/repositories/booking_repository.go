package repositories

import (
	"context"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
)

// BookingRepository define a persistência de reservas
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	FindByID(ctx context.Context, id string) (*entities.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Booking, error)
	// ListByOrganization lista reservas das viagens da organização (scope nil = todas)
	ListByOrganization(ctx context.Context, scope *string, limit int) ([]*entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error
	// MarkCancelled cancela só se a reserva ainda não estiver cancelada.
	// Retorna false quando outra transação cancelou antes.
	MarkCancelled(ctx context.Context, id string) (bool, error)
}

// PaymentRepository define a persistência de pagamentos
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	FindByID(ctx context.Context, id string) (*entities.Payment, error)
	FindPendingByBooking(ctx context.Context, bookingID string) (*entities.Payment, error)
	UpdateStatus(ctx context.Context, id string, status entities.PaymentStatus) error
}
