package entities

import "time"

// BookingStatus é o estado de uma reserva
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking é a reserva de assentos de um passageiro em uma viagem
type Booking struct {
	ID             string
	Reference      string
	UserID         string
	TripID         string
	PassengerCount int
	TotalAmount    float64
	Status         BookingStatus
	Trip           *Trip
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCancellable verifica se a reserva ainda pode ser cancelada
func (b *Booking) IsCancellable() bool {
	return b.Status != BookingCancelled
}

// PaymentMethod é o meio de pagamento
type PaymentMethod string

const (
	PaymentMobileMoney PaymentMethod = "mobile_money"
	PaymentCard        PaymentMethod = "card"
	PaymentCash        PaymentMethod = "cash"
)

// IsValid verifica se o meio é conhecido
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMobileMoney, PaymentCard, PaymentCash:
		return true
	}
	return false
}

// PaymentStatus é o estado de um pagamento
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentCompleted, PaymentFailed},
	PaymentCompleted: {PaymentRefunded},
}

// CanTransitionTo verifica se a mudança de estado é permitida
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DefaultCurrency é o franco congolês
const DefaultCurrency = "CDF"

// Payment é um pagamento associado a uma reserva
type Payment struct {
	ID                string
	BookingID         string
	Amount            float64
	Currency          string
	Method            PaymentMethod
	Status            PaymentStatus
	ProviderReference string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
