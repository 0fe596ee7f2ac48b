package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
)

// BookingRepository implementa repositories.BookingRepository
type BookingRepository struct {
	conn
}

// NewBookingRepository cria um novo BookingRepository
func NewBookingRepository(db *gorm.DB) repositories.BookingRepository {
	return &BookingRepository{conn{db: db}}
}

func (r *BookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	model := &BookingModel{
		Reference:      booking.Reference,
		UserID:         booking.UserID,
		TripID:         booking.TripID,
		PassengerCount: booking.PassengerCount,
		TotalAmount:    booking.TotalAmount,
		Status:         string(booking.Status),
	}
	if err := r.getDB(ctx).Omit("Trip").Create(model).Error; err != nil {
		return err
	}
	booking.ID = model.ID
	booking.CreatedAt = model.CreatedAt
	booking.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*entities.Booking, error) {
	var model BookingModel
	if err := r.getDB(ctx).Preload("Trip.Line").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return bookingToEntity(&model), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Booking, error) {
	var models []*BookingModel
	err := r.getDB(ctx).Preload("Trip.Line").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return bookingsToEntities(models), nil
}

func (r *BookingRepository) ListByOrganization(ctx context.Context, scope *string, limit int) ([]*entities.Booking, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var models []*BookingModel
	query := r.getDB(ctx).Preload("Trip.Line").
		Joins("JOIN trips t ON t.id = bookings.trip_id")
	query = scoped(query, "t.organization_id", scope)

	if err := query.Order("bookings.created_at DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return bookingsToEntities(models), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	return r.getDB(ctx).Model(&BookingModel{}).Where("id = ?", id).Update("status", string(status)).Error
}

// MarkCancelled usa o próprio UPDATE condicional como trava: de dois cancelamentos
// concorrentes só um afeta a linha.
func (r *BookingRepository) MarkCancelled(ctx context.Context, id string) (bool, error) {
	cancelled := string(entities.BookingCancelled)
	result := r.getDB(ctx).Model(&BookingModel{}).
		Where("id = ? AND status <> ?", id, cancelled).
		Update("status", cancelled)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func bookingToEntity(m *BookingModel) *entities.Booking {
	return &entities.Booking{
		ID:             m.ID,
		Reference:      m.Reference,
		UserID:         m.UserID,
		TripID:         m.TripID,
		PassengerCount: m.PassengerCount,
		TotalAmount:    m.TotalAmount,
		Status:         entities.BookingStatus(m.Status),
		Trip:           tripToEntity(m.Trip),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func bookingsToEntities(models []*BookingModel) []*entities.Booking {
	bookings := make([]*entities.Booking, len(models))
	for i, m := range models {
		bookings[i] = bookingToEntity(m)
	}
	return bookings
}

// PaymentRepository implementa repositories.PaymentRepository
type PaymentRepository struct {
	conn
}

// NewPaymentRepository cria um novo PaymentRepository
func NewPaymentRepository(db *gorm.DB) repositories.PaymentRepository {
	return &PaymentRepository{conn{db: db}}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	model := &PaymentModel{
		BookingID:         payment.BookingID,
		Amount:            payment.Amount,
		Currency:          payment.Currency,
		Method:            string(payment.Method),
		Status:            string(payment.Status),
		ProviderReference: payment.ProviderReference,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	payment.ID = model.ID
	payment.CreatedAt = model.CreatedAt
	payment.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entities.Payment, error) {
	return r.findOne(r.getDB(ctx).Where("id = ?", id))
}

func (r *PaymentRepository) FindPendingByBooking(ctx context.Context, bookingID string) (*entities.Payment, error) {
	return r.findOne(r.getDB(ctx).Where("booking_id = ? AND status = ?", bookingID, string(entities.PaymentPending)))
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status entities.PaymentStatus) error {
	return r.getDB(ctx).Model(&PaymentModel{}).Where("id = ?", id).Update("status", string(status)).Error
}

func (r *PaymentRepository) findOne(query *gorm.DB) (*entities.Payment, error) {
	var m PaymentModel
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.Payment{
		ID:                m.ID,
		BookingID:         m.BookingID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Method:            entities.PaymentMethod(m.Method),
		Status:            entities.PaymentStatus(m.Status),
		ProviderReference: m.ProviderReference,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}, nil
}
