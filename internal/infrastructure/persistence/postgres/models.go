package postgres

import "time"

// OrganizationModel é o model GORM para organizações
type OrganizationModel struct {
	ID           string `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string `gorm:"type:varchar(255);not null"`
	Code         string `gorm:"type:varchar(50);uniqueIndex;not null"`
	ContactEmail string `gorm:"type:varchar(255)"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (OrganizationModel) TableName() string {
	return "organizations"
}

// UserModel é o model GORM para usuários
type UserModel struct {
	ID             string     `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName       string     `gorm:"type:varchar(255);not null"`
	Phone          *string    `gorm:"type:varchar(32)"`
	PasswordHash   string     `gorm:"type:varchar(255);not null"`
	Role           string     `gorm:"type:varchar(50);not null;index"`
	OrganizationID *string    `gorm:"type:uuid;index"`
	CreatedAt      time.Time  `gorm:"index"`
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"` // Soft delete
}

func (UserModel) TableName() string {
	return "users"
}

// TransportLineModel é o model GORM para linhas
type TransportLineModel struct {
	ID             string  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID string  `gorm:"type:uuid;not null;index"`
	Name           string  `gorm:"type:varchar(255);not null"`
	DepartureCity  string  `gorm:"type:varchar(120);not null;index:idx_lines_cities"`
	ArrivalCity    string  `gorm:"type:varchar(120);not null;index:idx_lines_cities"`
	TransportType  string  `gorm:"type:varchar(20);not null"`
	DistanceKm     float64 `gorm:"type:numeric(10,2)"`
	BasePrice      float64 `gorm:"type:numeric(12,2);not null"`
	Active         bool    `gorm:"not null;default:true"`
	CreatedAt      time.Time
}

func (TransportLineModel) TableName() string {
	return "transport_lines"
}

// VehicleModel é o model GORM para a frota
type VehicleModel struct {
	ID             string `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID string `gorm:"type:uuid;not null;index"`
	Registration   string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Model          string `gorm:"type:varchar(120)"`
	TransportType  string `gorm:"type:varchar(20);not null"`
	Capacity       int    `gorm:"not null"`
	Status         string `gorm:"type:varchar(20);not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (VehicleModel) TableName() string {
	return "vehicles"
}

// TripModel é o model GORM para viagens
type TripModel struct {
	ID             string              `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID string              `gorm:"type:uuid;not null;index"`
	LineID         string              `gorm:"type:uuid;not null;index"`
	VehicleID      *string             `gorm:"type:uuid"`
	DepartureTime  time.Time           `gorm:"not null;index"`
	ArrivalTime    time.Time           `gorm:"not null"`
	Price          float64             `gorm:"type:numeric(12,2);not null"`
	TotalSeats     int                 `gorm:"not null"`
	AvailableSeats int                 `gorm:"not null"`
	Status         string              `gorm:"type:varchar(20);not null;index"`
	Line           *TransportLineModel `gorm:"foreignKey:LineID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (TripModel) TableName() string {
	return "trips"
}

// BookingModel é o model GORM para reservas
type BookingModel struct {
	ID             string     `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Reference      string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	UserID         string     `gorm:"type:uuid;not null;index"`
	TripID         string     `gorm:"type:uuid;not null;index"`
	PassengerCount int        `gorm:"not null"`
	TotalAmount    float64    `gorm:"type:numeric(12,2);not null"`
	Status         string     `gorm:"type:varchar(20);not null;index"`
	Trip           *TripModel `gorm:"foreignKey:TripID"`
	CreatedAt      time.Time  `gorm:"index"`
	UpdatedAt      time.Time
}

func (BookingModel) TableName() string {
	return "bookings"
}

// PaymentModel é o model GORM para pagamentos
type PaymentModel struct {
	ID                string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BookingID         string    `gorm:"type:uuid;not null;index"`
	Amount            float64   `gorm:"type:numeric(12,2);not null"`
	Currency          string    `gorm:"type:varchar(3);not null"`
	Method            string    `gorm:"type:varchar(20);not null"`
	Status            string    `gorm:"type:varchar(20);not null;index"`
	ProviderReference string    `gorm:"type:varchar(64);index"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}

// AllModels lista os models para AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&OrganizationModel{},
		&UserModel{},
		&TransportLineModel{},
		&VehicleModel{},
		&TripModel{},
		&BookingModel{},
		&PaymentModel{},
	}
}
