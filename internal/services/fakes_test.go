package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
)

type fakeProfileStore struct {
	org   string
	err   error
	calls int
}

func (f *fakeProfileStore) OrganizationIDByEmail(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.org, f.err
}

// inlineUoW executa fn direto; falhas não desfazem nada, os testes verificam só o fluxo
type inlineUoW struct{ calls int }

func (u *inlineUoW) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	u.calls++
	return fn(ctx)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e ports.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

var idSeq int

func nextID(prefix string) string {
	idSeq++
	return fmt.Sprintf("%s-%d", prefix, idSeq)
}

type memTripRepo struct {
	trips map[string]*entities.Trip
}

func newMemTripRepo(trips ...*entities.Trip) *memTripRepo {
	r := &memTripRepo{trips: map[string]*entities.Trip{}}
	for _, t := range trips {
		r.trips[t.ID] = t
	}
	return r
}

func (r *memTripRepo) Create(_ context.Context, t *entities.Trip) error {
	t.ID = nextID("trip")
	cp := *t
	r.trips[t.ID] = &cp
	return nil
}

func (r *memTripRepo) FindByID(_ context.Context, scope *string, id string) (*entities.Trip, error) {
	t, ok := r.trips[id]
	if !ok || (scope != nil && t.OrganizationID != *scope) {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTripRepo) Search(context.Context, repositories.TripSearch) ([]*entities.Trip, error) {
	return nil, nil
}

func (r *memTripRepo) List(_ context.Context, scope *string, _ *entities.TripStatus) ([]*entities.Trip, error) {
	var out []*entities.Trip
	for _, t := range r.trips {
		if scope == nil || t.OrganizationID == *scope {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTripRepo) UpdateStatus(_ context.Context, id string, status entities.TripStatus) error {
	r.trips[id].Status = status
	return nil
}

func (r *memTripRepo) ReserveSeats(_ context.Context, id string, seats int) (bool, error) {
	t := r.trips[id]
	if t.AvailableSeats < seats {
		return false, nil
	}
	t.AvailableSeats -= seats
	return true, nil
}

func (r *memTripRepo) ReleaseSeats(_ context.Context, id string, seats int) error {
	t := r.trips[id]
	t.AvailableSeats = min(t.TotalSeats, t.AvailableSeats+seats)
	return nil
}

type memBookingRepo struct {
	bookings map[string]*entities.Booking
	trips    *memTripRepo
}

func (r *memBookingRepo) Create(_ context.Context, b *entities.Booking) error {
	b.ID = nextID("booking")
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) FindByID(ctx context.Context, id string) (*entities.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	cp.Trip, _ = r.trips.FindByID(ctx, nil, b.TripID)
	return &cp, nil
}

func (r *memBookingRepo) ListByUser(_ context.Context, userID string) ([]*entities.Booking, error) {
	var out []*entities.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByOrganization(_ context.Context, scope *string, _ int) ([]*entities.Booking, error) {
	var out []*entities.Booking
	for _, b := range r.bookings {
		if scope == nil || r.trips.trips[b.TripID].OrganizationID == *scope {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id string, status entities.BookingStatus) error {
	r.bookings[id].Status = status
	return nil
}

func (r *memBookingRepo) MarkCancelled(_ context.Context, id string) (bool, error) {
	b, ok := r.bookings[id]
	if !ok || b.Status == entities.BookingCancelled {
		return false, nil
	}
	b.Status = entities.BookingCancelled
	return true, nil
}

// staleBookingRepo devolve o status lido antes de outra transação confirmar o cancelamento
type staleBookingRepo struct {
	*memBookingRepo
	status entities.BookingStatus
}

func (r *staleBookingRepo) FindByID(ctx context.Context, id string) (*entities.Booking, error) {
	b, err := r.memBookingRepo.FindByID(ctx, id)
	if b != nil {
		b.Status = r.status
	}
	return b, err
}

type memPaymentRepo struct {
	payments map[string]*entities.Payment
}

func (r *memPaymentRepo) Create(_ context.Context, p *entities.Payment) error {
	p.ID = nextID("payment")
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) FindByID(_ context.Context, id string) (*entities.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) FindPendingByBooking(_ context.Context, bookingID string) (*entities.Payment, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID && p.Status == entities.PaymentPending {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPaymentRepo) UpdateStatus(_ context.Context, id string, status entities.PaymentStatus) error {
	r.payments[id].Status = status
	return nil
}

type memUserRepo struct {
	users map[string]*entities.User
}

func newMemUserRepo(users ...*entities.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entities.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *entities.User) error {
	u.ID = nextID("user")
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email.String() == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entities.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(_ context.Context, f repositories.UserFilters) ([]*entities.User, error) {
	var out []*entities.User
	for _, u := range r.users {
		if f.OrganizationID != nil && (u.OrganizationID == nil || *u.OrganizationID != *f.OrganizationID) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hash:" + pw, nil }

func (plainHasher) Compare(hash, pw string) (bool, error) { return hash == "hash:"+pw, nil }

type stubIssuer struct{}

func (stubIssuer) Issue(u *entities.User) (string, time.Time, error) {
	return "token-for-" + u.ID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

type stubReportRepo struct {
	bucketing valueobjects.Bucketing
	scope     *string
	limit     int
	err       error
}

func (r *stubReportRepo) Revenue(_ context.Context, scope *string, b valueobjects.Bucketing) ([]repositories.RevenueBucket, error) {
	r.scope, r.bucketing = scope, b
	if r.err != nil {
		return nil, r.err
	}
	return []repositories.RevenueBucket{{Period: time.Now()}}, nil
}

func (r *stubReportRepo) Performance(_ context.Context, scope *string, limit int) ([]repositories.LinePerformance, error) {
	r.scope, r.limit = scope, limit
	return nil, r.err
}

func (r *stubReportRepo) Dashboard(_ context.Context, scope *string, _ time.Time) (*repositories.DashboardSummary, error) {
	r.scope = scope
	if r.err != nil {
		return nil, r.err
	}
	return &repositories.DashboardSummary{}, nil
}

type memLineRepo struct {
	lines map[string]*entities.TransportLine
}

func (r *memLineRepo) Create(_ context.Context, l *entities.TransportLine) error {
	l.ID = nextID("line")
	cp := *l
	r.lines[l.ID] = &cp
	return nil
}

func (r *memLineRepo) FindByID(_ context.Context, scope *string, id string) (*entities.TransportLine, error) {
	l, ok := r.lines[id]
	if !ok || (scope != nil && l.OrganizationID != *scope) {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLineRepo) List(_ context.Context, scope *string) ([]*entities.TransportLine, error) {
	var out []*entities.TransportLine
	for _, l := range r.lines {
		if scope == nil || l.OrganizationID == *scope {
			out = append(out, l)
		}
	}
	return out, nil
}

type memVehicleRepo struct {
	vehicles map[string]*entities.Vehicle
}

func (r *memVehicleRepo) Create(_ context.Context, v *entities.Vehicle) error {
	v.ID = nextID("vehicle")
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *memVehicleRepo) FindByID(_ context.Context, scope *string, id string) (*entities.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok || (scope != nil && v.OrganizationID != *scope) {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *memVehicleRepo) FindByRegistration(_ context.Context, registration string) (*entities.Vehicle, error) {
	for _, v := range r.vehicles {
		if v.Registration == registration {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memVehicleRepo) Update(_ context.Context, v *entities.Vehicle) error {
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *memVehicleRepo) List(_ context.Context, scope *string, _ *entities.VehicleStatus) ([]*entities.Vehicle, error) {
	var out []*entities.Vehicle
	for _, v := range r.vehicles {
		if scope == nil || v.OrganizationID == *scope {
			out = append(out, v)
		}
	}
	return out, nil
}
