package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/customer"
	unitRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/unit"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
	"github.com/m04kA/RIH-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	conflict *domain.Booking
	lastSeq  int
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	clone := *b
	clone.ID = f.nextID
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	f.created = &clone
	return &clone, nil
}

func (f *fakeBookingRepo) FindConflict(_ context.Context, _ domain.ConflictFilter) (*domain.Booking, error) {
	if f.conflict == nil {
		return nil, bookingRepo.ErrNoConflict
	}
	return f.conflict, nil
}

func (f *fakeBookingRepo) LastReferenceSeq(_ context.Context, _ int) (int, error) {
	return f.lastSeq, nil
}

type fakeUnitRepo struct {
	unit *domain.Unit
}

func (f *fakeUnitRepo) GetByID(_ context.Context, _ int64) (*domain.Unit, error) {
	if f.unit == nil {
		return nil, unitRepo.ErrUnitNotFound
	}
	return f.unit, nil
}

type fakeCustomerRepo struct {
	byPhone *domain.Customer
	created *domain.Customer
}

func (f *fakeCustomerRepo) FindByPhone(_ context.Context, _ string) (*domain.Customer, error) {
	if f.byPhone == nil {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return f.byPhone, nil
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	clone := *c
	clone.ID = 99
	f.created = &clone
	return &clone, nil
}

type fakeSettings struct {
	hours int
}

func (f *fakeSettings) TentativeExpiryHours(_ context.Context) int {
	if f.hours == 0 {
		return domain.DefaultTentativeExpiryHours
	}
	return f.hours
}

type auditRecord struct {
	entityType string
	entityID   int64
	action     domain.AuditAction
	userID     *int64
}

type fakeAuditRepo struct {
	records []auditRecord
}

func (f *fakeAuditRepo) Record(_ context.Context, entityType string, entityID int64, action domain.AuditAction, userID *int64, _, _ interface{}) error {
	f.records = append(f.records, auditRecord{entityType, entityID, action, userID})
	return nil
}

type publishedEvent struct {
	eventType notifier.EventType
	payload   interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) PublishAsync(eventType notifier.EventType, payload interface{}) {
	f.events = append(f.events, publishedEvent{eventType, payload})
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	t time.Time
}

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeMetrics struct {
	created int
}

func (f *fakeMetrics) BookingCreated() { f.created++ }

func newTestUseCase(bookings *fakeBookingRepo, units *fakeUnitRepo, customers *fakeCustomerRepo, audit *fakeAuditRepo, events *fakePublisher) *UseCase {
	uc := NewUseCase(bookings, units, customers, &fakeSettings{}, audit, events, passthroughTxManager{}, NopMetrics{}, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		UnitID:        1,
		CustomerName:  ptr.Ptr("Ahmed"),
		CustomerPhone: ptr.Ptr("0501234567"),
		StartDate:     date(2026, 3, 10),
		EndDate:       date(2026, 3, 13),
		PriceTotal:    1500,
		AmountPaid:    500,
		ActorID:       ptr.Ptr(int64(7)),
	}
}

func TestExecute_CreatesTentativeBooking(t *testing.T) {
	bookings := &fakeBookingRepo{lastSeq: 41, nextID: 100}
	units := &fakeUnitRepo{unit: &domain.Unit{ID: 1, Status: domain.UnitActive}}
	customers := &fakeCustomerRepo{}
	audit := &fakeAuditRepo{}
	events := &fakePublisher{}

	uc := newTestUseCase(bookings, units, customers, audit, events)

	req := validRequest()
	req.Status = string(domain.StatusTentative)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "RIH-2026-000042", resp.ReferenceNumber)
	assert.Equal(t, string(domain.StatusTentative), resp.Status)
	assert.Equal(t, string(domain.PaymentPartial), resp.PaymentStatus)

	// Окно жизни по умолчанию - 4 часа от текущего момента
	require.NotNil(t, resp.TentativeExpiryAt)
	assert.Equal(t, time.Date(2026, 2, 1, 16, 0, 0, 0, time.UTC), *resp.TentativeExpiryAt)

	// Телефон нормализован, клиент создан и привязан
	require.NotNil(t, customers.created)
	assert.Equal(t, "+966501234567", customers.created.PhoneNumber)
	assert.Equal(t, ptr.Ptr(int64(99)), resp.CustomerID)
	assert.False(t, resp.ExistingCustomerDetected)

	// Журнал и событие
	require.Len(t, audit.records, 1)
	assert.Equal(t, domain.AuditCreated, audit.records[0].action)
	assert.Equal(t, ptr.Ptr(int64(7)), audit.records[0].userID)

	require.Len(t, events.events, 1)
	assert.Equal(t, notifier.EventBookingCreated, events.events[0].eventType)
}

func TestExecute_CountsCreatedBookings(t *testing.T) {
	bookings := &fakeBookingRepo{nextID: 1}
	units := &fakeUnitRepo{unit: &domain.Unit{ID: 1, Status: domain.UnitActive}}
	uc := newTestUseCase(bookings, units, &fakeCustomerRepo{}, &fakeAuditRepo{}, &fakePublisher{})
	counter := &fakeMetrics{}
	uc.metrics = counter

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, counter.created)

	// Отклоненный запрос счетчик не трогает
	bad := validRequest()
	bad.EndDate = bad.StartDate.AddDate(0, 0, -1)
	_, err = uc.Execute(context.Background(), bad)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, counter.created)
}

func TestExecute_DefaultStatusIsConfirmed(t *testing.T) {
	bookings := &fakeBookingRepo{nextID: 1}
	units := &fakeUnitRepo{unit: &domain.Unit{ID: 1, Status: domain.UnitActive}}
	uc := newTestUseCase(bookings, units, &fakeCustomerRepo{}, &fakeAuditRepo{}, &fakePublisher{})

	// Без явного статуса бронь сразу подтвержденная, окна жизни нет
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Nil(t, resp.TentativeExpiryAt)
}

func TestExecute_ConfirmedHasNoExpiry(t *testing.T) {
	bookings := &fakeBookingRepo{nextID: 1}
	units := &fakeUnitRepo{unit: &domain.Unit{ID: 1, Status: domain.UnitActive}}
	uc := newTestUseCase(bookings, units, &fakeCustomerRepo{}, &fakeAuditRepo{}, &fakePublisher{})

	req := validRequest()
	req.Status = string(domain.StatusConfirmed)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Nil(t, resp.TentativeExpiryAt)
}

func TestExecute_ReusesExistingCustomerByPhone(t *testing.T) {
	bookings := &fakeBookingRepo{nextID: 1}
	units := &fakeUnitRepo{unit: &domain.Unit{ID: 1, Status: domain.UnitActive}}
	customers := &fakeCustomerRepo{byPhone: &domain.Customer{ID: 55, FullName: "Ahmed", PhoneNumber: "+966501234567"}}
	uc := newTestUseCase(bookings, units, customers, &fakeAuditRepo{}, &fakePublisher{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, ptr.Ptr(int64(55)), resp.CustomerID)
	assert.True(t, resp.ExistingCustomerDetected)
	assert.Nil(t, customers.created)
}

func TestExecute_DateConflict(t *testing.T) {
	bookings := &fakeBookingRepo{conflict: &domain.Booking{
		StartDate: date(2026, 3, 11),
		EndDate:   date(2026, 3, 14),
	}}
	units := &fakeUnitRepo{unit: &domain.Unit{ID: 1, Status: domain.UnitActive}}
	events := &fakePublisher{}
	uc := newTestUseCase(bookings, units, &fakeCustomerRepo{}, &fakeAuditRepo{}, events)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrDateConflict)
	assert.Contains(t, err.Error(), "this unit is already booked from 2026-03-11 to 2026-03-14")

	// Ничего не создано и событие не публикуется
	assert.Nil(t, bookings.created)
	assert.Empty(t, events.events)
}

func TestExecute_UnitChecks(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeUnitRepo{}, &fakeCustomerRepo{}, &fakeAuditRepo{}, &fakePublisher{})
		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrUnitNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		units := &fakeUnitRepo{unit: &domain.Unit{ID: 1, Status: domain.UnitInactive}}
		uc := newTestUseCase(&fakeBookingRepo{}, units, &fakeCustomerRepo{}, &fakeAuditRepo{}, &fakePublisher{})
		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrUnitInactive)
	})
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeUnitRepo{}, &fakeCustomerRepo{}, &fakeAuditRepo{}, &fakePublisher{})

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"end before start", func(r *Request) { r.StartDate, r.EndDate = r.EndDate, r.StartDate }},
		{"paid exceeds total", func(r *Request) { r.AmountPaid = r.PriceTotal + 1 }},
		{"negative paid", func(r *Request) { r.AmountPaid = -1 }},
		{"unknown status", func(r *Request) { r.Status = "checked_in" }},
		{"no customer at all", func(r *Request) { r.CustomerName, r.CustomerPhone = nil, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SingleDayBookingAllowed(t *testing.T) {
	bookings := &fakeBookingRepo{nextID: 1}
	units := &fakeUnitRepo{unit: &domain.Unit{ID: 1, Status: domain.UnitActive}}
	uc := newTestUseCase(bookings, units, &fakeCustomerRepo{}, &fakeAuditRepo{}, &fakePublisher{})

	req := validRequest()
	req.EndDate = req.StartDate

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}
