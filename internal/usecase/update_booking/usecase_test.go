package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/booking"
	unitRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/unit"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
	"github.com/m04kA/RIH-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking        *domain.Booking
	conflict       *domain.Booking
	conflictChecks int
	updated        *domain.Booking
}

func (f *fakeBookingRepo) GetByIDForUpdate(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *f.booking
	return &clone, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	clone := *b
	f.updated = &clone
	return nil
}

func (f *fakeBookingRepo) FindConflict(_ context.Context, _ domain.ConflictFilter) (*domain.Booking, error) {
	f.conflictChecks++
	if f.conflict == nil {
		return nil, bookingRepo.ErrNoConflict
	}
	return f.conflict, nil
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

type fakeSettings struct{}

func (fakeSettings) TentativeExpiryHours(_ context.Context) int {
	return domain.DefaultTentativeExpiryHours
}

type fakeAuditRepo struct {
	actions []domain.AuditAction
}

func (f *fakeAuditRepo) Record(_ context.Context, _ string, _ int64, action domain.AuditAction, _ *int64, _, _ interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

type fakePublisher struct {
	types []notifier.EventType
}

func (f *fakePublisher) PublishAsync(eventType notifier.EventType, _ interface{}) {
	f.types = append(f.types, eventType)
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              10,
		UnitID:          1,
		ReferenceNumber: "RIH-2026-000010",
		StartDate:       date(2026, 3, 10),
		EndDate:         date(2026, 3, 13),
		PriceTotal:      1500,
		AmountPaid:      1500,
		PaymentStatus:   domain.PaymentPaid,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, units *fakeUnitRepo, audit *fakeAuditRepo, events *fakePublisher) *UseCase {
	uc := NewUseCase(bookings, units, fakeSettings{}, audit, events, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_NoConflictCheckWhenDatesUnchanged(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	events := &fakePublisher{}
	uc := newTestUseCase(bookings, &fakeUnitRepo{}, &fakeAuditRepo{}, events)

	resp, err := uc.Execute(context.Background(), &Request{
		ID:         10,
		AmountPaid: ptr.Ptr(700.0),
	})
	require.NoError(t, err)

	assert.Zero(t, bookings.conflictChecks)
	assert.Equal(t, string(domain.PaymentPartial), resp.PaymentStatus)
	assert.Equal(t, []notifier.EventType{notifier.EventBookingUpdated}, events.types)
}

func TestExecute_ConflictCheckOnDateChange(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking: confirmedBooking(),
		conflict: &domain.Booking{
			StartDate: date(2026, 3, 14),
			EndDate:   date(2026, 3, 20),
		},
	}
	uc := newTestUseCase(bookings, &fakeUnitRepo{}, &fakeAuditRepo{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{
		ID:      10,
		EndDate: ptr.Ptr(date(2026, 3, 15)),
	})
	require.ErrorIs(t, err, ErrDateConflict)
	assert.Equal(t, 1, bookings.conflictChecks)
	assert.Nil(t, bookings.updated)
}

func TestExecute_StatusTransitions(t *testing.T) {
	t.Run("confirm clears expiry", func(t *testing.T) {
		booking := confirmedBooking()
		booking.Status = domain.StatusTentative
		expiry := date(2026, 2, 1)
		booking.TentativeExpiryAt = &expiry

		bookings := &fakeBookingRepo{booking: booking}
		uc := newTestUseCase(bookings, &fakeUnitRepo{}, &fakeAuditRepo{}, &fakePublisher{})

		resp, err := uc.Execute(context.Background(), &Request{
			ID:     10,
			Status: ptr.Ptr(string(domain.StatusConfirmed)),
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Nil(t, resp.TentativeExpiryAt)
	})

	t.Run("reopen to tentative recomputes expiry", func(t *testing.T) {
		bookings := &fakeBookingRepo{booking: confirmedBooking()}
		uc := newTestUseCase(bookings, &fakeUnitRepo{}, &fakeAuditRepo{}, &fakePublisher{})

		resp, err := uc.Execute(context.Background(), &Request{
			ID:     10,
			Status: ptr.Ptr(string(domain.StatusTentative)),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.TentativeExpiryAt)
		assert.Equal(t, time.Date(2026, 2, 1, 16, 0, 0, 0, time.UTC), *resp.TentativeExpiryAt)
	})

	t.Run("tentative cannot check in directly", func(t *testing.T) {
		booking := confirmedBooking()
		booking.Status = domain.StatusTentative

		uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeUnitRepo{}, &fakeAuditRepo{}, &fakePublisher{})

		_, err := uc.Execute(context.Background(), &Request{
			ID:     10,
			Status: ptr.Ptr(string(domain.StatusCheckedIn)),
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancel goes through the cancel operation", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeUnitRepo{}, &fakeAuditRepo{}, &fakePublisher{})

		_, err := uc.Execute(context.Background(), &Request{
			ID:     10,
			Status: ptr.Ptr(string(domain.StatusCancelled)),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_ImmutableStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCheckedOut} {
		t.Run(string(status), func(t *testing.T) {
			booking := confirmedBooking()
			booking.Status = status

			uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeUnitRepo{}, &fakeAuditRepo{}, &fakePublisher{})

			_, err := uc.Execute(context.Background(), &Request{
				ID:    10,
				Notes: ptr.Ptr("late edit"),
			})
			assert.ErrorIs(t, err, ErrBookingImmutable)
		})
	}
}

func TestExecute_PaidCannotExceedTotal(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeUnitRepo{}, &fakeAuditRepo{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{
		ID:         10,
		AmountPaid: ptr.Ptr(2000.0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RejectsUnnormalizablePhone(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	uc := newTestUseCase(bookings, &fakeUnitRepo{}, &fakeAuditRepo{}, &fakePublisher{})

	// Телефон без единой цифры не должен молча превращаться в пустую строку
	_, err := uc.Execute(context.Background(), &Request{
		ID:            10,
		CustomerPhone: ptr.Ptr("not-a-phone"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, bookings.updated)
}

func TestExecute_AuditRecorded(t *testing.T) {
	audit := &fakeAuditRepo{}
	uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeUnitRepo{}, audit, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{
		ID:    10,
		Notes: ptr.Ptr("guest arrives late"),
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.AuditAction{domain.AuditUpdated}, audit.actions)
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeUnitRepo{}, &fakeAuditRepo{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{ID: 404})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
