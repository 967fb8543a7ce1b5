package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
	"github.com/m04kA/RIH-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	updated *domain.Booking
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

type fakeAuditRepo struct {
	actions []domain.AuditAction
	userIDs []*int64
}

func (f *fakeAuditRepo) Record(_ context.Context, _ string, _ int64, action domain.AuditAction, userID *int64, _, _ interface{}) error {
	f.actions = append(f.actions, action)
	f.userIDs = append(f.userIDs, userID)
	return nil
}

type fakePublisher struct {
	types    []notifier.EventType
	payloads []interface{}
}

func (f *fakePublisher) PublishAsync(eventType notifier.EventType, payload interface{}) {
	f.types = append(f.types, eventType)
	f.payloads = append(f.payloads, payload)
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

func tentativeBooking() *domain.Booking {
	expiry := time.Date(2026, 2, 1, 16, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:                20,
		UnitID:            1,
		ReferenceNumber:   "RIH-2026-000020",
		Status:            domain.StatusTentative,
		TentativeExpiryAt: &expiry,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, audit *fakeAuditRepo, events *fakePublisher) *UseCase {
	uc := NewUseCase(bookings, audit, events, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_CancelsBooking(t *testing.T) {
	bookings := &fakeBookingRepo{booking: tentativeBooking()}
	audit := &fakeAuditRepo{}
	events := &fakePublisher{}
	uc := newTestUseCase(bookings, audit, events)

	resp, err := uc.Execute(context.Background(), &Request{
		ID:      20,
		Reason:  ptr.Ptr("guest asked to cancel"),
		ActorID: ptr.Ptr(int64(7)),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, ptr.Ptr("guest asked to cancel"), resp.CancellationReason)
	assert.Equal(t, ptr.Ptr(int64(7)), resp.CancelledBy)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC), *resp.CancelledAt)

	// Срок жизни предварительной брони сбрасывается
	require.NotNil(t, bookings.updated)
	assert.Nil(t, bookings.updated.TentativeExpiryAt)

	assert.Equal(t, []domain.AuditAction{domain.AuditCancelled}, audit.actions)
	assert.Equal(t, []notifier.EventType{notifier.EventBookingCancelled}, events.types)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	booking := tentativeBooking()
	booking.Status = domain.StatusCancelled

	bookings := &fakeBookingRepo{booking: booking}
	events := &fakePublisher{}
	uc := newTestUseCase(bookings, &fakeAuditRepo{}, events)

	_, err := uc.Execute(context.Background(), &Request{ID: 20, ActorID: ptr.Ptr(int64(7))})
	require.ErrorIs(t, err, ErrAlreadyCancelled)

	assert.Nil(t, bookings.updated)
	assert.Empty(t, events.types)
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAuditRepo{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), &Request{ID: 404, ActorID: ptr.Ptr(int64(7))})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
