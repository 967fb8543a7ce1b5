package sweep_expired

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
)

type fakeBookingRepo struct {
	bookings  map[int64]*domain.Booking
	updateErr map[int64]error

	// Подменяет результат выборки, имитируя устаревший снапшот
	listOverride []*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:  make(map[int64]*domain.Booking),
		updateErr: make(map[int64]error),
	}
	for _, b := range bookings {
		clone := *b
		repo.bookings[b.ID] = &clone
	}
	return repo
}

func (f *fakeBookingRepo) ListExpiredTentative(_ context.Context, now time.Time) ([]*domain.Booking, error) {
	if f.listOverride != nil {
		return f.listOverride, nil
	}
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.IsExpired(now) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	if err := f.updateErr[b.ID]; err != nil {
		return err
	}
	clone := *b
	f.bookings[b.ID] = &clone
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
	types []notifier.EventType
}

func (f *fakePublisher) PublishAsync(eventType notifier.EventType, _ interface{}) {
	f.types = append(f.types, eventType)
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingMetrics struct {
	runs, failures, cancelled int
}

func (m *countingMetrics) SweepRun()      { m.runs++ }
func (m *countingMetrics) SweepFailure()  { m.failures++ }
func (m *countingMetrics) AutoCancelled() { m.cancelled++ }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var sweepNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func tentative(id int64, expiry time.Time) *domain.Booking {
	return &domain.Booking{
		ID:                id,
		UnitID:            1,
		ReferenceNumber:   "RIH-2026-00001" + string(rune('0'+id)),
		Status:            domain.StatusTentative,
		TentativeExpiryAt: &expiry,
	}
}

func newTestUseCase(repo *fakeBookingRepo, audit *fakeAuditRepo, events *fakePublisher, metrics SweepMetrics) *UseCase {
	uc := NewUseCase(repo, audit, events, passthroughTxManager{}, metrics, nopLogger{})
	uc.timeProvider = fixedTime{t: sweepNow}
	return uc
}

func TestExecute_CancelsOnlyExpired(t *testing.T) {
	repo := newFakeBookingRepo(
		tentative(1, sweepNow.Add(-time.Hour)),
		tentative(2, sweepNow.Add(time.Hour)),
	)
	audit := &fakeAuditRepo{}
	events := &fakePublisher{}
	metrics := &countingMetrics{}

	count, err := newTestUseCase(repo, audit, events, metrics).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expired := repo.bookings[1]
	assert.Equal(t, domain.StatusCancelled, expired.Status)
	require.NotNil(t, expired.CancellationReason)
	assert.Equal(t, domain.ExpiryCancelReason, *expired.CancellationReason)
	assert.Nil(t, expired.CancelledBy)
	assert.Nil(t, expired.TentativeExpiryAt)

	// Непросроченная бронь не тронута
	assert.Equal(t, domain.StatusTentative, repo.bookings[2].Status)

	require.Len(t, audit.actions, 1)
	assert.Equal(t, domain.AuditAutoCancelled, audit.actions[0])
	assert.Nil(t, audit.userIDs[0])

	assert.Equal(t, []notifier.EventType{notifier.EventBookingCancelled}, events.types)
	assert.Equal(t, 1, metrics.cancelled)
	assert.Equal(t, 1, metrics.runs)
}

func TestExecute_Idempotent(t *testing.T) {
	repo := newFakeBookingRepo(tentative(1, sweepNow.Add(-time.Hour)))
	uc := newTestUseCase(repo, &fakeAuditRepo{}, &fakePublisher{}, NopMetrics{})

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Повторный прогон ничего не находит
	count, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExecute_RecheckUnderLock(t *testing.T) {
	// Бронь просрочена в выборке, но уже подтверждена к моменту блокировки
	repo := newFakeBookingRepo(tentative(1, sweepNow.Add(-time.Hour)))
	uc := newTestUseCase(repo, &fakeAuditRepo{}, &fakePublisher{}, NopMetrics{})

	stale := *repo.bookings[1]
	repo.listOverride = []*domain.Booking{&stale}

	confirmed := *repo.bookings[1]
	confirmed.Status = domain.StatusConfirmed
	confirmed.TentativeExpiryAt = nil
	repo.bookings[1] = &confirmed

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
}

func TestExecute_FailureDoesNotAbortRun(t *testing.T) {
	repo := newFakeBookingRepo(
		tentative(1, sweepNow.Add(-time.Hour)),
		tentative(2, sweepNow.Add(-time.Hour)),
	)
	repo.updateErr[1] = errors.New("disk on fire")
	metrics := &countingMetrics{}

	count, err := newTestUseCase(repo, &fakeAuditRepo{}, &fakePublisher{}, metrics).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, 1, metrics.failures)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[2].Status)
	assert.Equal(t, domain.StatusTentative, repo.bookings[1].Status)
}
