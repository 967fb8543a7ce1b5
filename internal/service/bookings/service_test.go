package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RIH-BookingService/internal/domain"
)

type fakeBookingRepo struct {
	found   []*domain.Booking
	queries []string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) GetByIDForUpdate(_ context.Context, _ int64) (*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListCalendar(_ context.Context, _ domain.CalendarFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) SearchByPhone(_ context.Context, rawPhone string, _ uint64) ([]*domain.Booking, error) {
	f.queries = append(f.queries, rawPhone)
	return f.found, nil
}

func (f *fakeBookingRepo) ListCheckingInOn(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListCheckingOutOn(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) SetNoShow(_ context.Context, _ int64, _ bool, _ *int64) error {
	return nil
}

type fakeUnitRepo struct{}

func (fakeUnitRepo) List(_ context.Context, _ bool) ([]*domain.Unit, error) {
	return []*domain.Unit{{ID: 1, Name: "Chalet A"}}, nil
}

func (fakeUnitRepo) GetByID(_ context.Context, _ int64) (*domain.Unit, error) {
	return &domain.Unit{ID: 1, Name: "Chalet A"}, nil
}

type fakeAuditRepo struct{}

func (fakeAuditRepo) Record(_ context.Context, _ string, _ int64, _ domain.AuditAction, _ *int64, _, _ interface{}) error {
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeBookingRepo) *Service {
	return NewService(repo, fakeUnitRepo{}, fakeAuditRepo{}, passthroughTxManager{}, nopLogger{})
}

func TestSearchByPhone_RejectsShortQueries(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo)

	for _, q := range []string{"", "050", "not-a-phone", "+9-6"} {
		_, err := svc.SearchByPhone(context.Background(), q)
		assert.ErrorIs(t, err, ErrInvalidInput, "query %q", q)
	}

	// До репозитория короткий запрос не доходит
	assert.Empty(t, repo.queries)
}

func TestSearchByPhone_QueriesRepository(t *testing.T) {
	repo := &fakeBookingRepo{found: []*domain.Booking{
		{ID: 1, UnitID: 1, Status: domain.StatusConfirmed},
	}}
	svc := newTestService(repo)

	resp, err := svc.SearchByPhone(context.Background(), "0501234")
	require.NoError(t, err)
	assert.Equal(t, []string{"0501234"}, repo.queries)
	assert.Equal(t, 1, resp.Total)
}
