package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/pkg/ptr"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func bookingRows(b *domain.Booking) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		b.ID, b.UnitID, b.CustomerID, b.CustomerName, b.CustomerPhone,
		b.StartDate, b.EndDate, b.PriceTotal, b.AmountPaid, b.PaymentStatus,
		b.PaymentMethod, b.DepositAmount, b.ReferenceNumber, b.Status,
		b.TentativeExpiryAt, b.IsNoShow, b.Notes, b.CancellationReason,
		b.CancelledAt, b.CancelledBy, b.CreatedBy, b.UpdatedBy,
		b.CreatedAt, b.UpdatedAt,
	)
}

func TestFindConflict(t *testing.T) {
	start := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 22, 0, 0, 0, 0, time.UTC)

	t.Run("returns conflicting booking", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		existing := &domain.Booking{
			ID:         5,
			UnitID:     1,
			StartDate:  start,
			EndDate:    end,
			Status:     domain.StatusConfirmed,
			PaymentStatus: domain.PaymentUnpaid,
			ReferenceNumber: "RIH-2026-000005",
		}

		// Strict inequalities and the cancelled exclusion are part of the query.
		mock.ExpectQuery(`SELECT .+ FROM bookings WHERE unit_id = \$1 AND booking_status <> \$2 AND start_date < \$3 AND end_date > \$4 LIMIT 1`).
			WithArgs(int64(1), string(domain.StatusCancelled), end, start).
			WillReturnRows(bookingRows(existing))

		got, err := repo.FindConflict(context.Background(), domain.ConflictFilter{
			UnitID:    1,
			StartDate: start,
			EndDate:   end,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows means no conflict", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM bookings WHERE unit_id = .+`).
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		_, err := repo.FindConflict(context.Background(), domain.ConflictFilter{
			UnitID:    1,
			StartDate: start,
			EndDate:   end,
		})
		assert.ErrorIs(t, err, ErrNoConflict)
	})

	t.Run("exclude id appended for updates", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT .+ AND id <> \$5 LIMIT 1`).
			WithArgs(int64(1), string(domain.StatusCancelled), end, start, int64(9)).
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		_, err := repo.FindConflict(context.Background(), domain.ConflictFilter{
			UnitID:    1,
			StartDate: start,
			EndDate:   end,
			ExcludeID: ptr.Ptr(int64(9)),
		})
		assert.ErrorIs(t, err, ErrNoConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLastReferenceSeq(t *testing.T) {
	t.Run("returns numeric suffix of highest reference", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT reference_number FROM bookings WHERE reference_number LIKE \$1 ORDER BY CAST\(RIGHT\(reference_number, 6\) AS INTEGER\) DESC LIMIT 1`).
			WithArgs("RIH-2026-%").
			WillReturnRows(sqlmock.NewRows([]string{"reference_number"}).AddRow("RIH-2026-000042"))

		seq, err := repo.LastReferenceSeq(context.Background(), 2026)
		require.NoError(t, err)
		assert.Equal(t, 42, seq)
	})

	t.Run("zero when year has no bookings", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT reference_number FROM bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"reference_number"}))

		seq, err := repo.LastReferenceSeq(context.Background(), 2026)
		require.NoError(t, err)
		assert.Equal(t, 0, seq)
	})
}

func TestListCreatedInPeriod(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("filters by creation window", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		created := &domain.Booking{
			ID:              1,
			UnitID:          1,
			StartDate:       from.AddDate(0, 0, 5),
			EndDate:         from.AddDate(0, 0, 7),
			Status:          domain.StatusConfirmed,
			PaymentStatus:   domain.PaymentUnpaid,
			ReferenceNumber: "RIH-2026-000001",
			CreatedBy:       ptr.Ptr(int64(7)),
			CreatedAt:       from.AddDate(0, 0, 2),
		}

		mock.ExpectQuery(`SELECT .+ FROM bookings WHERE created_at >= \$1 AND created_at <= \$2 ORDER BY created_at DESC`).
			WithArgs(from, to).
			WillReturnRows(bookingRows(created))

		got, err := repo.ListCreatedInPeriod(context.Background(), from, to, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creator filter appended when set", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT .+ AND created_by = \$3 ORDER BY created_at DESC`).
			WithArgs(from, to, int64(7)).
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		got, err := repo.ListCreatedInPeriod(context.Background(), from, to, ptr.Ptr(int64(7)))
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListTentativeExpiringWithin(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(2 * time.Hour)
	expiry := now.Add(time.Hour)

	expiring := &domain.Booking{
		ID:                6,
		UnitID:            1,
		StartDate:         now,
		EndDate:           now.AddDate(0, 0, 2),
		Status:            domain.StatusTentative,
		PaymentStatus:     domain.PaymentUnpaid,
		TentativeExpiryAt: &expiry,
		ReferenceNumber:   "RIH-2026-000006",
	}

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE booking_status = \$1 AND tentative_expiry_at IS NOT NULL AND tentative_expiry_at > \$2 AND tentative_expiry_at <= \$3 ORDER BY tentative_expiry_at ASC`).
		WithArgs(string(domain.StatusTentative), now, until).
		WillReturnRows(bookingRows(expiring))

	got, err := repo.ListTentativeExpiringWithin(context.Background(), now, until)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(6), got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpiredTentative(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(-time.Hour)

	expired := &domain.Booking{
		ID:                3,
		UnitID:            1,
		StartDate:         now,
		EndDate:           now.AddDate(0, 0, 2),
		Status:            domain.StatusTentative,
		PaymentStatus:     domain.PaymentUnpaid,
		TentativeExpiryAt: &expiry,
		ReferenceNumber:   "RIH-2026-000003",
	}

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE booking_status = \$1 AND tentative_expiry_at IS NOT NULL AND tentative_expiry_at <= \$2`).
		WithArgs(string(domain.StatusTentative), now).
		WillReturnRows(bookingRows(expired))

	got, err := repo.ListExpiredTentative(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
