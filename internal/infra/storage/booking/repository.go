package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/pkg/phone"
	"github.com/m04kA/RIH-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/RIH-BookingService/pkg/txmanager"
)

// bookingColumns полный список колонок таблицы bookings (порядок совпадает со scanBooking)
var bookingColumns = []string{
	"id",
	"unit_id",
	"customer_id",
	"customer_name",
	"customer_phone",
	"start_date",
	"end_date",
	"price_total",
	"amount_paid",
	"payment_status",
	"payment_method",
	"deposit_amount",
	"reference_number",
	"booking_status",
	"tentative_expiry_at",
	"is_no_show",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"cancelled_by",
	"created_by",
	"updated_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её - создание
// всегда выполняется внутри сериализуемой транзакции вместе с проверкой
// конфликтов и выдачей reference_number.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"unit_id",
			"customer_id",
			"customer_name",
			"customer_phone",
			"start_date",
			"end_date",
			"price_total",
			"amount_paid",
			"payment_status",
			"payment_method",
			"deposit_amount",
			"reference_number",
			"booking_status",
			"tentative_expiry_at",
			"is_no_show",
			"notes",
			"created_by",
			"updated_by",
		).
		Values(
			b.UnitID,
			b.CustomerID,
			b.CustomerName,
			b.CustomerPhone,
			b.StartDate,
			b.EndDate,
			b.PriceTotal,
			b.AmountPaid,
			b.PaymentStatus,
			b.PaymentMethod,
			b.DepositAmount,
			b.ReferenceNumber,
			b.Status,
			b.TentativeExpiryAt,
			b.IsNoShow,
			b.Notes,
			b.CreatedBy,
			b.UpdatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки (FOR UPDATE).
// Используется внутри транзакций sweep/update для защиты от двойной обработки.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate && txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// Update сохраняет изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("unit_id", b.UnitID).
		Set("customer_id", b.CustomerID).
		Set("customer_name", b.CustomerName).
		Set("customer_phone", b.CustomerPhone).
		Set("start_date", b.StartDate).
		Set("end_date", b.EndDate).
		Set("price_total", b.PriceTotal).
		Set("amount_paid", b.AmountPaid).
		Set("payment_status", b.PaymentStatus).
		Set("payment_method", b.PaymentMethod).
		Set("deposit_amount", b.DepositAmount).
		Set("booking_status", b.Status).
		Set("tentative_expiry_at", b.TentativeExpiryAt).
		Set("is_no_show", b.IsNoShow).
		Set("notes", b.Notes).
		Set("cancellation_reason", b.CancellationReason).
		Set("cancelled_at", b.CancelledAt).
		Set("cancelled_by", b.CancelledBy).
		Set("updated_by", b.UpdatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// FindConflict ищет не-отмененное бронирование той же единицы, пересекающееся
// с [StartDate, EndDate] по правилу строгих неравенств:
// existing.start_date < end AND existing.end_date > start.
// День выезда может совпадать с днем заезда другого бронирования.
// Возвращает ErrNoConflict, если пересечений нет.
func (r *Repository) FindConflict(ctx context.Context, filter domain.ConflictFilter) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"unit_id": filter.UnitID}).
		Where(squirrel.NotEq{"booking_status": domain.StatusCancelled}).
		Where(squirrel.Lt{"start_date": filter.EndDate}).
		Where(squirrel.Gt{"end_date": filter.StartDate}).
		Limit(1)

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflict - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflict - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListExpiredTentative получает tentative-бронирования с истекшим сроком подтверждения
func (r *Repository) ListExpiredTentative(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_status": domain.StatusTentative}).
		Where(squirrel.NotEq{"tentative_expiry_at": nil}).
		Where(squirrel.LtOrEq{"tentative_expiry_at": now}).
		OrderBy("tentative_expiry_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredTentative - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredTentative - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListCalendar получает бронирования, чьи диапазоны пересекают окно [From, To]
// (включительно), с опциональной фильтрацией по единице и статусу
func (r *Repository) ListCalendar(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.LtOrEq{"start_date": filter.To}).
		Where(squirrel.GtOrEq{"end_date": filter.From}).
		OrderBy("start_date ASC, id ASC")

	if filter.UnitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit_id": *filter.UnitID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCalendar - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCalendar - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListStartingInPeriod получает не-отмененные бронирования с началом в [from, to].
// Используется отчетом по выручке.
func (r *Repository) ListStartingInPeriod(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.GtOrEq{"start_date": from}).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.NotEq{"booking_status": domain.StatusCancelled}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStartingInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStartingInPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListOverlappingForUnit получает не-отмененные бронирования единицы,
// пересекающие окно [from, to]. Используется отчетом по загрузке.
func (r *Repository) ListOverlappingForUnit(ctx context.Context, unitID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.NotEq{"booking_status": domain.StatusCancelled}).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.GtOrEq{"end_date": from}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlappingForUnit - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlappingForUnit - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListCreatedInPeriod получает бронирования, созданные в [from, to],
// с опциональной фильтрацией по создателю. Используется отчетом по
// активности агентов.
func (r *Repository) ListCreatedInPeriod(ctx context.Context, from, to time.Time, createdBy *int64) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.LtOrEq{"created_at": to}).
		OrderBy("created_at DESC")

	if createdBy != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"created_by": *createdBy})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCreatedInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCreatedInPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListCancelledInPeriod получает бронирования, отмененные в [from, to]
func (r *Repository) ListCancelledInPeriod(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_status": domain.StatusCancelled}).
		Where(squirrel.GtOrEq{"cancelled_at": from}).
		Where(squirrel.LtOrEq{"cancelled_at": to}).
		OrderBy("cancelled_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCancelledInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCancelledInPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListNoShowsInPeriod получает брони с флагом no-show и заездом в [from, to]
func (r *Repository) ListNoShowsInPeriod(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"is_no_show": true}).
		Where(squirrel.GtOrEq{"start_date": from}).
		Where(squirrel.LtOrEq{"start_date": to}).
		OrderBy("start_date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListNoShowsInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNoShowsInPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListTentativeExpiringWithin получает еще не просроченные предварительные
// брони, чье окно жизни истекает в (now, until]
func (r *Repository) ListTentativeExpiringWithin(ctx context.Context, now, until time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_status": domain.StatusTentative}).
		Where(squirrel.NotEq{"tentative_expiry_at": nil}).
		Where(squirrel.Gt{"tentative_expiry_at": now}).
		Where(squirrel.LtOrEq{"tentative_expiry_at": until}).
		OrderBy("tentative_expiry_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTentativeExpiringWithin - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTentativeExpiringWithin - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// SearchByPhone ищет бронирования по фрагменту телефона (минимум 4 цифры).
// Совпадение проверяется и по inline-телефону брони, и по телефону
// привязанного клиента.
func (r *Repository) SearchByPhone(ctx context.Context, rawPhone string, limit uint64) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	forms := phone.SearchDigits(rawPhone)
	if len(forms) == 0 {
		return []*domain.Booking{}, nil
	}

	match := squirrel.Or{}
	for _, f := range forms {
		pattern := "%" + f + "%"
		match = append(match,
			squirrel.Like{"b.customer_phone": pattern},
			squirrel.Like{"c.phone_number": pattern},
		)
	}

	cols := make([]string, len(bookingColumns))
	for i, c := range bookingColumns {
		cols[i] = "b." + c
	}

	query, args, err := psqlbuilder.Select(cols...).
		From("bookings b").
		LeftJoin("customers c ON c.id = b.customer_id").
		Where(match).
		OrderBy("b.start_date DESC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SearchByPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SearchByPhone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListCheckingInOn получает бронирования с заездом в указанную дату
func (r *Repository) ListCheckingInOn(ctx context.Context, day time.Time) ([]*domain.Booking, error) {
	return r.listByDay(ctx, "start_date", day,
		[]domain.BookingStatus{domain.StatusTentative, domain.StatusConfirmed}, "ListCheckingInOn")
}

// ListCheckingOutOn получает бронирования с выездом в указанную дату
func (r *Repository) ListCheckingOutOn(ctx context.Context, day time.Time) ([]*domain.Booking, error) {
	return r.listByDay(ctx, "end_date", day,
		[]domain.BookingStatus{domain.StatusConfirmed, domain.StatusCheckedIn}, "ListCheckingOutOn")
}

func (r *Repository) listByDay(ctx context.Context, column string, day time.Time, statuses []domain.BookingStatus, op string) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{column: day}).
		Where(squirrel.Eq{"booking_status": statusStrings}).
		OrderBy("unit_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// LastReferenceSeq возвращает максимальный числовой суффикс reference_number
// за указанный год (0, если бронирований в этом году еще нет).
// Вызывается внутри сериализуемой транзакции создания брони.
func (r *Repository) LastReferenceSeq(ctx context.Context, year int) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reference_number").
		From("bookings").
		Where(squirrel.Like{"reference_number": domain.ReferenceYearPrefix(year) + "%"}).
		OrderBy("CAST(RIGHT(reference_number, 6) AS INTEGER) DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: LastReferenceSeq - build select query: %v", ErrBuildQuery, err)
	}

	var ref string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ref)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: LastReferenceSeq - scan reference: %v", ErrScanRow, err)
	}

	seq, ok := domain.ReferenceSequence(ref)
	if !ok {
		return 0, fmt.Errorf("%w: LastReferenceSeq - malformed reference %q", ErrScanRow, ref)
	}

	return seq, nil
}

// SetNoShow проставляет флаг no-show
func (r *Repository) SetNoShow(ctx context.Context, id int64, noShow bool, updatedBy *int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_no_show", noShow).
		Set("updated_by", updatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetNoShow - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetNoShow - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetNoShow - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBookingRow(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UnitID,
		&b.CustomerID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.StartDate,
		&b.EndDate,
		&b.PriceTotal,
		&b.AmountPaid,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.DepositAmount,
		&b.ReferenceNumber,
		&b.Status,
		&b.TentativeExpiryAt,
		&b.IsNoShow,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.CancelledBy,
		&b.CreatedBy,
		&b.UpdatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
