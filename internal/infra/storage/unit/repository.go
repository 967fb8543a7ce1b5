package unit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/RIH-BookingService/pkg/txmanager"
)

var unitColumns = []string{
	"id",
	"name",
	"status",
	"default_price",
	"price_thursday",
	"price_friday",
	"price_saturday",
	"notes",
	"sort_order",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с единицами (шале)
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория единиц
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую единицу
func (r *Repository) Create(ctx context.Context, u *domain.Unit) (*domain.Unit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("units").
		Columns("name", "status", "default_price", "price_thursday", "price_friday", "price_saturday", "notes", "sort_order").
		Values(u.Name, u.Status, u.DefaultPrice, u.PriceThursday, u.PriceFriday, u.PriceSaturday, u.Notes, u.SortOrder).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return u, nil
}

// GetByID получает единицу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Unit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(unitColumns...).
		From("units").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	u, err := scanUnit(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan unit: %v", ErrScanRow, err)
	}
	return u, nil
}

// List получает единицы в порядке sort_order.
// activeOnly ограничивает выборку активными единицами.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Unit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(unitColumns...).
		From("units").
		OrderBy("sort_order ASC, id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.UnitActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]*domain.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}

// Update сохраняет изменяемые поля единицы
func (r *Repository) Update(ctx context.Context, u *domain.Unit) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("units").
		Set("name", u.Name).
		Set("status", u.Status).
		Set("default_price", u.DefaultPrice).
		Set("price_thursday", u.PriceThursday).
		Set("price_friday", u.PriceFriday).
		Set("price_saturday", u.PriceSaturday).
		Set("notes", u.Notes).
		Set("sort_order", u.SortOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": u.ID}).
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
		return ErrUnitNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUnit(row rowScanner) (*domain.Unit, error) {
	var u domain.Unit
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Status,
		&u.DefaultPrice,
		&u.PriceThursday,
		&u.PriceFriday,
		&u.PriceSaturday,
		&u.Notes,
		&u.SortOrder,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return &u, nil
}
