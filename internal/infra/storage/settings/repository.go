package settings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/RIH-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/RIH-BookingService/pkg/txmanager"
)

// cacheTTL настройки читаются на каждом создании tentative-брони,
// поэтому кэшируются с коротким TTL
const cacheTTL = time.Minute

// Repository key-value хранилище настроек с кэшем чтения
type Repository struct {
	db    txmanager.DBExecutor
	cache *gocache.Cache
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{
		db:    db,
		cache: gocache.New(cacheTTL, 5*time.Minute),
	}
}

// Get читает значение настройки по ключу (с кэшем)
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	if v, ok := r.cache.Get(key); ok {
		return v.(string), nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From("settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get - scan value: %v", ErrScanRow, err)
	}

	r.cache.Set(key, value, cacheTTL)
	return value, nil
}

// GetAll читает все настройки (без кэша - используется только админкой)
func (r *Repository) GetAll(ctx context.Context) (map[string]string, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "value").
		From("settings").
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		result[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Set записывает значение настройки (upsert) и сбрасывает кэш ключа
func (r *Repository) Set(ctx context.Context, key, value string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}

	r.cache.Delete(key)
	return nil
}
