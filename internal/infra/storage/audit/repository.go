package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/RIH-BookingService/pkg/txmanager"
)

// Repository репозиторий журнала аудита.
// Записи пишутся в той же транзакции, что и само изменение, поэтому
// снапшот и изменение фиксируются атомарно.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record пишет одну запись аудита с before/after снапшотами.
// before/after nil означает отсутствие снапшота (создание/без изменений).
// userID nil означает системное действие (expiry sweep).
func (r *Repository) Record(ctx context.Context, entityType string, entityID int64, action domain.AuditAction, userID *int64, before, after interface{}) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	beforeJSON, err := marshalSnapshot(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshalSnapshot(after)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert("audit_logs").
		Columns("entity_type", "entity_id", "action", "user_id", "before_json", "after_json").
		Values(entityType, entityID, action, userID, beforeJSON, afterJSON).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func marshalSnapshot(v interface{}) (*string, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshalSnapshot, err)
	}
	s := string(raw)
	return &s, nil
}
