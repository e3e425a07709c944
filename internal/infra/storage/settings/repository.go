package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/pkg/dbmetrics"
	"github.com/m04kA/CafeBookingService/pkg/psqlbuilder"
)

// Repository репозиторий настроек бронирования кафе
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// GetByCafeID получает настройки кафе
func (r *Repository) GetByCafeID(ctx context.Context, cafeID string) (*domain.CafeSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(
		"cafe_id",
		"tables_per_slot",
		"advance_booking_days",
		"updated_at",
	).
		From("cafe_settings").
		Where(squirrel.Eq{"cafe_id": cafeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCafeID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings  domain.CafeSettings
		updatedAt string
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.CafeID,
		&settings.TablesPerSlot,
		&settings.AdvanceBookingDays,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCafeID - scan settings: %v", ErrScanRow, err)
	}

	settings.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCafeID - parse updated_at: %v", ErrScanRow, err)
	}

	return &settings, nil
}

// Upsert создает или перезаписывает настройки кафе
func (r *Repository) Upsert(ctx context.Context, settings *domain.CafeSettings) (*domain.CafeSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Insert("cafe_settings").
		Columns("cafe_id", "tables_per_slot", "advance_booking_days", "updated_at").
		Values(
			settings.CafeID,
			settings.TablesPerSlot,
			settings.AdvanceBookingDays,
			settings.UpdatedAt.UTC().Format(time.RFC3339Nano),
		).
		Suffix(`ON CONFLICT (cafe_id) DO UPDATE SET
			tables_per_slot = excluded.tables_per_slot,
			advance_booking_days = excluded.advance_booking_days,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return settings, nil
}
