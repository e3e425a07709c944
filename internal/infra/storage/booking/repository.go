package booking

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

const timestampLayout = time.RFC3339Nano

var columns = []string{
	"id",
	"cafe_id",
	"user_id",
	"cafe_name",
	"cafe_image",
	"booking_date",
	"booking_time",
	"party_size",
	"status",
	"special_requests",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository SQL-репозиторий бронирований (ledger).
// Порядок ledger хранится в колонке position.
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Create добавляет бронирование в конец ledger.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	exists, err := r.Exists(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBookingExists
	}

	query, args, err := r.qb.Insert("bookings").
		Columns(append([]string{"position"}, columns...)...).
		Values(
			squirrel.Expr("(SELECT COALESCE(MAX(position), 0) + 1 FROM bookings)"),
			booking.ID,
			booking.CafeID,
			booking.UserID,
			booking.CafeName,
			booking.CafeImage,
			booking.Date.Format(domain.DateFormat),
			booking.Time.String(),
			booking.PartySize,
			string(booking.Status),
			nullString(booking.SpecialRequests),
			nullTimestamp(booking.CancelledAt),
			booking.CreatedAt.UTC().Format(timestampLayout),
			booking.UpdatedAt.UTC().Format(timestampLayout),
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// Exists проверяет наличие бронирования
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: Exists - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает бронирования пользователя в порядке ledger.
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("position ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCafeWithFilter получает бронирования кафе с фильтрацией по дню, слоту и статусу.
// Внутри транзакции на postgres строки блокируются (FOR UPDATE), чтобы проверка
// вместимости слота и вставка не пересекались с конкурентными бронированиями.
func (r *Repository) GetByCafeWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"cafe_id": filter.CafeID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.Time != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_time": filter.Time.String()})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(domain.StatusUpcoming)})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC", "booking_time ASC", "position ASC")

	if r.qb.RowLocks && dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCafeWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCafeWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus сохраняет переход статуса, выполненный над booking.
// Обновление происходит только если в хранилище статус все еще равен from.
func (r *Repository) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update("bookings").
		Set("status", string(booking.Status)).
		Set("cancelled_at", nullTimestamp(booking.CancelledAt)).
		Set("updated_at", booking.UpdatedAt.UTC().Format(timestampLayout)).
		Where(squirrel.Eq{"id": booking.ID, "status": string(from)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.Exists(ctx, booking.ID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrBookingNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                      domain.Booking
		date, bookingTime, status    string
		specialRequests, cancelledAt sql.NullString
		createdAt, updatedAt         string
	)

	err := row.Scan(
		&booking.ID,
		&booking.CafeID,
		&booking.UserID,
		&booking.CafeName,
		&booking.CafeImage,
		&date,
		&bookingTime,
		&booking.PartySize,
		&status,
		&specialRequests,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date, err = time.Parse(domain.DateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("parse booking_date: %w", err)
	}
	if err := booking.Time.Scan(bookingTime); err != nil {
		return nil, fmt.Errorf("parse booking_time: %w", err)
	}
	booking.Status = domain.BookingStatus(status)

	if specialRequests.Valid {
		value := specialRequests.String
		booking.SpecialRequests = &value
	}
	if cancelledAt.Valid {
		parsed, err := time.Parse(timestampLayout, cancelledAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse cancelled_at: %w", err)
		}
		booking.CancelledAt = &parsed
	}

	if booking.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if booking.UpdatedAt, err = time.Parse(timestampLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTimestamp(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timestampLayout), Valid: true}
}
