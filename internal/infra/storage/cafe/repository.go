package cafe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/pkg/dbmetrics"
	"github.com/m04kA/CafeBookingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"name",
	"description",
	"address",
	"city",
	"latitude",
	"longitude",
	"photos",
	"rating",
	"review_count",
	"price_range",
	"categories",
	"hours",
	"menu",
}

// Repository SQL-репозиторий каталога кафе.
// Порядок каталога хранится в колонке position и задается порядком первой вставки.
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория кафе
func NewRepository(db DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Upsert вставляет кафе или обновляет существующую запись, сохраняя ее позицию
func (r *Repository) Upsert(ctx context.Context, cafe *domain.Cafe) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	photos, categories, hours, menu, err := encodeNested(cafe)
	if err != nil {
		return fmt.Errorf("%w: Upsert - cafe %s: %v", ErrEncode, cafe.ID, err)
	}

	query, args, err := r.qb.Insert("cafes").
		Columns(append([]string{"position"}, columns...)...).
		Values(
			squirrel.Expr("(SELECT COALESCE(MAX(position), 0) + 1 FROM cafes)"),
			cafe.ID,
			cafe.Name,
			cafe.Description,
			cafe.Location.Address,
			cafe.Location.City,
			cafe.Location.Coordinates[0],
			cafe.Location.Coordinates[1],
			photos,
			cafe.Rating,
			cafe.ReviewCount,
			string(cafe.PriceRange),
			categories,
			hours,
			menu,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			address = excluded.address,
			city = excluded.city,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			photos = excluded.photos,
			rating = excluded.rating,
			review_count = excluded.review_count,
			price_range = excluded.price_range,
			categories = excluded.categories,
			hours = excluded.hours,
			menu = excluded.menu`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает кафе по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Cafe, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From("cafes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	cafe, err := scanCafe(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCafeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan cafe: %v", ErrScanRow, err)
	}

	return cafe, nil
}

// List возвращает все кафе в порядке каталога
func (r *Repository) List(ctx context.Context) ([]*domain.Cafe, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(columns...).
		From("cafes").
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cafes := make([]*domain.Cafe, 0)
	for rows.Next() {
		cafe, err := scanCafe(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		cafes = append(cafes, cafe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return cafes, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCafe(row rowScanner) (*domain.Cafe, error) {
	var (
		cafe                                domain.Cafe
		priceRange                          string
		photos, categories, hours, menuJSON string
	)

	err := row.Scan(
		&cafe.ID,
		&cafe.Name,
		&cafe.Description,
		&cafe.Location.Address,
		&cafe.Location.City,
		&cafe.Location.Coordinates[0],
		&cafe.Location.Coordinates[1],
		&photos,
		&cafe.Rating,
		&cafe.ReviewCount,
		&priceRange,
		&categories,
		&hours,
		&menuJSON,
	)
	if err != nil {
		return nil, err
	}

	cafe.PriceRange = domain.PriceRange(priceRange)

	if err := json.Unmarshal([]byte(photos), &cafe.Photos); err != nil {
		return nil, fmt.Errorf("decode photos: %w", err)
	}
	if err := json.Unmarshal([]byte(categories), &cafe.Categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if err := json.Unmarshal([]byte(hours), &cafe.Hours); err != nil {
		return nil, fmt.Errorf("decode hours: %w", err)
	}
	if err := json.Unmarshal([]byte(menuJSON), &cafe.Menu); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	return &cafe, nil
}

func encodeNested(cafe *domain.Cafe) (photos, categories, hours, menu string, err error) {
	encode := func(v interface{}) string {
		if err != nil {
			return ""
		}
		var data []byte
		data, err = json.Marshal(v)
		return string(data)
	}

	photos = encode(cafe.Photos)
	categories = encode(cafe.Categories)
	hours = encode(cafe.Hours)
	menu = encode(cafe.Menu)
	return photos, categories, hours, menu, err
}
