package schema

import (
	"context"
	"fmt"

	"github.com/m04kA/CafeBookingService/pkg/dbmetrics"
)

// statements DDL, общий для postgres и sqlite: только TEXT/INTEGER/BIGINT/DOUBLE PRECISION,
// даты и метки времени хранятся строками (YYYY-MM-DD, RFC3339), вложенные структуры - JSON.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS cafes (
		id            TEXT PRIMARY KEY,
		position      BIGINT NOT NULL,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL,
		address       TEXT NOT NULL,
		city          TEXT NOT NULL,
		latitude      DOUBLE PRECISION NOT NULL,
		longitude     DOUBLE PRECISION NOT NULL,
		photos        TEXT NOT NULL,
		rating        DOUBLE PRECISION NOT NULL,
		review_count  INTEGER NOT NULL,
		price_range   TEXT NOT NULL,
		categories    TEXT NOT NULL,
		hours         TEXT NOT NULL,
		menu          TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id               TEXT PRIMARY KEY,
		position         BIGINT NOT NULL,
		cafe_id          TEXT NOT NULL,
		user_id          TEXT NOT NULL,
		cafe_name        TEXT NOT NULL,
		cafe_image       TEXT NOT NULL,
		booking_date     TEXT NOT NULL,
		booking_time     TEXT NOT NULL,
		party_size       INTEGER NOT NULL,
		status           TEXT NOT NULL,
		special_requests TEXT,
		cancelled_at     TEXT,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_cafes_position ON cafes (position)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_position ON bookings (position)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings (user_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_cafe_date ON bookings (cafe_id, booking_date, booking_time)`,
	`CREATE TABLE IF NOT EXISTS cafe_settings (
		cafe_id              TEXT PRIMARY KEY,
		tables_per_slot      INTEGER NOT NULL,
		advance_booking_days INTEGER NOT NULL,
		updated_at           TEXT NOT NULL
	)`,
}

// Migrate создает таблицы, если их еще нет
func Migrate(ctx context.Context, db dbmetrics.DBExecutor) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: statement %d: %w", i, err)
		}
	}
	return nil
}
