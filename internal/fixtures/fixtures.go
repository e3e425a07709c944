package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/pkg/ptr"
	"github.com/m04kA/CafeBookingService/pkg/types"
)

//go:embed cafes.json
var cafesJSON []byte

// ErrInvalidFixture возвращается, если запись каталога нарушает инварианты
var ErrInvalidFixture = errors.New("fixtures: invalid catalog record")

// Cafes декодирует и валидирует встроенный каталог кафе
func Cafes() ([]*domain.Cafe, error) {
	var cafes []*domain.Cafe
	decoder := json.NewDecoder(bytes.NewReader(cafesJSON))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cafes); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidFixture, err)
	}

	for _, cafe := range cafes {
		if err := cafe.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
		}
	}

	return cafes, nil
}

type seedBooking struct {
	id              string
	cafeID          string
	dayOffset       int
	time            types.TimeString
	partySize       int
	status          domain.BookingStatus
	specialRequests *string
}

var seedBookings = []seedBooking{
	{id: "1", cafeID: "1", dayOffset: 1, time: "10:00", partySize: 2, status: domain.StatusUpcoming, specialRequests: ptr.Ptr("Window seat if possible.")},
	{id: "2", cafeID: "3", dayOffset: 2, time: "14:30", partySize: 4, status: domain.StatusUpcoming, specialRequests: ptr.Ptr("Birthday celebration.")},
	{id: "3", cafeID: "5", dayOffset: -5, time: "11:00", partySize: 1, status: domain.StatusCompleted},
	{id: "4", cafeID: "2", dayOffset: -10, time: "09:15", partySize: 3, status: domain.StatusCompleted},
	{id: "5", cafeID: "4", dayOffset: -2, time: "15:45", partySize: 2, status: domain.StatusCancelled},
}

// Bookings строит демонстрационные бронирования пользователя userID,
// даты отсчитываются от now. Кафе берутся из cafes для снимка названия и фото.
func Bookings(now time.Time, userID string, cafes []*domain.Cafe) ([]*domain.Booking, error) {
	byID := make(map[string]*domain.Cafe, len(cafes))
	for _, cafe := range cafes {
		byID[cafe.ID] = cafe
	}

	today := domain.DateOnly(now)
	bookings := make([]*domain.Booking, 0, len(seedBookings))

	for _, seed := range seedBookings {
		cafe, ok := byID[seed.cafeID]
		if !ok {
			return nil, fmt.Errorf("%w: booking %s references unknown cafe %s", ErrInvalidFixture, seed.id, seed.cafeID)
		}

		booking := &domain.Booking{
			ID:              seed.id,
			CafeID:          cafe.ID,
			UserID:          userID,
			CafeName:        cafe.Name,
			CafeImage:       cafe.PrimaryPhoto(),
			Date:            today.AddDate(0, 0, seed.dayOffset),
			Time:            seed.time,
			PartySize:       seed.partySize,
			Status:          seed.status,
			SpecialRequests: seed.specialRequests,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if seed.status == domain.StatusCancelled {
			booking.CancelledAt = ptr.Ptr(now)
		}

		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// CafeRepository хранилище каталога
type CafeRepository interface {
	Upsert(ctx context.Context, cafe *domain.Cafe) error
}

// BookingRepository хранилище бронирований
type BookingRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Seeder загружает каталог и демонстрационные бронирования. Повторный запуск ничего не дублирует.
type Seeder struct {
	cafes    CafeRepository
	bookings BookingRepository
	logger   Logger
}

// NewSeeder создает загрузчик фикстур
func NewSeeder(cafes CafeRepository, bookings BookingRepository, logger Logger) *Seeder {
	return &Seeder{cafes: cafes, bookings: bookings, logger: logger}
}

// Seed загружает каталог. Если demoUserID не пустой, добавляет его бронирования.
func (s *Seeder) Seed(ctx context.Context, now time.Time, demoUserID string) error {
	cafes, err := Cafes()
	if err != nil {
		return err
	}

	for _, cafe := range cafes {
		if err := s.cafes.Upsert(ctx, cafe); err != nil {
			return fmt.Errorf("fixtures: upsert cafe %s: %w", cafe.ID, err)
		}
	}
	s.logger.Info("Seed: catalog loaded, %d cafes", len(cafes))

	if demoUserID == "" {
		return nil
	}

	bookings, err := Bookings(now, demoUserID, cafes)
	if err != nil {
		return err
	}

	created := 0
	for _, booking := range bookings {
		exists, err := s.bookings.Exists(ctx, booking.ID)
		if err != nil {
			return fmt.Errorf("fixtures: check booking %s: %w", booking.ID, err)
		}
		if exists {
			continue
		}
		if _, err := s.bookings.Create(ctx, booking); err != nil {
			return fmt.Errorf("fixtures: create booking %s: %w", booking.ID, err)
		}
		created++
	}
	s.logger.Info("Seed: %d demo bookings created for user=%s", created, demoUserID)

	return nil
}
